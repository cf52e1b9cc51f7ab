package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/points-ledger/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestSessionRoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	token := "test-token-" + time.Now().Format("150405.000")
	session := port.Session{WorkerID: "w-1"}

	if err := adapter.SaveSession(ctx, token, session, time.Minute); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := adapter.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.WorkerID != "w-1" || got.Admin {
		t.Errorf("unexpected session: %+v", got)
	}

	if err := adapter.DeleteSession(ctx, token); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	got, err = adapter.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil session after delete")
	}
}

func TestGetSession_Missing(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client)

	got, err := adapter.GetSession(context.Background(), "never-stored")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestSetIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	key := "test-key-" + time.Now().Format("150405.000")
	defer client.Del(ctx, idempotencyKeyPrefix+key)

	ok, err := adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("SetIdempotency failed: %v", err)
	}
	if !ok {
		t.Error("first set must succeed")
	}

	ok, err = adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("SetIdempotency failed: %v", err)
	}
	if ok {
		t.Error("second set must report duplicate")
	}
}

func TestSessionExpiry(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	token := "test-expiry-" + time.Now().Format("150405.000")
	if err := adapter.SaveSession(ctx, token, port.Session{Admin: true}, 50*time.Millisecond); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	got, err := adapter.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Error("expected session to expire")
	}
}
