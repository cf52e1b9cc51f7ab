package tests

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/points-ledger/internal/adapter/storage"
	"github.com/rl1809/points-ledger/internal/core/domain"
	"github.com/rl1809/points-ledger/internal/core/service"
	"github.com/rl1809/points-ledger/internal/migrations"
	"github.com/rl1809/points-ledger/internal/port"
)

type testEnv struct {
	redis   *redis.Client
	mysql   *sqlx.DB
	cache   *storage.RedisAdapter
	db      *storage.MySQLAdapter
	cleanup func()
}

func setupTestEnv(t *testing.T) *testEnv {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/pointsledger?parseTime=true"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	db, err := sqlx.Open("mysql", mysqlDSN)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	return &testEnv{
		redis: rdb,
		mysql: db,
		cache: storage.NewRedisAdapter(rdb),
		db:    storage.NewMySQLAdapter(db),
		cleanup: func() {
			rdb.Close()
			db.Close()
		},
	}
}

func (env *testEnv) deleteWorker(ctx context.Context, workerID string) {
	env.mysql.ExecContext(ctx, `DELETE FROM transaction_items WHERE transaction_id IN (SELECT id FROM transactions WHERE worker_id = ?)`, workerID)
	env.mysql.ExecContext(ctx, `DELETE FROM transactions WHERE worker_id = ?`, workerID)
	env.mysql.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, workerID)
}

func TestIntegration_SaleReturnAndRanking(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()

	pin := "it-" + time.Now().Format("150405.000")
	worker, err := env.db.InsertWorker(ctx, "integration-worker", pin)
	if err != nil {
		t.Fatalf("insert worker: %v", err)
	}
	defer env.deleteWorker(ctx, worker.ID)

	product, err := env.db.InsertProduct(ctx, "integration-soda", 5, 10)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	defer env.mysql.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, product.ID)

	tracker := service.NewTracker(env.db, nil)
	if err := tracker.RefreshAll(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// Sale: three units of the product.
	cart := domain.NewCart()
	cart.Add(*product)
	cart.Add(*product)
	cart.Add(*product)

	sale, err := tracker.ConfirmSale(ctx, worker, cart)
	if err != nil {
		t.Fatalf("confirm sale: %v", err)
	}
	if sale.TotalPoints != 15 {
		t.Errorf("expected sale total 15, got %d", sale.TotalPoints)
	}
	if !cart.Empty() {
		t.Error("cart must be cleared after sale")
	}

	// Return: one unit back to stock.
	cart.Add(*tracker.ProductByID(product.ID))
	ret, err := tracker.ConfirmReturn(ctx, worker, cart)
	if err != nil {
		t.Fatalf("confirm return: %v", err)
	}
	if ret.TotalPoints != -5 {
		t.Errorf("expected return total -5, got %d", ret.TotalPoints)
	}

	restocked := tracker.ProductByID(product.ID)
	if restocked.Quantity != 11 {
		t.Errorf("expected stock 11 after return, got %d", restocked.Quantity)
	}

	// The month's points are net of the return.
	now := time.Now()
	if points := tracker.PointsFor(worker.ID, now.Month(), now.Year()); points != 10 {
		t.Errorf("expected 10 net points, got %d", points)
	}
	if salary := tracker.SalaryFor(worker.ID, now.Month(), now.Year()); salary != 100 {
		t.Errorf("expected salary 100, got %d", salary)
	}

	// The worker appears in the rankings.
	found := false
	for _, entry := range tracker.Rankings(now.Month(), now.Year()) {
		if entry.Worker.ID == worker.ID {
			found = true
			if entry.Points != 10 {
				t.Errorf("expected ranked points 10, got %d", entry.Points)
			}
		}
	}
	if !found {
		t.Error("worker missing from rankings")
	}
}

func TestIntegration_SessionLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()

	token := "it-token-" + time.Now().Format("150405.000")
	if err := env.cache.SaveSession(ctx, token, port.Session{WorkerID: "w-1"}, time.Minute); err != nil {
		t.Fatalf("save session: %v", err)
	}

	session, err := env.cache.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session == nil || session.WorkerID != "w-1" {
		t.Fatalf("unexpected session: %+v", session)
	}

	if err := env.cache.DeleteSession(ctx, token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	session, err = env.cache.GetSession(ctx, token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session != nil {
		t.Error("expected session gone after delete")
	}
}

func TestIntegration_LoginByPin(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()

	pin := "il-" + time.Now().Format("150405.000")
	worker, err := env.db.InsertWorker(ctx, "integration-login", pin)
	if err != nil {
		t.Fatalf("insert worker: %v", err)
	}
	defer env.deleteWorker(ctx, worker.ID)

	tracker := service.NewTracker(env.db, nil)

	got, err := tracker.LoginWorker(ctx, pin)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != worker.ID {
		t.Errorf("expected worker %s, got %s", worker.ID, got.ID)
	}
}
