package port

import (
	"context"
	"time"
)

// Session identifies who holds a login token. Exactly one of WorkerID or
// Admin is set.
type Session struct {
	WorkerID string `json:"worker_id,omitempty"`
	Admin    bool   `json:"admin,omitempty"`
}

type CacheRepository interface {
	// SaveSession stores a login session under the token with a TTL.
	SaveSession(ctx context.Context, token string, session Session, ttl time.Duration) error

	// GetSession retrieves a session by token, nil if absent or expired.
	GetSession(ctx context.Context, token string) (*Session, error)

	// DeleteSession removes a session; absent tokens are not an error.
	DeleteSession(ctx context.Context, token string) error

	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)
}
