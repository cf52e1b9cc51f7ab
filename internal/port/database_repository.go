package port

import (
	"context"
	"errors"

	"github.com/rl1809/points-ledger/internal/core/domain"
)

// ErrDuplicatePIN reports a worker write that collides with an existing PIN.
var ErrDuplicatePIN = errors.New("pin already in use")

// WorkerUpdate carries the fields of a partial worker update; nil fields
// are left unchanged.
type WorkerUpdate struct {
	Name   *string
	PIN    *string
	Active *bool
}

// ProductUpdate carries the fields of a partial product update; nil fields
// are left unchanged. Changing Points does not retroactively alter past
// transactions.
type ProductUpdate struct {
	Name     *string
	Points   *int
	Quantity *int
	Active   *bool
}

type DatabaseRepository interface {
	ListWorkers(ctx context.Context) ([]domain.Worker, error)

	// InsertWorker creates a worker with a generated identity. PIN
	// uniqueness is enforced here, at creation time.
	InsertWorker(ctx context.Context, name, pin string) (*domain.Worker, error)

	UpdateWorker(ctx context.Context, id string, update WorkerUpdate) error
	DeleteWorker(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	InsertProduct(ctx context.Context, name string, points, quantity int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) error
	DeleteProduct(ctx context.Context, id string) error

	// ListTransactions returns the full ledger with line items joined.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// InsertTransaction persists the header only and returns it with a
	// generated identity; line items are written separately.
	InsertTransaction(ctx context.Context, header domain.Transaction) (*domain.Transaction, error)

	// InsertLineItems persists the items of a previously written header.
	InsertLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error

	// FindWorkerByPin returns the active worker with the given PIN, or nil
	// when no such worker exists.
	FindWorkerByPin(ctx context.Context, pin string) (*domain.Worker, error)

	GetAdminPin(ctx context.Context) (string, error)
}
