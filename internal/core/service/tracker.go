package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rl1809/points-ledger/internal/core/domain"
	"github.com/rl1809/points-ledger/internal/port"
)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNoWorker   = errors.New("no active worker")
	ErrInvalidPIN = errors.New("invalid pin")
)

// Tracker is the incentive-program service. It owns read-mostly snapshots
// of workers, products and the transaction ledger, refreshed wholesale from
// the injected repository after any mutating operation. Aggregates are
// recomputed from the raw ledger on every read; there are no materialized
// totals.
type Tracker struct {
	store  port.DatabaseRepository
	logger *slog.Logger

	mu       sync.RWMutex
	workers  []domain.Worker
	products []domain.Product
	ledger   []domain.Transaction
}

func NewTracker(store port.DatabaseRepository, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{store: store, logger: logger}
}

// Cache refresh

func (t *Tracker) RefreshWorkers(ctx context.Context) error {
	workers, err := t.store.ListWorkers(ctx)
	if err != nil {
		return fmt.Errorf("refresh workers: %w", err)
	}
	t.mu.Lock()
	t.workers = workers
	t.mu.Unlock()
	return nil
}

func (t *Tracker) RefreshCatalog(ctx context.Context) error {
	products, err := t.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	t.mu.Lock()
	t.products = products
	t.mu.Unlock()
	return nil
}

func (t *Tracker) RefreshLedger(ctx context.Context) error {
	ledger, err := t.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("refresh ledger: %w", err)
	}
	t.mu.Lock()
	t.ledger = ledger
	t.mu.Unlock()
	return nil
}

func (t *Tracker) RefreshAll(ctx context.Context) error {
	if err := t.RefreshWorkers(ctx); err != nil {
		return err
	}
	if err := t.RefreshCatalog(ctx); err != nil {
		return err
	}
	return t.RefreshLedger(ctx)
}

// Snapshot accessors

func (t *Tracker) Workers() []domain.Worker {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Worker, len(t.workers))
	copy(out, t.workers)
	return out
}

func (t *Tracker) Products() []domain.Product {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Product, len(t.products))
	copy(out, t.products)
	return out
}

// ActiveProducts returns the catalog entries a worker may add to a cart.
func (t *Tracker) ActiveProducts() []domain.Product {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []domain.Product
	for _, p := range t.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// ProductByID resolves a product from the catalog snapshot, nil if unknown.
func (t *Tracker) ProductByID(id string) *domain.Product {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, p := range t.products {
		if p.ID == id {
			cp := p
			return &cp
		}
	}
	return nil
}

// WorkerByID resolves a worker from the snapshot, nil if unknown.
func (t *Tracker) WorkerByID(id string) *domain.Worker {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, w := range t.workers {
		if w.ID == id {
			cp := w
			return &cp
		}
	}
	return nil
}

func (t *Tracker) Ledger() []domain.Transaction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Transaction, len(t.ledger))
	copy(out, t.ledger)
	return out
}

// Authentication (PIN matching is an opaque lookup, policy lives elsewhere)

func (t *Tracker) LoginWorker(ctx context.Context, pin string) (*domain.Worker, error) {
	worker, err := t.store.FindWorkerByPin(ctx, pin)
	if err != nil {
		return nil, fmt.Errorf("login worker: %w", err)
	}
	if worker == nil {
		return nil, ErrInvalidPIN
	}
	return worker, nil
}

func (t *Tracker) LoginAdmin(ctx context.Context, pin string) error {
	adminPin, err := t.store.GetAdminPin(ctx)
	if err != nil {
		return fmt.Errorf("login admin: %w", err)
	}
	if pin == "" || pin != adminPin {
		return ErrInvalidPIN
	}
	return nil
}

// Worker administration

func (t *Tracker) AddWorker(ctx context.Context, name, pin string) (*domain.Worker, error) {
	worker, err := t.store.InsertWorker(ctx, name, pin)
	if err != nil {
		return nil, fmt.Errorf("add worker: %w", err)
	}
	if err := t.RefreshWorkers(ctx); err != nil {
		t.logger.Warn("worker cache refresh failed", "error", err)
	}
	return worker, nil
}

func (t *Tracker) UpdateWorker(ctx context.Context, id string, update port.WorkerUpdate) error {
	if err := t.store.UpdateWorker(ctx, id, update); err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if err := t.RefreshWorkers(ctx); err != nil {
		t.logger.Warn("worker cache refresh failed", "error", err)
	}
	return nil
}

func (t *Tracker) DeleteWorker(ctx context.Context, id string) error {
	if err := t.store.DeleteWorker(ctx, id); err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if err := t.RefreshWorkers(ctx); err != nil {
		t.logger.Warn("worker cache refresh failed", "error", err)
	}
	return nil
}

// Product administration

func (t *Tracker) AddProduct(ctx context.Context, name string, points, quantity int) (*domain.Product, error) {
	product, err := t.store.InsertProduct(ctx, name, points, quantity)
	if err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	if err := t.RefreshCatalog(ctx); err != nil {
		t.logger.Warn("catalog refresh failed", "error", err)
	}
	return product, nil
}

func (t *Tracker) UpdateProduct(ctx context.Context, id string, update port.ProductUpdate) error {
	if err := t.store.UpdateProduct(ctx, id, update); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if err := t.RefreshCatalog(ctx); err != nil {
		t.logger.Warn("catalog refresh failed", "error", err)
	}
	return nil
}

func (t *Tracker) DeleteProduct(ctx context.Context, id string) error {
	if err := t.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := t.RefreshCatalog(ctx); err != nil {
		t.logger.Warn("catalog refresh failed", "error", err)
	}
	return nil
}
