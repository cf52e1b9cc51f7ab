package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rl1809/points-ledger/internal/core/domain"
	"github.com/rl1809/points-ledger/internal/port"
)

func productQuantityUpdate(quantity int) port.ProductUpdate {
	return port.ProductUpdate{Quantity: &quantity}
}

// ConfirmSale turns the cart into a durable sale for the given worker.
// The header is written first; only on success are the line items written
// under the header's generated identity. A header-write failure aborts with
// nothing persisted and the cart untouched so the worker may retry. A
// line-item failure leaves an orphaned header behind: the error is
// returned, but the cart is cleared because retrying would double-count
// the already durable header.
func (t *Tracker) ConfirmSale(ctx context.Context, worker *domain.Worker, cart *domain.Cart) (*domain.Transaction, error) {
	if worker == nil {
		return nil, ErrNoWorker
	}
	if cart == nil || cart.Empty() {
		return nil, ErrEmptyCart
	}

	header := domain.Transaction{
		WorkerID:    worker.ID,
		TotalPoints: cart.Total(),
		IsReturn:    false,
		CreatedAt:   time.Now(),
	}

	saved, err := t.store.InsertTransaction(ctx, header)
	if err != nil {
		return nil, fmt.Errorf("insert sale header: %w", err)
	}

	items := make([]domain.LineItem, 0, len(cart.Items()))
	for _, line := range cart.Items() {
		items = append(items, domain.LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Points:      line.Points,
		})
	}

	if err := t.store.InsertLineItems(ctx, saved.ID, items); err != nil {
		t.logger.Error("sale items write failed, orphaned header persisted",
			"transaction_id", saved.ID, "worker_id", worker.ID, "error", err)
		cart.Clear()
		return nil, fmt.Errorf("insert sale items: %w", err)
	}
	saved.Items = items

	if err := t.RefreshLedger(ctx); err != nil {
		t.logger.Warn("ledger refresh failed after sale", "error", err)
	}
	cart.Clear()

	return saved, nil
}

// ConfirmReturn records the cart as a return: total and quantities are
// negated and points are removed from the worker's total. After the
// transaction is durable each returned product's stock is incremented by
// the returned amount, best-effort: one write per product, and a failure on
// one does not block the others or the transaction itself.
func (t *Tracker) ConfirmReturn(ctx context.Context, worker *domain.Worker, cart *domain.Cart) (*domain.Transaction, error) {
	if worker == nil {
		return nil, ErrNoWorker
	}
	if cart == nil || cart.Empty() {
		return nil, ErrEmptyCart
	}

	lines := cart.Items()

	header := domain.Transaction{
		WorkerID:    worker.ID,
		TotalPoints: -cart.Total(),
		IsReturn:    true,
		CreatedAt:   time.Now(),
	}

	saved, err := t.store.InsertTransaction(ctx, header)
	if err != nil {
		return nil, fmt.Errorf("insert return header: %w", err)
	}

	items := make([]domain.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    -line.Quantity,
			Points:      line.Points,
		})
	}

	if err := t.store.InsertLineItems(ctx, saved.ID, items); err != nil {
		t.logger.Error("return items write failed, orphaned header persisted",
			"transaction_id", saved.ID, "worker_id", worker.ID, "error", err)
		cart.Clear()
		return nil, fmt.Errorf("insert return items: %w", err)
	}
	saved.Items = items

	t.replenishStock(ctx, lines)

	if err := t.RefreshCatalog(ctx); err != nil {
		t.logger.Warn("catalog refresh failed after return", "error", err)
	}
	if err := t.RefreshLedger(ctx); err != nil {
		t.logger.Warn("ledger refresh failed after return", "error", err)
	}
	cart.Clear()

	return saved, nil
}

func (t *Tracker) replenishStock(ctx context.Context, lines []domain.CartItem) {
	for _, line := range lines {
		product := t.ProductByID(line.ProductID)
		if product == nil {
			continue
		}
		restored := product.Quantity + line.Quantity
		if err := t.store.UpdateProduct(ctx, line.ProductID, productQuantityUpdate(restored)); err != nil {
			t.logger.Warn("stock replenishment failed",
				"product_id", line.ProductID, "quantity", restored, "error", err)
		}
	}
}
