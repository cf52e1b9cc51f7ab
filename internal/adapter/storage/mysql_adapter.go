package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rl1809/points-ledger/internal/core/domain"
	"github.com/rl1809/points-ledger/internal/port"
)

type MySQLAdapter struct {
	db *sqlx.DB
}

func NewMySQLAdapter(db *sqlx.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

type workerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	PIN       string    `db:"pin"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func (r workerRow) toDomain() domain.Worker {
	return domain.Worker{ID: r.ID, Name: r.Name, PIN: r.PIN, Active: r.Active, CreatedAt: r.CreatedAt}
}

func (m *MySQLAdapter) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	var rows []workerRow
	err := m.db.SelectContext(ctx, &rows, `
		SELECT id, name, pin, active, created_at
		FROM workers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	workers := make([]domain.Worker, len(rows))
	for i, r := range rows {
		workers[i] = r.toDomain()
	}
	return workers, nil
}

func (m *MySQLAdapter) InsertWorker(ctx context.Context, name, pin string) (*domain.Worker, error) {
	worker := domain.Worker{
		ID:        uuid.NewString(),
		Name:      name,
		PIN:       pin,
		Active:    true,
		CreatedAt: time.Now(),
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO workers (id, name, pin, active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		worker.ID, worker.Name, worker.PIN, worker.Active, worker.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, port.ErrDuplicatePIN
		}
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	return &worker, nil
}

func (m *MySQLAdapter) UpdateWorker(ctx context.Context, id string, update port.WorkerUpdate) error {
	sets, args := []string{}, []any{}
	if update.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *update.Name)
	}
	if update.PIN != nil {
		sets, args = append(sets, "pin = ?"), append(args, *update.PIN)
	}
	if update.Active != nil {
		sets, args = append(sets, "active = ?"), append(args, *update.Active)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := m.db.ExecContext(ctx,
		"UPDATE workers SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return port.ErrDuplicatePIN
		}
		return fmt.Errorf("update worker: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) DeleteWorker(ctx context.Context, id string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	return nil
}

type productRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Points    int       `db:"points"`
	Quantity  int       `db:"quantity"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{ID: r.ID, Name: r.Name, Points: r.Points, Quantity: r.Quantity, Active: r.Active, CreatedAt: r.CreatedAt}
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := m.db.SelectContext(ctx, &rows, `
		SELECT id, name, points, quantity, active, created_at
		FROM products ORDER BY points, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]domain.Product, len(rows))
	for i, r := range rows {
		products[i] = r.toDomain()
	}
	return products, nil
}

func (m *MySQLAdapter) InsertProduct(ctx context.Context, name string, points, quantity int) (*domain.Product, error) {
	product := domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Points:    points,
		Quantity:  quantity,
		Active:    true,
		CreatedAt: time.Now(),
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, name, points, quantity, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Points, product.Quantity, product.Active, product.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &product, nil
}

func (m *MySQLAdapter) UpdateProduct(ctx context.Context, id string, update port.ProductUpdate) error {
	sets, args := []string{}, []any{}
	if update.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *update.Name)
	}
	if update.Points != nil {
		sets, args = append(sets, "points = ?"), append(args, *update.Points)
	}
	if update.Quantity != nil {
		sets, args = append(sets, "quantity = ?"), append(args, *update.Quantity)
	}
	if update.Active != nil {
		sets, args = append(sets, "active = ?"), append(args, *update.Active)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := m.db.ExecContext(ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, id string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

type transactionRow struct {
	ID          string    `db:"id"`
	WorkerID    string    `db:"worker_id"`
	TotalPoints int       `db:"total_points"`
	IsReturn    bool      `db:"is_return"`
	CreatedAt   time.Time `db:"created_at"`
}

type lineItemRow struct {
	TransactionID string `db:"transaction_id"`
	ProductID     string `db:"product_id"`
	ProductName   string `db:"product_name"`
	Quantity      int    `db:"quantity"`
	Points        int    `db:"points"`
}

func (m *MySQLAdapter) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var headers []transactionRow
	err := m.db.SelectContext(ctx, &headers, `
		SELECT id, worker_id, total_points, is_return, created_at
		FROM transactions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if len(headers) == 0 {
		return []domain.Transaction{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}

	query, args, err := sqlx.In(`
		SELECT transaction_id, product_id, product_name, quantity, points
		FROM transaction_items WHERE transaction_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("prepare items query: %w", err)
	}
	query = m.db.Rebind(query)

	var itemRows []lineItemRow
	if err := m.db.SelectContext(ctx, &itemRows, query, args...); err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}

	itemsByTx := make(map[string][]domain.LineItem)
	for _, row := range itemRows {
		itemsByTx[row.TransactionID] = append(itemsByTx[row.TransactionID], domain.LineItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Points:      row.Points,
		})
	}

	transactions := make([]domain.Transaction, len(headers))
	for i, h := range headers {
		transactions[i] = domain.Transaction{
			ID:          h.ID,
			WorkerID:    h.WorkerID,
			Items:       itemsByTx[h.ID],
			TotalPoints: h.TotalPoints,
			IsReturn:    h.IsReturn,
			CreatedAt:   h.CreatedAt,
		}
	}
	return transactions, nil
}

func (m *MySQLAdapter) InsertTransaction(ctx context.Context, header domain.Transaction) (*domain.Transaction, error) {
	header.ID = uuid.NewString()
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now()
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO transactions (id, worker_id, total_points, is_return, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		header.ID, header.WorkerID, header.TotalPoints, header.IsReturn, header.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return &header, nil
}

func (m *MySQLAdapter) InsertLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transaction_items (transaction_id, product_id, product_name, quantity, points)
			VALUES (?, ?, ?, ?, ?)`,
			transactionID, item.ProductID, item.ProductName, item.Quantity, item.Points)
		if err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return tx.Commit()
}

func (m *MySQLAdapter) FindWorkerByPin(ctx context.Context, pin string) (*domain.Worker, error) {
	var row workerRow
	err := m.db.GetContext(ctx, &row, `
		SELECT id, name, pin, active, created_at
		FROM workers WHERE pin = ? AND active = TRUE`, pin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find worker by pin: %w", err)
	}
	worker := row.toDomain()
	return &worker, nil
}

func (m *MySQLAdapter) GetAdminPin(ctx context.Context) (string, error) {
	var pin string
	err := m.db.GetContext(ctx, &pin, `SELECT admin_pin FROM admin_settings LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("admin pin not configured")
	}
	if err != nil {
		return "", fmt.Errorf("get admin pin: %w", err)
	}
	return pin, nil
}

// CountOrphanTransactions counts headers that have no line items: the
// partial-commit window of the header-then-items write. Logged at startup
// so the anomaly is observable instead of silent.
func (m *MySQLAdapter) CountOrphanTransactions(ctx context.Context) (int, error) {
	var count int
	err := m.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM transactions t
		LEFT JOIN transaction_items i ON i.transaction_id = t.id
		WHERE i.id IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("count orphan transactions: %w", err)
	}
	return count, nil
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
