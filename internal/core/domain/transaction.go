package domain

import "time"

// PointValue is the fixed conversion rate from points to currency units.
// A single global rate for the whole ledger's lifetime, not versioned.
const PointValue = 10

// LineItem belongs to exactly one Transaction. Quantity carries the
// transaction's sign; Points is the non-negative per-unit value captured at
// confirmation time, never pre-multiplied.
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Points      int
}

// Transaction is an immutable ledger entry. For a sale all quantities and
// TotalPoints are positive; for a return they are negative.
type Transaction struct {
	ID          string
	WorkerID    string
	Items       []LineItem
	TotalPoints int
	IsReturn    bool
	CreatedAt   time.Time
}
