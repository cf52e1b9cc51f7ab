package service

import (
	"context"
	"testing"
	"time"

	"github.com/rl1809/points-ledger/internal/core/domain"
	"github.com/rl1809/points-ledger/internal/port"
)

func seedTransaction(t *testing.T, store *fakeStore, workerID string, points int, isReturn bool, createdAt time.Time, items ...domain.LineItem) {
	t.Helper()
	tx, err := store.InsertTransaction(context.Background(), domain.Transaction{
		WorkerID:    workerID,
		TotalPoints: points,
		IsReturn:    isReturn,
		CreatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	if err := store.InsertLineItems(context.Background(), tx.ID, items); err != nil {
		t.Fatalf("seed line items: %v", err)
	}
}

func march(day int) time.Time {
	return time.Date(2026, time.March, day, 12, 0, 0, 0, time.Local)
}

func TestPointsFor_MonthFilterWithReturn(t *testing.T) {
	tracker, store, worker := newTestTracker(t)

	seedTransaction(t, store, worker.ID, 30, false, march(3))
	seedTransaction(t, store, worker.ID, 50, false, march(10))
	seedTransaction(t, store, worker.ID, -20, true, march(20))
	// Outside the period.
	seedTransaction(t, store, worker.ID, 999, false, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.Local))
	tracker.RefreshLedger(context.Background())

	points := tracker.PointsFor(worker.ID, time.March, 2026)
	if points != 60 {
		t.Errorf("expected 60 points, got %d", points)
	}

	salary := tracker.SalaryFor(worker.ID, time.March, 2026)
	if salary != 600 {
		t.Errorf("expected salary 600, got %d", salary)
	}
}

func TestPointsFor_OtherWorkerExcluded(t *testing.T) {
	tracker, store, worker := newTestTracker(t)
	other, _ := store.InsertWorker(context.Background(), "Bilal", "5678")

	seedTransaction(t, store, worker.ID, 30, false, march(3))
	seedTransaction(t, store, other.ID, 80, false, march(4))
	tracker.RefreshLedger(context.Background())

	if got := tracker.PointsFor(worker.ID, time.March, 2026); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
	if got := tracker.PointsFor(other.ID, time.March, 2026); got != 80 {
		t.Errorf("expected 80, got %d", got)
	}
}

func TestRankings_SortedDescending(t *testing.T) {
	tracker, store, first := newTestTracker(t)
	second, _ := store.InsertWorker(context.Background(), "Bilal", "5678")
	third, _ := store.InsertWorker(context.Background(), "Chaima", "9012")

	seedTransaction(t, store, first.ID, 20, false, march(1))
	seedTransaction(t, store, second.ID, 90, false, march(1))
	seedTransaction(t, store, third.ID, 40, false, march(1))
	tracker.RefreshAll(context.Background())

	rankings := tracker.Rankings(time.March, 2026)
	if len(rankings) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(rankings))
	}

	for i := 1; i < len(rankings); i++ {
		if rankings[i-1].Points < rankings[i].Points {
			t.Errorf("rankings out of order at %d: %d < %d", i, rankings[i-1].Points, rankings[i].Points)
		}
	}
	if rankings[0].Worker.ID != second.ID {
		t.Errorf("expected %s first, got %s", second.ID, rankings[0].Worker.ID)
	}
	if rankings[0].Salary != 900 {
		t.Errorf("expected salary 900, got %d", rankings[0].Salary)
	}
}

func TestRankings_TieBreakByCreationOrder(t *testing.T) {
	tracker, store, first := newTestTracker(t)
	second, _ := store.InsertWorker(context.Background(), "Bilal", "5678")

	seedTransaction(t, store, first.ID, 50, false, march(1))
	seedTransaction(t, store, second.ID, 50, false, march(2))
	tracker.RefreshAll(context.Background())

	rankings := tracker.Rankings(time.March, 2026)
	if rankings[0].Worker.ID != first.ID {
		t.Errorf("tie must resolve to earliest-created worker, got %s", rankings[0].Worker.ID)
	}
}

func TestRankings_ExcludesInactiveWorkers(t *testing.T) {
	tracker, store, worker := newTestTracker(t)

	seedTransaction(t, store, worker.ID, 100, false, march(1))
	inactive := false
	store.UpdateWorker(context.Background(), worker.ID, port.WorkerUpdate{Active: &inactive})
	tracker.RefreshAll(context.Background())

	rankings := tracker.Rankings(time.March, 2026)
	if len(rankings) != 0 {
		t.Errorf("inactive workers must be excluded entirely, got %d entries", len(rankings))
	}
}

func TestRankings_IdempotentRead(t *testing.T) {
	tracker, store, first := newTestTracker(t)
	second, _ := store.InsertWorker(context.Background(), "Bilal", "5678")

	seedTransaction(t, store, first.ID, 10, false, march(1))
	seedTransaction(t, store, second.ID, 70, false, march(1))
	tracker.RefreshAll(context.Background())

	a := tracker.Rankings(time.March, 2026)
	b := tracker.Rankings(time.March, 2026)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Worker.ID != b[i].Worker.ID || a[i].Points != b[i].Points {
			t.Errorf("entry %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStats_AggregatesPeriod(t *testing.T) {
	tracker, store, worker := newTestTracker(t)

	seedTransaction(t, store, worker.ID, 30, false, march(3),
		domain.LineItem{ProductID: "p1", ProductName: "Soda", Quantity: 6, Points: 5})
	seedTransaction(t, store, worker.ID, -10, true, march(5),
		domain.LineItem{ProductID: "p1", ProductName: "Soda", Quantity: -2, Points: 5})
	tracker.RefreshLedger(context.Background())

	stats := tracker.Stats(time.March, 2026)
	if stats.Sales != 2 {
		t.Errorf("expected 2 transactions, got %d", stats.Sales)
	}
	if stats.Points != 20 {
		t.Errorf("expected net 20 points, got %d", stats.Points)
	}
	if stats.ProductsMoved != 4 {
		t.Errorf("expected net 4 products moved, got %d", stats.ProductsMoved)
	}
}

func TestSummaryFor(t *testing.T) {
	tracker, store, worker := newTestTracker(t)
	other, _ := store.InsertWorker(context.Background(), "Bilal", "5678")

	seedTransaction(t, store, worker.ID, 25, false, march(2),
		domain.LineItem{ProductID: "p1", ProductName: "Soda", Quantity: 5, Points: 5})
	seedTransaction(t, store, other.ID, 99, false, march(2))
	tracker.RefreshLedger(context.Background())

	summary := tracker.SummaryFor(worker.ID, time.March, 2026)
	if summary.Points != 25 || summary.Salary != 250 {
		t.Errorf("expected 25 points / 250 salary, got %d / %d", summary.Points, summary.Salary)
	}
	if summary.Sales != 1 || summary.ProductsMoved != 5 {
		t.Errorf("expected 1 sale moving 5 products, got %d / %d", summary.Sales, summary.ProductsMoved)
	}
	if len(summary.Transactions) != 1 || summary.Transactions[0].WorkerID != worker.ID {
		t.Errorf("expected only the worker's transactions, got %+v", summary.Transactions)
	}
}
