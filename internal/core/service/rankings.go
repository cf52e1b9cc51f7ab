package service

import (
	"sort"
	"time"

	"github.com/rl1809/points-ledger/internal/core/domain"
)

// RankingEntry is one leaderboard row; rank is implied by position.
type RankingEntry struct {
	Worker domain.Worker
	Points int
	Salary int
}

// MonthStats aggregates the whole ledger for one calendar month.
// ProductsMoved is the signed sum of line quantities, so returns subtract.
type MonthStats struct {
	Sales         int
	ProductsMoved int
	Points        int
}

// WorkerSummary is the per-worker view of one calendar month.
type WorkerSummary struct {
	Points        int
	Salary        int
	Sales         int
	ProductsMoved int
	Transactions  []domain.Transaction
}

// targetPeriod resolves the month/year defaults: zero values mean the
// current local calendar month and year.
func targetPeriod(month time.Month, year int) (time.Month, int) {
	now := time.Now()
	if month == 0 {
		month = now.Month()
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

func inPeriod(ts time.Time, month time.Month, year int) bool {
	return ts.Month() == month && ts.Year() == year
}

// PointsFor is the signed sum of TotalPoints over the worker's transactions
// whose creation timestamp falls in the given calendar month; returns
// subtract.
func (t *Tracker) PointsFor(workerID string, month time.Month, year int) int {
	month, year = targetPeriod(month, year)

	t.mu.RLock()
	defer t.mu.RUnlock()

	points := 0
	for _, tx := range t.ledger {
		if tx.WorkerID == workerID && inPeriod(tx.CreatedAt, month, year) {
			points += tx.TotalPoints
		}
	}
	return points
}

// SalaryFor converts the worker's points for the period at the fixed rate.
func (t *Tracker) SalaryFor(workerID string, month time.Month, year int) int {
	return t.PointsFor(workerID, month, year) * domain.PointValue
}

// Rankings computes the leaderboard of active workers for the period,
// sorted descending by points. The sort is stable over the workers'
// creation order, so ties resolve to the earliest-created worker. Inactive
// workers are excluded even when they have transactions in the period.
func (t *Tracker) Rankings(month time.Month, year int) []RankingEntry {
	month, year = targetPeriod(month, year)

	entries := []RankingEntry{}
	for _, worker := range t.Workers() {
		if !worker.Active {
			continue
		}
		points := t.PointsFor(worker.ID, month, year)
		entries = append(entries, RankingEntry{
			Worker: worker,
			Points: points,
			Salary: points * domain.PointValue,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

// Stats aggregates the full ledger for the period across all workers.
func (t *Tracker) Stats(month time.Month, year int) MonthStats {
	month, year = targetPeriod(month, year)

	t.mu.RLock()
	defer t.mu.RUnlock()

	var stats MonthStats
	for _, tx := range t.ledger {
		if !inPeriod(tx.CreatedAt, month, year) {
			continue
		}
		stats.Sales++
		stats.Points += tx.TotalPoints
		for _, item := range tx.Items {
			stats.ProductsMoved += item.Quantity
		}
	}
	return stats
}

// TodayStats aggregates transactions recorded on the current local day.
func (t *Tracker) TodayStats() MonthStats {
	now := time.Now()
	y, m, d := now.Date()

	t.mu.RLock()
	defer t.mu.RUnlock()

	var stats MonthStats
	for _, tx := range t.ledger {
		ty, tm, td := tx.CreatedAt.Date()
		if ty != y || tm != m || td != d {
			continue
		}
		stats.Sales++
		stats.Points += tx.TotalPoints
		for _, item := range tx.Items {
			stats.ProductsMoved += item.Quantity
		}
	}
	return stats
}

// SummaryFor details one worker's activity for the period, including the
// matching transactions in ledger order.
func (t *Tracker) SummaryFor(workerID string, month time.Month, year int) WorkerSummary {
	month, year = targetPeriod(month, year)

	t.mu.RLock()
	defer t.mu.RUnlock()

	summary := WorkerSummary{Transactions: []domain.Transaction{}}
	for _, tx := range t.ledger {
		if tx.WorkerID != workerID || !inPeriod(tx.CreatedAt, month, year) {
			continue
		}
		summary.Sales++
		summary.Points += tx.TotalPoints
		for _, item := range tx.Items {
			summary.ProductsMoved += item.Quantity
		}
		summary.Transactions = append(summary.Transactions, tx)
	}
	summary.Salary = summary.Points * domain.PointValue
	return summary
}
