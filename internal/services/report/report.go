// Package report computes the derived numbers behind the dashboard:
// headline totals, the trailing balance series, the per-category expense
// breakdown, and savings progress. Everything here is a pure function of
// its inputs.
package report

import (
	"time"

	"fintrack/internal/models"
)

// Short weekday names as the UI locale (Indonesian) displays them
var weekdayShort = map[time.Weekday]string{
	time.Sunday:    "Min",
	time.Monday:    "Sen",
	time.Tuesday:   "Sel",
	time.Wednesday: "Rab",
	time.Thursday:  "Kam",
	time.Friday:    "Jum",
	time.Saturday:  "Sab",
}

// Service provides report calculations
type Service struct{}

// New creates a new report service
func New() *Service {
	return &Service{}
}

// Totals sums income and expense amounts over the whole list.
// An empty list yields all zeros.
func (s *Service) Totals(txs []models.Transaction) models.Totals {
	var t models.Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.Income:
			t.Income += tx.Amount
		case models.Expense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// DailySeries returns one point per calendar day for the trailing `days`
// days ending at `today` inclusive, oldest first. Each point carries the
// cumulative balance over all transactions dated on or before that day —
// the account's balance trajectory, not the day's net flow.
func (s *Service) DailySeries(txs []models.Transaction, today time.Time, days int) []models.DailyPoint {
	points := make([]models.DailyPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		cutoff := models.DateOf(day)

		var balance float64
		for _, tx := range txs {
			if tx.Date.After(cutoff) {
				continue
			}
			if tx.Type == models.Income {
				balance += tx.Amount
			} else {
				balance -= tx.Amount
			}
		}

		points = append(points, models.DailyPoint{
			Label:   weekdayShort[day.Weekday()],
			Balance: balance,
		})
	}

	return points
}

// CategoryTotals sums expense amounts per category, for the given
// categories only and in their given order. Categories whose sum is zero
// are dropped; expenses in categories outside the list do not appear.
func (s *Service) CategoryTotals(txs []models.Transaction, categories []string) models.CategoryBreakdown {
	breakdown := models.CategoryBreakdown{
		Labels:  []string{},
		Amounts: []float64{},
	}

	for _, cat := range categories {
		var sum float64
		for _, tx := range txs {
			if tx.Type == models.Expense && tx.Category == cat {
				sum += tx.Amount
			}
		}
		if sum > 0 {
			breakdown.Labels = append(breakdown.Labels, cat)
			breakdown.Amounts = append(breakdown.Amounts, sum)
		}
	}

	return breakdown
}

// SavingsProgress returns the balance as a percentage of the target,
// capped at 100 but with no floor: a negative balance yields a negative
// percentage, signaling "behind target". With target <= 0 no meaningful
// progress exists and ok is false.
func (s *Service) SavingsProgress(balance, target float64) (progress float64, ok bool) {
	if target <= 0 {
		return 0, false
	}
	progress = balance / target * 100
	if progress > 100 {
		progress = 100
	}
	return progress, true
}
