package report

import (
	"math"
	"testing"
	"time"

	"fintrack/internal/models"
)

func tx(typ models.TransactionType, amount float64, category, date string) models.Transaction {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		ID:       date + category,
		Type:     typ,
		Category: category,
		Amount:   amount,
		Date:     d,
	}
}

func TestTotalsEmpty(t *testing.T) {
	got := New().Totals(nil)

	if got.Income != 0 || got.Expense != 0 || got.Balance != 0 {
		t.Errorf("Totals(empty) = %+v, want all zeros", got)
	}
}

func TestTotals(t *testing.T) {
	txs := []models.Transaction{
		tx(models.Income, 100000, "Gaji", "2024-01-01"),
		tx(models.Expense, 40000, "Makanan", "2024-01-02"),
		tx(models.Expense, 15000, "Transportasi", "2024-01-03"),
		tx(models.Income, 25000, "Bonus", "2024-01-05"),
	}

	got := New().Totals(txs)

	if got.Income != 125000 {
		t.Errorf("Income = %v, want 125000", got.Income)
	}
	if got.Expense != 55000 {
		t.Errorf("Expense = %v, want 55000", got.Expense)
	}
	if got.Balance != got.Income-got.Expense {
		t.Errorf("Balance = %v, want income-expense = %v", got.Balance, got.Income-got.Expense)
	}
}

func TestDailySeriesLength(t *testing.T) {
	svc := New()
	today := time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC)

	for _, n := range []int{1, 7, 30} {
		if got := len(svc.DailySeries(nil, today, n)); got != n {
			t.Errorf("DailySeries(empty, days=%d) has %d points, want %d", n, got, n)
		}
	}

	txs := []models.Transaction{tx(models.Income, 100, "Gaji", "2024-01-01")}
	if got := len(svc.DailySeries(txs, today, 7)); got != 7 {
		t.Errorf("DailySeries(1 tx, days=7) has %d points, want 7", got)
	}
}

func TestDailySeriesCumulativeBalance(t *testing.T) {
	txs := []models.Transaction{
		tx(models.Income, 100000, "Gaji", "2024-01-01"),
		tx(models.Expense, 40000, "Makanan", "2024-01-02"),
	}

	// 2024-01-07 is a Sunday; the series runs Mon Jan 1 .. Sun Jan 7
	today := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	series := New().DailySeries(txs, today, 7)

	wantBalances := []float64{100000, 60000, 60000, 60000, 60000, 60000, 60000}
	wantLabels := []string{"Sen", "Sel", "Rab", "Kam", "Jum", "Sab", "Min"}

	for i, p := range series {
		if p.Balance != wantBalances[i] {
			t.Errorf("series[%d].Balance = %v, want %v", i, p.Balance, wantBalances[i])
		}
		if p.Label != wantLabels[i] {
			t.Errorf("series[%d].Label = %q, want %q", i, p.Label, wantLabels[i])
		}
	}
}

func TestDailySeriesExcludesFutureTransactions(t *testing.T) {
	txs := []models.Transaction{
		tx(models.Income, 100, "Gaji", "2024-01-01"),
		tx(models.Income, 900, "Gaji", "2024-02-01"), // after the window
	}

	today := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	series := New().DailySeries(txs, today, 7)

	if got := series[len(series)-1].Balance; got != 100 {
		t.Errorf("final balance = %v, want 100 (future transaction must not count)", got)
	}
}

func TestCategoryTotals(t *testing.T) {
	txs := []models.Transaction{
		tx(models.Expense, 40000, "Makanan", "2024-01-02"),
		tx(models.Expense, 10000, "Makanan", "2024-01-03"),
		tx(models.Expense, 20000, "Hiburan", "2024-01-04"),
		tx(models.Income, 99999, "Makanan", "2024-01-05"),  // income never counts
		tx(models.Expense, 5000, "Belanja", "2024-01-06"),  // outside the list
	}

	got := New().CategoryTotals(txs, models.DefaultCategories)

	wantLabels := []string{"Makanan", "Hiburan"}
	wantAmounts := []float64{50000, 20000}

	if len(got.Labels) != len(wantLabels) {
		t.Fatalf("Labels = %v, want %v", got.Labels, wantLabels)
	}
	for i := range wantLabels {
		if got.Labels[i] != wantLabels[i] {
			t.Errorf("Labels[%d] = %q, want %q", i, got.Labels[i], wantLabels[i])
		}
		if got.Amounts[i] != wantAmounts[i] {
			t.Errorf("Amounts[%d] = %v, want %v", i, got.Amounts[i], wantAmounts[i])
		}
	}
}

func TestCategoryTotalsNeverReturnsZeroOrUnknownCategories(t *testing.T) {
	txs := []models.Transaction{
		tx(models.Expense, 1000, "Misterius", "2024-01-02"),
	}

	got := New().CategoryTotals(txs, models.DefaultCategories)

	if len(got.Labels) != 0 {
		t.Errorf("Labels = %v, want empty: no listed category has spending", got.Labels)
	}
	for _, a := range got.Amounts {
		if a == 0 {
			t.Error("breakdown contains a zero sum")
		}
	}
}

func TestCategoryTotalsPreservesInputOrder(t *testing.T) {
	txs := []models.Transaction{
		tx(models.Expense, 1, "Tabungan", "2024-01-01"),
		tx(models.Expense, 2, "Makanan", "2024-01-02"),
	}

	got := New().CategoryTotals(txs, []string{"Makanan", "Tabungan"})

	if len(got.Labels) != 2 || got.Labels[0] != "Makanan" || got.Labels[1] != "Tabungan" {
		t.Errorf("Labels = %v, want [Makanan Tabungan]", got.Labels)
	}
}

func TestSavingsProgress(t *testing.T) {
	svc := New()

	tests := []struct {
		name    string
		balance float64
		target  float64
		want    float64
		wantOK  bool
	}{
		{"sixty percent", 60000, 100000, 60, true},
		{"behind target is negative", -5000, 100000, -5, true},
		{"capped at hundred", 250000, 100000, 100, true},
		{"zero target not applicable", 60000, 0, 0, false},
		{"negative target not applicable", 60000, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := svc.SavingsProgress(tt.balance, tt.target)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("progress = %v, want %v", got, tt.want)
			}
		})
	}
}
