package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/models"
	"fintrack/internal/services/ledger"
	"fintrack/internal/services/report"
)

var (
	led     *ledger.Ledger
	reports *report.Service
)

// Initialize sets up the dashboard package with required dependencies
func Initialize(l *ledger.Ledger, s *report.Service) {
	led = l
	reports = s
}

// RegisterRoutes registers all dashboard routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/dashboard/summary", handleSummary)
	r.Get("/api/dashboard/charts/data/{chartType}", handleChartData)
}

// summary is the headline payload the dashboard cards render from
type summary struct {
	Totals          models.Totals `json:"totals"`
	SavingsTarget   float64       `json:"savings_target"`
	SavingsProgress *float64      `json:"savings_progress,omitempty"`
	Currency        string        `json:"currency"`
	Count           int           `json:"count"`
}

func handleSummary(w http.ResponseWriter, r *http.Request) {
	txs := led.Transactions()
	totals := reports.Totals(txs)
	settings := led.Settings()

	resp := summary{
		Totals:        totals,
		SavingsTarget: settings.SavingsTarget,
		Currency:      settings.Currency,
		Count:         len(txs),
	}
	// With no target set, progress is meaningless and omitted entirely
	if progress, ok := reports.SavingsProgress(totals.Balance, settings.SavingsTarget); ok {
		resp.SavingsProgress = &progress
	}

	writeJSON(w, resp)
}

func handleChartData(w http.ResponseWriter, r *http.Request) {
	chartType := chi.URLParam(r, "chartType")
	txs := led.Transactions()

	var resp models.ChartResponse

	switch chartType {
	case "pie":
		totals := reports.Totals(txs)
		resp = models.ChartResponse{
			Data: []models.ChartData{{
				Type:   "pie",
				Labels: []string{"Pemasukan", "Pengeluaran"},
				Values: []float64{totals.Income, totals.Expense},
				Name:   "Income vs Expense",
			}},
			Layout: models.ChartLayout{Title: "Pemasukan vs Pengeluaran", ShowLegend: true},
		}

	case "daily":
		series := reports.DailySeries(txs, time.Now(), 7)
		labels := make([]string, len(series))
		balances := make([]float64, len(series))
		for i, p := range series {
			labels[i] = p.Label
			balances[i] = p.Balance
		}
		resp = models.ChartResponse{
			Data: []models.ChartData{{
				Type: "line",
				X:    labels,
				Y:    balances,
				Name: "Saldo Harian",
			}},
			Layout: models.ChartLayout{Title: "Saldo 7 Hari Terakhir"},
		}

	case "category":
		breakdown := reports.CategoryTotals(txs, models.DefaultCategories)
		resp = models.ChartResponse{
			Data: []models.ChartData{{
				Type: "bar",
				X:    breakdown.Labels,
				Y:    breakdown.Amounts,
				Name: "Pengeluaran per Kategori",
			}},
			Layout: models.ChartLayout{Title: "Pengeluaran per Kategori"},
		}

	default:
		http.Error(w, "Unknown chart type: "+chartType, http.StatusNotFound)
		return
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
