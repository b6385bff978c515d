package export

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/handlers/transactions"
	"fintrack/internal/services/filter"
	"fintrack/internal/services/ledger"
)

var led *ledger.Ledger

// Initialize sets up the export package with required dependencies
func Initialize(l *ledger.Ledger) {
	led = l
}

// RegisterRoutes registers all export routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/export/csv", handleExportCSV)
}

// handleExportCSV streams the currently filtered transaction list as a
// CSV download. It accepts the same query parameters as the list
// endpoint, so the export reflects exactly what the table shows.
func handleExportCSV(w http.ResponseWriter, r *http.Request) {
	spec, err := transactions.SpecFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filtered := filter.Apply(led.Transactions(), spec)

	filename := fmt.Sprintf("transaksi-keuangan-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"Date", "Type", "Category", "Description", "Amount"})
	for _, tx := range filtered {
		desc := tx.Description
		if desc == "" {
			desc = "-"
		}
		cw.Write([]string{
			tx.Date.String(),
			string(tx.Type),
			tx.Category,
			desc,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
		})
	}
}
