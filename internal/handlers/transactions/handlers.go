package transactions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/models"
	"fintrack/internal/services/filter"
	"fintrack/internal/services/ledger"
)

var led *ledger.Ledger

// Initialize sets up the transactions package with required dependencies
func Initialize(l *ledger.Ledger) {
	led = l
}

// RegisterRoutes registers all transaction routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/transactions", handleList)
	r.Post("/api/transactions", handleCreate)
	r.Put("/api/transactions/{id}", handleUpdate)
	r.Delete("/api/transactions/{id}", handleDelete)
	r.Post("/api/transactions/sort/{column}", handleSort)
	r.Get("/api/transactions/months", handleMonths)
}

// SpecFromRequest builds a filter spec from the list query parameters:
// search, category, month, start, end. Shared with the export handler so
// exports see exactly what the table shows.
func SpecFromRequest(r *http.Request) (filter.Spec, error) {
	q := r.URL.Query()
	spec := filter.Spec{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Month:    q.Get("month"),
	}

	if s := q.Get("start"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.Start = d
	}
	if s := q.Get("end"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.End = d
	}

	return spec, nil
}

func handleList(w http.ResponseWriter, r *http.Request) {
	spec, err := SpecFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filtered := filter.Apply(led.Transactions(), spec)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": filtered,
		"count":        len(filtered),
	})
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := led.Add(tx)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := led.Update(id, tx); err != nil {
		writeMutationError(w, err)
		return
	}

	// An unknown id is a no-op, not an error
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := led.Delete(id); err != nil {
		writeMutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleSort(w http.ResponseWriter, r *http.Request) {
	column := ledger.Column(chi.URLParam(r, "column"))

	dir, err := led.SortBy(column)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"column":    string(column),
		"direction": string(dir),
	})
}

func handleMonths(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"months": led.Months(),
	})
}

// writeMutationError distinguishes validation failures from storage
// write failures. On a write failure the in-memory change was kept; the
// client learns the save did not land.
func writeMutationError(w http.ResponseWriter, err error) {
	if isValidationError(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("Error persisting transactions: %v", err)
	http.Error(w, "failed to save changes: "+err.Error(), http.StatusInternalServerError)
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidType) ||
		errors.Is(err, models.ErrInvalidAmount) ||
		errors.Is(err, models.ErrInvalidDate) ||
		errors.Is(err, models.ErrEmptyCategory)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
