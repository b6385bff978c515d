package settings

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/models"
	"fintrack/internal/services/ledger"
)

var led *ledger.Ledger

// Initialize sets up the settings package with required dependencies
func Initialize(l *ledger.Ledger) {
	led = l
}

// RegisterRoutes registers all settings routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/settings", handleGet)
	r.Put("/api/settings/target", handleSetTarget)
	r.Put("/api/settings/currency", handleSetCurrency)
	r.Put("/api/settings/theme", handleSetTheme)
}

func handleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, led.Settings())
}

func handleSetTarget(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Target float64 `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := led.SetSavingsTarget(body.Target); err != nil {
		if errors.Is(err, models.ErrInvalidTarget) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error persisting savings target: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, led.Settings())
}

func handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := led.SetCurrency(body.Currency); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, led.Settings())
}

func handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DarkMode bool `json:"dark_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := led.SetDarkMode(body.DarkMode); err != nil {
		log.Printf("Error persisting theme flag: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, led.Settings())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
