package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/term"

	"fintrack/internal/config"
	"fintrack/internal/handlers/backup"
	"fintrack/internal/handlers/dashboard"
	"fintrack/internal/handlers/export"
	"fintrack/internal/handlers/settings"
	"fintrack/internal/handlers/transactions"
	"fintrack/internal/services/ledger"
	"fintrack/internal/services/report"
	"fintrack/internal/services/storage"
)

var (
	cfg   *config.Config
	store *storage.Store
	led   *ledger.Ledger
)

func main() {
	cfg = config.Load()
	log.Printf("Starting Finance Tracker on %s", cfg.ListenAddr)
	log.Printf("Data directory: %s", cfg.DataDirectory)

	if err := SetupDependencies(cfg); err != nil {
		log.Fatalf("Failed to set up dependencies: %v", err)
	}

	r := SetupRouter()

	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// SetupDependencies wires storage and services. Separated from main so
// tests can build the same dependency graph against a temp directory.
func SetupDependencies(c *config.Config) error {
	var err error
	store, err = storage.New(c.DataDirectory)
	if err != nil {
		return err
	}

	// Encrypted data must be unlocked before the ledger loads it
	if store.IsEncrypted() && !store.IsUnlocked() {
		if err := unlockInteractive(store); err != nil {
			return err
		}
	}

	led = ledger.Open(store)
	reports := report.New()

	transactions.Initialize(led)
	dashboard.Initialize(led, reports)
	settings.Initialize(led)
	export.Initialize(led)
	backup.Initialize(store)

	return nil
}

// SetupRouter builds the chi router with all routes registered
func SetupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/health", http.StatusTemporaryRedirect)
	})

	transactions.RegisterRoutes(r)
	dashboard.RegisterRoutes(r)
	settings.RegisterRoutes(r)
	export.RegisterRoutes(r)
	backup.RegisterRoutes(r)

	return r
}

// unlockInteractive prompts for the storage password on the terminal
func unlockInteractive(s *storage.Store) error {
	for attempts := 0; attempts < 3; attempts++ {
		fmt.Fprint(os.Stderr, "Storage password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("could not read password: %w", err)
		}

		if err := s.Unlock(string(pw)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		return nil
	}
	return fmt.Errorf("too many failed unlock attempts")
}
