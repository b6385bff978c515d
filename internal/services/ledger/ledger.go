// Package ledger owns the canonical transaction list and the persisted
// user settings. Every mutation writes the whole collection back to the
// store; derived views (filters, aggregates) are computed elsewhere and
// never hold their own copy.
package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/models"
	"fintrack/internal/services/storage"
)

// Storage keys, one document per key
const (
	keyTransactions  = "transactions"
	keySavingsTarget = "savings_target"
	keyCurrency      = "currency"
	keyDarkMode      = "dark_mode"
)

// Column identifies a sortable column of the transaction table
type Column string

const (
	ColumnDate     Column = "date"
	ColumnCategory Column = "category"
	ColumnAmount   Column = "amount"
)

// Direction is a sort direction
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ErrUnknownColumn is returned when sorting by an unsupported column
var ErrUnknownColumn = fmt.Errorf("unknown sort column")

// Ledger is the single source of truth for transactions and settings
type Ledger struct {
	store *storage.Store

	mu           sync.Mutex
	transactions []models.Transaction
	sortDirs     map[Column]Direction
	settings     models.Settings
}

// Open loads the persisted state from the store. Missing or unreadable
// documents fall back to an empty list and default settings; loading is
// never fatal.
func Open(store *storage.Store) *Ledger {
	l := &Ledger{
		store:    store,
		settings: models.DefaultSettings(),
		// Last-used directions; the first sort on a column flips these
		sortDirs: map[Column]Direction{
			ColumnDate:     Descending,
			ColumnCategory: Ascending,
			ColumnAmount:   Descending,
		},
	}

	if data, err := store.Read(keyTransactions); err == nil {
		var txs []models.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			log.Printf("Warning: corrupt transaction data, starting empty: %v", err)
		} else {
			l.transactions = txs
		}
	}

	readScalar(store, keySavingsTarget, &l.settings.SavingsTarget)
	readScalar(store, keyCurrency, &l.settings.Currency)
	readScalar(store, keyDarkMode, &l.settings.DarkMode)

	return l
}

// readScalar loads one settings value, leaving the default on any failure
func readScalar[T any](store *storage.Store, key string, dst *T) {
	data, err := store.Read(key)
	if err != nil {
		return
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("Warning: corrupt setting %q ignored: %v", key, err)
		return
	}
	*dst = v
}

// Transactions returns a copy of the transaction list in canonical order
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Len returns the number of transactions
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transactions)
}

// Add validates and prepends a new transaction, assigning it a fresh ID.
// The stored record is returned. The whole list is persisted; on a write
// failure the in-memory change is kept and the error returned.
func (l *Ledger) Add(t models.Transaction) (models.Transaction, error) {
	if err := t.Validate(); err != nil {
		return models.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t.ID = uuid.NewString()
	l.transactions = append([]models.Transaction{t}, l.transactions...)

	return t, l.persistTransactions()
}

// Update replaces all fields of the transaction with the given ID except
// the ID itself. An absent ID is a silent no-op.
func (l *Ledger) Update(id string, t models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.transactions {
		if l.transactions[i].ID == id {
			t.ID = id
			l.transactions[i] = t
			return l.persistTransactions()
		}
	}
	return nil
}

// Delete removes the transaction with the given ID. An absent ID is a
// silent no-op.
func (l *Ledger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return l.persistTransactions()
		}
	}
	return nil
}

// SortBy flips the remembered direction of the given column and reorders
// the canonical list in place. Each column keeps its own direction;
// sorting one column leaves the others' remembered directions untouched.
// The sort is stable, so equal keys keep their relative order. The new
// order stands until the next sort, insert, or delete; it is not written
// to storage by itself.
func (l *Ledger) SortBy(column Column) (Direction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir, ok := l.sortDirs[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if dir == Ascending {
		dir = Descending
	} else {
		dir = Ascending
	}
	l.sortDirs[column] = dir

	txs := l.transactions
	var less func(i, j int) bool
	switch column {
	case ColumnDate:
		less = func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) }
	case ColumnCategory:
		less = func(i, j int) bool {
			return strings.ToLower(txs[i].Category) < strings.ToLower(txs[j].Category)
		}
	case ColumnAmount:
		less = func(i, j int) bool { return txs[i].Amount < txs[j].Amount }
	}
	if dir == Descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(txs, less)

	return dir, nil
}

// SortDirection returns the remembered direction of a column
func (l *Ledger) SortDirection(column Column) Direction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortDirs[column]
}

// Months returns the distinct year-months ("YYYY-MM") present in the
// data, newest first. Feeds the month-filter option list.
func (l *Ledger) Months() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool)
	for _, t := range l.transactions {
		seen[t.Date.YearMonth()] = true
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Settings returns the current user settings
func (l *Ledger) Settings() models.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// SetSavingsTarget validates and persists the savings target
func (l *Ledger) SetSavingsTarget(target float64) error {
	if target < 0 {
		return models.ErrInvalidTarget
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings.SavingsTarget = target
	return l.persistScalar(keySavingsTarget, target)
}

// SetCurrency persists the preferred currency code
func (l *Ledger) SetCurrency(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("currency code cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings.Currency = code
	return l.persistScalar(keyCurrency, code)
}

// SetDarkMode persists the theme flag
func (l *Ledger) SetDarkMode(enabled bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings.DarkMode = enabled
	return l.persistScalar(keyDarkMode, enabled)
}

// persistTransactions writes the whole list back to storage.
// Callers must hold the mutex.
func (l *Ledger) persistTransactions() error {
	data, err := json.Marshal(l.transactions)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	if err := l.store.Write(keyTransactions, data); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	return nil
}

func (l *Ledger) persistScalar(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}
	if err := l.store.Write(key, data); err != nil {
		return fmt.Errorf("failed to persist setting %q: %w", key, err)
	}
	return nil
}
