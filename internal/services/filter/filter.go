// Package filter selects subsequences of the transaction list. All
// predicates are pure; applying a filter never mutates its input.
package filter

import (
	"strings"

	"fintrack/internal/models"
)

// Spec describes one filter pass. Zero-valued fields are no-ops, so the
// empty Spec is the identity filter.
type Spec struct {
	Search   string      // case-insensitive substring of description or category
	Category string      // exact category match
	Month    string      // "YYYY-MM"
	Start    models.Date // inclusive lower date bound
	End      models.Date // inclusive upper date bound
}

// Apply returns the transactions satisfying every set constraint, in
// their original relative order.
func Apply(txs []models.Transaction, spec Spec) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if matches(t, spec, search) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t models.Transaction, spec Spec, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(t.Description), search) &&
		!strings.Contains(strings.ToLower(t.Category), search) {
		return false
	}
	if spec.Category != "" && t.Category != spec.Category {
		return false
	}
	if spec.Month != "" && t.Date.YearMonth() != spec.Month {
		return false
	}
	if !spec.Start.IsZero() && t.Date.Before(spec.Start) {
		return false
	}
	if !spec.End.IsZero() && t.Date.After(spec.End) {
		return false
	}
	return true
}
