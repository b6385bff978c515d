package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// TransactionType indicates whether a transaction is income or an expense
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day semantics.
// It serializes as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// YearMonth returns the "YYYY-MM" prefix of the date
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// Before reports whether d falls on an earlier calendar day than o
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d falls on a later calendar day than o
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// Equal reports whether two dates are the same calendar day
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Transaction represents a single recorded income or expense event
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
}

var (
	ErrInvalidType   = errors.New("transaction type must be income or expense")
	ErrInvalidAmount = errors.New("amount must be a finite, non-negative number")
	ErrInvalidDate   = errors.New("transaction date is missing or invalid")
	ErrEmptyCategory = errors.New("category cannot be empty")
	ErrInvalidTarget = errors.New("savings target must be a non-negative number")
)

// Validate checks the transaction fields before it is committed.
// Amounts are stored as non-negative magnitudes; the sign is implied by Type.
func (t Transaction) Validate() error {
	switch t.Type {
	case Income, Expense:
	default:
		return ErrInvalidType
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
