package filter

import (
	"reflect"
	"testing"

	"fintrack/internal/models"
)

func mustDate(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "1", Type: models.Income, Category: "Gaji", Amount: 100000, Date: mustDate("2024-01-01"), Description: "Gaji bulanan"},
		{ID: "2", Type: models.Expense, Category: "Makanan", Amount: 40000, Date: mustDate("2024-01-02"), Description: "Makan siang"},
		{ID: "3", Type: models.Expense, Category: "Transportasi", Amount: 15000, Date: mustDate("2024-02-10"), Description: "Bensin"},
		{ID: "4", Type: models.Expense, Category: "Makanan", Amount: 25000, Date: mustDate("2024-02-14"), Description: ""},
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestEmptySpecIsIdentity(t *testing.T) {
	txs := sampleTransactions()

	got := Apply(txs, Spec{})

	if !reflect.DeepEqual(ids(got), []string{"1", "2", "3", "4"}) {
		t.Errorf("empty spec changed the list: %v", ids(got))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	txs := sampleTransactions()
	spec := Spec{Category: "Makanan", Month: "2024-01"}

	once := Apply(txs, spec)
	twice := Apply(once, spec)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering a filtered result changed it: %v vs %v", ids(once), ids(twice))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	txs := sampleTransactions()
	before := ids(txs)

	Apply(txs, Spec{Search: "makan"})

	if !reflect.DeepEqual(ids(txs), before) {
		t.Error("Apply mutated its input")
	}
}

func TestSearchMatchesDescriptionOrCategory(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"description substring", "siang", []string{"2"}},
		{"category substring", "transport", []string{"3"}},
		{"case insensitive", "MAKAN", []string{"2", "4"}},
		{"no match", "pulsa", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(txs, Spec{Search: tt.search}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("search %q = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestCategoryIsExactMatch(t *testing.T) {
	txs := sampleTransactions()

	got := ids(Apply(txs, Spec{Category: "Makanan"}))
	if !reflect.DeepEqual(got, []string{"2", "4"}) {
		t.Errorf("category filter = %v, want [2 4]", got)
	}

	// Exact, not substring
	got = ids(Apply(txs, Spec{Category: "Makan"}))
	if len(got) != 0 {
		t.Errorf("partial category matched: %v", got)
	}
}

func TestMonthFilter(t *testing.T) {
	txs := sampleTransactions()

	got := ids(Apply(txs, Spec{Month: "2024-02"}))
	if !reflect.DeepEqual(got, []string{"3", "4"}) {
		t.Errorf("month filter = %v, want [3 4]", got)
	}
}

func TestDateRangeBoundsAreInclusive(t *testing.T) {
	txs := sampleTransactions()
	spec := Spec{Start: mustDate("2024-01-02"), End: mustDate("2024-02-10")}

	got := Apply(txs, spec)

	if !reflect.DeepEqual(ids(got), []string{"2", "3"}) {
		t.Fatalf("date range = %v, want [2 3]", ids(got))
	}
	for _, tx := range got {
		if tx.Date.Before(spec.Start) || tx.Date.After(spec.End) {
			t.Errorf("transaction %s date %s outside [%s, %s]", tx.ID, tx.Date, spec.Start, spec.End)
		}
	}
}

func TestOpenEndedDateRange(t *testing.T) {
	txs := sampleTransactions()

	got := ids(Apply(txs, Spec{Start: mustDate("2024-02-01")}))
	if !reflect.DeepEqual(got, []string{"3", "4"}) {
		t.Errorf("start-only range = %v, want [3 4]", got)
	}

	got = ids(Apply(txs, Spec{End: mustDate("2024-01-02")}))
	if !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("end-only range = %v, want [1 2]", got)
	}
}

func TestAllPredicatesAreANDed(t *testing.T) {
	txs := sampleTransactions()
	spec := Spec{
		Search:   "makan",
		Category: "Makanan",
		Month:    "2024-01",
		Start:    mustDate("2024-01-01"),
		End:      mustDate("2024-12-31"),
	}

	got := ids(Apply(txs, spec))
	if !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("combined spec = %v, want [2]", got)
	}
}
