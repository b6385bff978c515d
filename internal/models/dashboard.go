package models

// DefaultCategories is the category list used for the expense breakdown chart
var DefaultCategories = []string{
	"Makanan", "Transportasi", "Hiburan", "Pendidikan", "Tabungan", "Lainnya",
}

// Totals contains the headline dashboard numbers
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// DailyPoint is one entry of the trailing balance series.
// Balance is the cumulative balance as of that day, not the day's net flow.
type DailyPoint struct {
	Label   string  `json:"label"`
	Balance float64 `json:"balance"`
}

// CategoryBreakdown holds expense sums per category, in the order the
// category list was given. Only categories with a non-zero sum appear;
// expenses whose category is outside the given list are omitted from
// this view (known limitation, kept from the original behavior).
type CategoryBreakdown struct {
	Labels  []string  `json:"labels"`
	Amounts []float64 `json:"amounts"`
}

// Settings holds the persisted scalar user settings
type Settings struct {
	SavingsTarget float64 `json:"savings_target"`
	Currency      string  `json:"currency"`
	DarkMode      bool    `json:"dark_mode"`
}

// DefaultSettings returns the settings used when nothing has been persisted
func DefaultSettings() Settings {
	return Settings{
		SavingsTarget: 0,
		Currency:      "IDR",
		DarkMode:      false,
	}
}

// ChartData represents one series of a chart
type ChartData struct {
	Type   string      `json:"type"` // bar, pie, line
	X      interface{} `json:"x,omitempty"`
	Y      interface{} `json:"y,omitempty"`
	Labels []string    `json:"labels,omitempty"` // for pie charts
	Values []float64   `json:"values,omitempty"` // for pie charts
	Name   string      `json:"name"`
}

// ChartResponse wraps chart data with layout options
type ChartResponse struct {
	Data   []ChartData `json:"data"`
	Layout ChartLayout `json:"layout,omitempty"`
}

// ChartLayout defines chart layout options
type ChartLayout struct {
	Title      string `json:"title,omitempty"`
	XAxisTitle string `json:"xaxis_title,omitempty"`
	YAxisTitle string `json:"yaxis_title,omitempty"`
	ShowLegend bool   `json:"showlegend,omitempty"`
}
