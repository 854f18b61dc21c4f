package models

// Summary is the server-computed aggregate over expenses, optionally filtered
// by category and month. Percentages are produced by the backend; the console
// only rounds them for display and must tolerate a set that does not sum to
// exactly 100.
type Summary struct {
	TotalAmount       float64             `json:"totalAmount"`
	TotalCount        int64               `json:"totalCount"`
	AverageAmount     float64             `json:"averageAmount"`
	MaxAmount         float64             `json:"maxAmount"`
	MinAmount         float64             `json:"minAmount"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	MonthlyBreakdown  []MonthlyBreakdown  `json:"monthlyBreakdown"`
}

// CategoryBreakdown is one category's share of the summarized total
type CategoryBreakdown struct {
	CategoryName string  `json:"categoryName"`
	TotalAmount  float64 `json:"totalAmount"`
	Count        int64   `json:"count"`
	Percentage   float64 `json:"percentage"`
}

// MonthlyBreakdown is one month's totals, keyed by a "YYYY-MM" token
type MonthlyBreakdown struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int64   `json:"count"`
}

// SummaryFilters narrows the summary to a category and/or month.
// Unset fields are omitted from the query entirely, never sent as empty strings.
type SummaryFilters struct {
	CategoryID string
	Month      string
}

// IsEmpty reports whether no filter is set
func (f SummaryFilters) IsEmpty() bool {
	return f.CategoryID == "" && f.Month == ""
}
