package models

// TransactionFilter narrows a transaction listing. All fields are optional
// and AND-combined; the owning user is always applied by the store and is
// not part of the filter.
type TransactionFilter struct {
	StartDate     string
	EndDate       string
	Type          string
	CategoryID    *int64
	SubcategoryID *int64
	AccountID     *int64
	StatusID      *int64
	ModeID        *int64
	PlatformID    *int64
	FinancialYear string
	Year          *int
	MonthNumber   *int
	Week          *int
	MinAmount     *float64
	MaxAmount     *float64
	IsWeekend     *bool
	SortBy        string
	SortOrder     string // "asc" or "desc"; anything else means desc
	Limit         int
	Offset        int
}

// SummaryFilter narrows the aggregation window.
type SummaryFilter struct {
	FinancialYear string
	Year          *int
	MonthNumber   *int
	StartDate     string
	EndDate       string
}
