package models

// TypeTotal is the aggregate for one transaction type.
type TypeTotal struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CategoryTotal is the expense aggregate for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// MonthTotal is the aggregate for one calendar month.
type MonthTotal struct {
	Month       string  `json:"month"`
	MonthNumber int     `json:"monthNumber"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

// Summary is the full aggregation response. Totals are zero, never absent,
// when a group has no rows.
type Summary struct {
	TotalIncome      float64              `json:"totalIncome"`
	TotalExpense     float64              `json:"totalExpense"`
	TotalTransfer    float64              `json:"totalTransfer"`
	NetAmount        float64              `json:"netAmount"`
	TransactionCount int                  `json:"transactionCount"`
	ByType           map[string]TypeTotal `json:"byType"`
	ByCategory       []CategoryTotal      `json:"byCategory"`
	ByMonth          []MonthTotal         `json:"byMonth"`
}
