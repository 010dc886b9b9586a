package models

// Transaction is the full record returned by the store, with master display
// names joined in at read time.
type Transaction struct {
	ID             int64    `json:"id"`
	TransactionID  string   `json:"transactionId"`
	UserID         int64    `json:"userId"`
	Date           string   `json:"date"`
	Week           int      `json:"week"`
	Year           int      `json:"year"`
	FinancialYear  string   `json:"financialYear"`
	Month          string   `json:"month"`
	MonthNumber    int      `json:"monthNumber"`
	WeekdayNumber  int      `json:"weekdayNumber"`
	IsWeekend      bool     `json:"isWeekend"`
	Type           string   `json:"type"`
	Category       *string  `json:"category"`
	CategoryID     *int64   `json:"categoryId"`
	SubCategory    *string  `json:"subCategory"`
	SubcategoryID  *int64   `json:"subcategoryId"`
	Description    string   `json:"description"`
	Quantity       *float64 `json:"quantity"`
	UnitPrice      *float64 `json:"unitPrice"`
	ManualAmount   *float64 `json:"manualAmount"`
	Amount         float64  `json:"amount"`
	Account        *string  `json:"account"`
	AccountID      *int64   `json:"accountId"`
	Status         *string  `json:"status"`
	StatusID       *int64   `json:"statusId"`
	Mode           *string  `json:"mode"`
	ModeID         *int64   `json:"modeId"`
	Platform       *string  `json:"platform"`
	PlatformID     *int64   `json:"platformId"`
	Notes          *string  `json:"notes"`
	EntryTimestamp string   `json:"entryTimestamp"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// TransactionInput carries the user-settable fields of a new transaction.
// Derived fields are never accepted from the caller.
type TransactionInput struct {
	Date          string   `json:"date"`
	Type          string   `json:"type"`
	CategoryID    *int64   `json:"categoryId"`
	SubcategoryID *int64   `json:"subcategoryId"`
	Description   string   `json:"description"`
	Quantity      *float64 `json:"quantity"`
	UnitPrice     *float64 `json:"unitPrice"`
	ManualAmount  *float64 `json:"manualAmount"`
	AccountID     *int64   `json:"accountId"`
	StatusID      *int64   `json:"statusId"`
	ModeID        *int64   `json:"modeId"`
	PlatformID    *int64   `json:"platformId"`
	Notes         *string  `json:"notes"`
}

// TransactionPatch is a partial update. A nil field keeps the stored value.
// A reference id of 0 clears the reference.
type TransactionPatch struct {
	Date          *string  `json:"date"`
	Type          *string  `json:"type"`
	CategoryID    *int64   `json:"categoryId"`
	SubcategoryID *int64   `json:"subcategoryId"`
	Description   *string  `json:"description"`
	Quantity      *float64 `json:"quantity"`
	UnitPrice     *float64 `json:"unitPrice"`
	ManualAmount  *float64 `json:"manualAmount"`
	AccountID     *int64   `json:"accountId"`
	StatusID      *int64   `json:"statusId"`
	ModeID        *int64   `json:"modeId"`
	PlatformID    *int64   `json:"platformId"`
	Notes         *string  `json:"notes"`
}

// Transaction types.
const (
	TypeIncome   = "Income"
	TypeExpense  = "Expense"
	TypeTransfer = "Transfer"
)

// ValidType reports whether t is one of the accepted transaction types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}
