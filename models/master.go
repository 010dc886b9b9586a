package models

// Master is a user-scoped lookup row (account, status, mode, platform).
// Deleting one only clears the active flag so historical transactions keep
// resolving its name.
type Master struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// Category is a master with a type and an optional budget.
type Category struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"userId"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Budget    *float64 `json:"budget"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"createdAt"`
}

// Subcategory belongs to a category and is owned through it.
type Subcategory struct {
	ID           int64  `json:"id"`
	CategoryID   int64  `json:"categoryId"`
	Name         string `json:"name"`
	CategoryName string `json:"categoryName,omitempty"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"createdAt"`
}
