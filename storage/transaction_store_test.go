package storage

import (
	"strings"
	"testing"

	"fintrack/models"
)

func TestCreateTransactionDerivesFields(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	// 2025-06-14 is a Saturday in FY2025-26.
	txn, err := store.Create(userID, models.TransactionInput{
		Date:        "2025-06-14",
		Description: "Groceries",
		Quantity:    f64(3),
		UnitPrice:   f64(25.5),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !strings.HasPrefix(txn.TransactionID, "TXN-20250614-") {
		t.Errorf("Expected transactionId prefix TXN-20250614-, got %s", txn.TransactionID)
	}
	if txn.Amount != 76.5 {
		t.Errorf("Expected amount 76.5, got %v", txn.Amount)
	}
	if txn.Type != models.TypeExpense {
		t.Errorf("Expected type to default to Expense, got %s", txn.Type)
	}
	if txn.Year != 2025 || txn.MonthNumber != 6 || txn.Month != "June" {
		t.Errorf("Unexpected calendar fields: year=%d month=%s monthNumber=%d", txn.Year, txn.Month, txn.MonthNumber)
	}
	if txn.FinancialYear != "FY2025-26" {
		t.Errorf("Expected financial year FY2025-26, got %s", txn.FinancialYear)
	}
	if txn.Week != 24 {
		t.Errorf("Expected week 24, got %d", txn.Week)
	}
	if txn.WeekdayNumber != 6 || !txn.IsWeekend {
		t.Errorf("Expected Saturday weekend, got weekday=%d isWeekend=%v", txn.WeekdayNumber, txn.IsWeekend)
	}
	if txn.EntryTimestamp == "" || txn.CreatedAt == "" {
		t.Error("Expected timestamps to be set")
	}
}

func TestCreateTransactionAmountPrecedence(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	// Quantity and unit price win over a manual amount.
	txn, err := store.Create(userID, models.TransactionInput{
		Date:         "2025-06-14",
		Description:  "Both amount sources",
		Quantity:     f64(2),
		UnitPrice:    f64(10),
		ManualAmount: f64(99),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if txn.Amount != 20 {
		t.Errorf("Expected computed amount 20, got %v", txn.Amount)
	}

	txn, err = store.Create(userID, models.TransactionInput{
		Date:         "2025-06-14",
		Description:  "Manual amount only",
		ManualAmount: f64(42.5),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if txn.Amount != 42.5 {
		t.Errorf("Expected manual amount 42.5, got %v", txn.Amount)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	tests := []struct {
		name  string
		input models.TransactionInput
	}{
		{"missing date", models.TransactionInput{Description: "x", ManualAmount: f64(1)}},
		{"bad date format", models.TransactionInput{Date: "14/06/2025", Description: "x", ManualAmount: f64(1)}},
		{"missing description", models.TransactionInput{Date: "2025-06-14", ManualAmount: f64(1)}},
		{"invalid type", models.TransactionInput{Date: "2025-06-14", Description: "x", Type: "Refund", ManualAmount: f64(1)}},
		{"no amount source", models.TransactionInput{Date: "2025-06-14", Description: "x"}},
		{"quantity without unit price", models.TransactionInput{Date: "2025-06-14", Description: "x", Quantity: f64(2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(userID, tc.input)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !IsValidation(err) {
				t.Errorf("Expected a validation error, got %v", err)
			}
		})
	}
}

func TestUpdateRederivesCalendarFields(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	txn, err := store.Create(userID, models.TransactionInput{
		Date:         "2025-01-15",
		Description:  "Rent",
		ManualAmount: f64(50),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if txn.FinancialYear != "FY2024-25" {
		t.Fatalf("Expected FY2024-25 before update, got %s", txn.FinancialYear)
	}

	// Changing only the date moves the calendar fields and keeps the amount.
	updated, err := store.Update(txn.ID, userID, models.TransactionPatch{Date: str("2025-04-02")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FinancialYear != "FY2025-26" {
		t.Errorf("Expected FY2025-26 after update, got %s", updated.FinancialYear)
	}
	if updated.Month != "April" || updated.MonthNumber != 4 {
		t.Errorf("Expected April, got %s (%d)", updated.Month, updated.MonthNumber)
	}
	if updated.Amount != 50 {
		t.Errorf("Expected amount to stay 50, got %v", updated.Amount)
	}
	if updated.Description != "Rent" {
		t.Errorf("Expected description to be kept, got %s", updated.Description)
	}
	if updated.TransactionID != txn.TransactionID {
		t.Errorf("Expected transactionId to be immutable, got %s", updated.TransactionID)
	}
}

func TestUpdateRecomputesAmount(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	txn, err := store.Create(userID, models.TransactionInput{
		Date:        "2025-06-14",
		Description: "Snacks",
		Quantity:    f64(2),
		UnitPrice:   f64(10),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(txn.ID, userID, models.TransactionPatch{Quantity: f64(5)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Amount != 50 {
		t.Errorf("Expected recomputed amount 50, got %v", updated.Amount)
	}
}

func TestUpdateClearsReference(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	category, err := NewCategoryStore(db).Create(userID, "Food", models.TypeExpense, nil)
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	txn, err := store.Create(userID, models.TransactionInput{
		Date:         "2025-06-14",
		Description:  "Lunch",
		ManualAmount: f64(10),
		CategoryID:   &category.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if txn.Category == nil || *txn.Category != "Food" {
		t.Fatalf("Expected joined category name Food, got %v", txn.Category)
	}

	// A reference id of 0 clears the link.
	updated, err := store.Update(txn.ID, userID, models.TransactionPatch{CategoryID: i64(0)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CategoryID != nil {
		t.Errorf("Expected category to be cleared, got %v", *updated.CategoryID)
	}

	// An omitted reference keeps the stored value.
	restored, err := store.Update(txn.ID, userID, models.TransactionPatch{CategoryID: &category.ID})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	kept, err := store.Update(txn.ID, userID, models.TransactionPatch{Notes: str("updated")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if kept.CategoryID == nil || *kept.CategoryID != *restored.CategoryID {
		t.Error("Expected omitted categoryId to keep the stored value")
	}
}

func TestTransactionOwnership(t *testing.T) {
	db, userID := setupTestDB(t)
	otherID := createTestUser(t, db, "otheruser")
	store := NewTransactionStore(db)

	txn, err := store.Create(userID, models.TransactionInput{
		Date:         "2025-06-14",
		Description:  "Private",
		ManualAmount: f64(10),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got, err := store.FindByIDAndUser(txn.ID, otherID); err != nil || got != nil {
		t.Errorf("Expected another user's lookup to return nil, got %v, %v", got, err)
	}
	if got, err := store.FindByTransactionID(txn.TransactionID, otherID); err != nil || got != nil {
		t.Errorf("Expected another user's txn id lookup to return nil, got %v, %v", got, err)
	}
	if got, err := store.Update(txn.ID, otherID, models.TransactionPatch{Description: str("stolen")}); err != nil || got != nil {
		t.Errorf("Expected another user's update to return nil, got %v, %v", got, err)
	}
	if deleted, err := store.Delete(txn.ID, otherID); err != nil || deleted {
		t.Errorf("Expected another user's delete to report false, got %v, %v", deleted, err)
	}

	// Still there for the owner.
	got, err := store.FindByIDAndUser(txn.ID, userID)
	if err != nil || got == nil {
		t.Fatalf("Expected the owner to still find the transaction, got %v, %v", got, err)
	}
	if got.Description != "Private" {
		t.Errorf("Expected description unchanged, got %s", got.Description)
	}
}

func TestDeleteTransaction(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	txn, err := store.Create(userID, models.TransactionInput{
		Date:         "2025-06-14",
		Description:  "Temp",
		ManualAmount: f64(10),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(txn.ID, userID)
	if err != nil || !deleted {
		t.Fatalf("Expected delete to succeed, got %v, %v", deleted, err)
	}

	deleted, err = store.Delete(txn.ID, userID)
	if err != nil || deleted {
		t.Errorf("Expected second delete to report false, got %v, %v", deleted, err)
	}

	got, err := store.FindByIDAndUser(txn.ID, userID)
	if err != nil || got != nil {
		t.Errorf("Expected the transaction to be gone, got %v, %v", got, err)
	}
}

func TestFindFilteredAndCount(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	seed := []models.TransactionInput{
		{Date: "2025-01-15", Description: "Rent", Type: models.TypeExpense, ManualAmount: f64(100)},
		{Date: "2025-01-18", Description: "Dinner", Type: models.TypeExpense, ManualAmount: f64(40)}, // Saturday
		{Date: "2025-02-10", Description: "Salary", Type: models.TypeIncome, ManualAmount: f64(200)},
		{Date: "2025-03-05", Description: "Savings move", Type: models.TypeTransfer, ManualAmount: f64(75)},
	}
	for _, in := range seed {
		if _, err := store.Create(userID, in); err != nil {
			t.Fatalf("Failed to seed transaction: %v", err)
		}
	}

	assertCount := func(name string, f models.TransactionFilter, want int) {
		t.Helper()
		txns, err := store.FindFiltered(userID, f)
		if err != nil {
			t.Fatalf("%s: FindFiltered failed: %v", name, err)
		}
		if len(txns) != want {
			t.Errorf("%s: expected %d transactions, got %d", name, want, len(txns))
		}
		total, err := store.Count(userID, f)
		if err != nil {
			t.Fatalf("%s: Count failed: %v", name, err)
		}
		if total != want {
			t.Errorf("%s: expected count %d, got %d", name, want, total)
		}
	}

	assertCount("no filter", models.TransactionFilter{}, 4)
	assertCount("by type", models.TransactionFilter{Type: models.TypeExpense}, 2)
	assertCount("date range", models.TransactionFilter{StartDate: "2025-01-01", EndDate: "2025-01-31"}, 2)
	assertCount("month", models.TransactionFilter{MonthNumber: intp(2)}, 1)
	assertCount("weekend", models.TransactionFilter{IsWeekend: boolp(true)}, 1)
	assertCount("amount range", models.TransactionFilter{MinAmount: f64(50), MaxAmount: f64(150)}, 2)
	assertCount("financial year", models.TransactionFilter{FinancialYear: "FY2024-25"}, 4)

	// Default sort is date descending.
	txns, err := store.FindFiltered(userID, models.TransactionFilter{})
	if err != nil {
		t.Fatalf("FindFiltered failed: %v", err)
	}
	if txns[0].Date != "2025-03-05" || txns[3].Date != "2025-01-15" {
		t.Errorf("Expected date descending order, got %s first and %s last", txns[0].Date, txns[3].Date)
	}

	// Pagination trims the page but not the total.
	page, err := store.FindFiltered(userID, models.TransactionFilter{
		SortBy: "date", SortOrder: "asc", Limit: 2, Offset: 1,
	})
	if err != nil {
		t.Fatalf("FindFiltered failed: %v", err)
	}
	if len(page) != 2 || page[0].Date != "2025-01-18" {
		t.Errorf("Expected page of 2 starting at 2025-01-18, got %d starting at %s", len(page), page[0].Date)
	}
	total, err := store.Count(userID, models.TransactionFilter{Limit: 2, Offset: 1})
	if err != nil || total != 4 {
		t.Errorf("Expected total 4 regardless of pagination, got %d, %v", total, err)
	}
}

func TestFindFilteredRejectsUnknownSortColumn(t *testing.T) {
	db, userID := setupTestDB(t)
	store := NewTransactionStore(db)

	_, err := store.FindFiltered(userID, models.TransactionFilter{SortBy: "amount; DROP TABLE users"})
	if err == nil || !IsValidation(err) {
		t.Errorf("Expected a validation error for an unknown sort column, got %v", err)
	}
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }
