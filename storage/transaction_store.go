package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"fintrack/derive"
	"fintrack/models"
)

const dateLayout = "2006-01-02"

// TransactionStore persists transactions and answers filtered queries over
// them. Every query is scoped to the owning user; there is no way to reach
// another user's rows through this type.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

const transactionSelect = `
	SELECT t.id, t.transactionId, t.userId, t.date, t.week, t.year, t.financialYear,
		t.month, t.monthNumber, t.weekdayNumber, t.isWeekend, t.type,
		t.categoryId, c.name, t.subcategoryId, sc.name,
		t.description, t.quantity, t.unitPrice, t.manualAmount, t.amount,
		t.accountId, a.name, t.statusId, st.name, t.modeId, m.name, t.platformId, p.name,
		t.notes, t.entryTimestamp, t.createdAt, t.updatedAt
	FROM master_transactions t
	LEFT JOIN categories c ON t.categoryId = c.id
	LEFT JOIN subcategories sc ON t.subcategoryId = sc.id
	LEFT JOIN accounts a ON t.accountId = a.id
	LEFT JOIN statuses st ON t.statusId = st.id
	LEFT JOIN modes m ON t.modeId = m.id
	LEFT JOIN platforms p ON t.platformId = p.id
`

// Create validates the input, derives the read-only fields and persists a
// new transaction for the given user. The returned record includes the
// joined master names.
func (s *TransactionStore) Create(userID int64, in models.TransactionInput) (*models.Transaction, error) {
	if in.Date == "" {
		return nil, validationErr("Date is required")
	}
	date, err := time.ParseInLocation(dateLayout, in.Date, time.UTC)
	if err != nil {
		return nil, validationErr("Date must be in YYYY-MM-DD format")
	}
	if in.Description == "" {
		return nil, validationErr("Description is required")
	}

	txnType := in.Type
	if txnType == "" {
		txnType = models.TypeExpense
	}
	if !models.ValidType(txnType) {
		return nil, validationErr("Type must be Income, Expense, or Transfer")
	}

	hasQuantityAndPrice := in.Quantity != nil && in.UnitPrice != nil
	if !hasQuantityAndPrice && in.ManualAmount == nil {
		return nil, validationErr("Either Quantity and UnitPrice, or ManualAmount must be provided")
	}

	fields := derive.CalendarFields(date)
	amount := derive.ComputeAmount(in.Quantity, in.UnitPrice, in.ManualAmount)
	now := time.Now().UTC().Format(time.RFC3339)

	var id int64
	// The transactionId suffix is short and random. A UNIQUE index catches
	// the rare collision; one retry with a fresh suffix is enough in
	// practice.
	for attempt := 0; attempt < 2; attempt++ {
		txnID := derive.NewTransactionID(date)
		res, err := s.db.Exec(`
			INSERT INTO master_transactions (
				transactionId, userId,
				date, week, year, financialYear, month, monthNumber, weekdayNumber, isWeekend,
				type, categoryId, subcategoryId,
				description, quantity, unitPrice, manualAmount, amount,
				accountId, statusId, modeId, platformId,
				notes, entryTimestamp, createdAt, updatedAt
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txnID, userID,
			in.Date, fields.Week, fields.Year, fields.FinancialYear,
			fields.Month, fields.MonthNumber, fields.WeekdayNumber, fields.IsWeekend,
			txnType, refValue(in.CategoryID), refValue(in.SubcategoryID),
			in.Description, in.Quantity, in.UnitPrice, in.ManualAmount, amount,
			refValue(in.AccountID), refValue(in.StatusID), refValue(in.ModeID), refValue(in.PlatformID),
			in.Notes, now, now, now,
		)
		if err != nil {
			if attempt == 0 && isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
		break
	}

	return s.FindByID(id)
}

// FindByID looks a transaction up by its internal id without user scoping.
// Only the store itself and trusted callers should use it.
func (s *TransactionStore) FindByID(id int64) (*models.Transaction, error) {
	return s.scanOne(s.db.QueryRow(transactionSelect+" WHERE t.id = ?", id))
}

// FindByIDAndUser looks a transaction up by id for the given owner. It
// returns (nil, nil) when no owned row matches.
func (s *TransactionStore) FindByIDAndUser(id, userID int64) (*models.Transaction, error) {
	return s.scanOne(s.db.QueryRow(transactionSelect+" WHERE t.id = ? AND t.userId = ?", id, userID))
}

// FindByTransactionID looks a transaction up by its external identifier for
// the given owner.
func (s *TransactionStore) FindByTransactionID(txnID string, userID int64) (*models.Transaction, error) {
	return s.scanOne(s.db.QueryRow(transactionSelect+" WHERE t.transactionId = ? AND t.userId = ?", txnID, userID))
}

// Update applies a partial update to an owned transaction. Omitted fields
// keep their stored values. Calendar fields are re-derived from the
// effective date and the amount is recomputed from the effective inputs, so
// both always stay consistent with whatever is stored. Returns (nil, nil)
// when the row does not exist or belongs to someone else.
func (s *TransactionStore) Update(id, userID int64, patch models.TransactionPatch) (*models.Transaction, error) {
	existing, err := s.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	effDate := existing.Date
	if patch.Date != nil && *patch.Date != "" {
		effDate = *patch.Date
	}
	date, err := time.ParseInLocation(dateLayout, effDate, time.UTC)
	if err != nil {
		return nil, validationErr("Date must be in YYYY-MM-DD format")
	}

	txnType := existing.Type
	if patch.Type != nil && *patch.Type != "" {
		if !models.ValidType(*patch.Type) {
			return nil, validationErr("Type must be Income, Expense, or Transfer")
		}
		txnType = *patch.Type
	}

	description := existing.Description
	if patch.Description != nil && *patch.Description != "" {
		description = *patch.Description
	}

	quantity := effFloat(patch.Quantity, existing.Quantity)
	unitPrice := effFloat(patch.UnitPrice, existing.UnitPrice)
	manualAmount := effFloat(patch.ManualAmount, existing.ManualAmount)

	fields := derive.CalendarFields(date)
	amount := derive.ComputeAmount(quantity, unitPrice, manualAmount)

	notes := existing.Notes
	if patch.Notes != nil {
		notes = patch.Notes
	}

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.Exec(`
		UPDATE master_transactions SET
			date = ?, week = ?, year = ?, financialYear = ?, month = ?,
			monthNumber = ?, weekdayNumber = ?, isWeekend = ?,
			type = ?, categoryId = ?, subcategoryId = ?,
			description = ?, quantity = ?, unitPrice = ?, manualAmount = ?, amount = ?,
			accountId = ?, statusId = ?, modeId = ?, platformId = ?,
			notes = ?, updatedAt = ?
		WHERE id = ? AND userId = ?`,
		effDate, fields.Week, fields.Year, fields.FinancialYear, fields.Month,
		fields.MonthNumber, fields.WeekdayNumber, fields.IsWeekend,
		txnType, effRef(patch.CategoryID, existing.CategoryID), effRef(patch.SubcategoryID, existing.SubcategoryID),
		description, quantity, unitPrice, manualAmount, amount,
		effRef(patch.AccountID, existing.AccountID), effRef(patch.StatusID, existing.StatusID),
		effRef(patch.ModeID, existing.ModeID), effRef(patch.PlatformID, existing.PlatformID),
		notes, now,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	return s.FindByID(id)
}

// Delete removes an owned transaction outright and reports whether a row
// was removed. Transactions are hard-deleted; only master rows are kept as
// tombstones.
func (s *TransactionStore) Delete(id, userID int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM master_transactions WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// sortColumns lists the columns a caller may sort by. The sort column is
// spliced into the query text, so everything outside this set is rejected.
var sortColumns = map[string]bool{
	"id": true, "transactionId": true, "date": true, "week": true,
	"year": true, "financialYear": true, "month": true, "monthNumber": true,
	"weekdayNumber": true, "isWeekend": true, "type": true,
	"categoryId": true, "subcategoryId": true, "description": true,
	"quantity": true, "unitPrice": true, "manualAmount": true, "amount": true,
	"accountId": true, "statusId": true, "modeId": true, "platformId": true,
	"entryTimestamp": true, "createdAt": true, "updatedAt": true,
}

// FindFiltered returns the owner's transactions matching the filter, sorted
// and paginated. The default order is date descending.
func (s *TransactionStore) FindFiltered(userID int64, f models.TransactionFilter) ([]models.Transaction, error) {
	where, args := buildTransactionWhere("t.", userID, f)
	query := transactionSelect + where

	sortBy := "date"
	if f.SortBy != "" {
		if !sortColumns[f.SortBy] {
			return nil, validationErr("Invalid sort column: " + f.SortBy)
		}
		sortBy = f.SortBy
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		order = "ASC"
	}
	query += " ORDER BY t." + sortBy + " " + order

	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
		if f.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, f.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// Count returns the number of transactions matching the filter, for
// pagination totals. It applies the same filter set as FindFiltered.
func (s *TransactionStore) Count(userID int64, f models.TransactionFilter) (int, error) {
	where, args := buildTransactionWhere("t.", userID, f)

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM master_transactions t"+where, args...).Scan(&count)
	return count, err
}

func buildTransactionWhere(prefix string, userID int64, f models.TransactionFilter) (string, []interface{}) {
	query := " WHERE " + prefix + "userId = ?"
	args := []interface{}{userID}

	and := func(cond string, arg interface{}) {
		query += " AND " + prefix + cond
		args = append(args, arg)
	}

	if f.StartDate != "" {
		and("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		and("date <= ?", f.EndDate)
	}
	if f.Type != "" {
		and("type = ?", f.Type)
	}
	if f.CategoryID != nil {
		and("categoryId = ?", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		and("subcategoryId = ?", *f.SubcategoryID)
	}
	if f.AccountID != nil {
		and("accountId = ?", *f.AccountID)
	}
	if f.StatusID != nil {
		and("statusId = ?", *f.StatusID)
	}
	if f.ModeID != nil {
		and("modeId = ?", *f.ModeID)
	}
	if f.PlatformID != nil {
		and("platformId = ?", *f.PlatformID)
	}
	if f.FinancialYear != "" {
		and("financialYear = ?", f.FinancialYear)
	}
	if f.Year != nil {
		and("year = ?", *f.Year)
	}
	if f.MonthNumber != nil {
		and("monthNumber = ?", *f.MonthNumber)
	}
	if f.Week != nil {
		and("week = ?", *f.Week)
	}
	if f.MinAmount != nil {
		and("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		and("amount <= ?", *f.MaxAmount)
	}
	if f.IsWeekend != nil {
		and("isWeekend = ?", *f.IsWeekend)
	}

	return query, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *TransactionStore) scanOne(row *sql.Row) (*models.Transaction, error) {
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	var categoryID, subcategoryID, accountID, statusID, modeID, platformID sql.NullInt64
	var category, subCategory, account, status, mode, platform, notes sql.NullString
	var quantity, unitPrice, manualAmount sql.NullFloat64

	err := row.Scan(
		&t.ID, &t.TransactionID, &t.UserID, &t.Date, &t.Week, &t.Year, &t.FinancialYear,
		&t.Month, &t.MonthNumber, &t.WeekdayNumber, &t.IsWeekend, &t.Type,
		&categoryID, &category, &subcategoryID, &subCategory,
		&t.Description, &quantity, &unitPrice, &manualAmount, &t.Amount,
		&accountID, &account, &statusID, &status, &modeID, &mode, &platformID, &platform,
		&notes, &t.EntryTimestamp, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CategoryID = nullInt(categoryID)
	t.Category = nullStr(category)
	t.SubcategoryID = nullInt(subcategoryID)
	t.SubCategory = nullStr(subCategory)
	t.AccountID = nullInt(accountID)
	t.Account = nullStr(account)
	t.StatusID = nullInt(statusID)
	t.Status = nullStr(status)
	t.ModeID = nullInt(modeID)
	t.Mode = nullStr(mode)
	t.PlatformID = nullInt(platformID)
	t.Platform = nullStr(platform)
	t.Quantity = nullFloat(quantity)
	t.UnitPrice = nullFloat(unitPrice)
	t.ManualAmount = nullFloat(manualAmount)
	t.Notes = nullStr(notes)

	return &t, nil
}

// refValue maps a reference id to its SQL value: nil and 0 both store NULL.
func refValue(id *int64) interface{} {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}

func effRef(patch, existing *int64) interface{} {
	if patch != nil {
		return refValue(patch)
	}
	return refValue(existing)
}

func effFloat(patch, existing *float64) *float64 {
	if patch != nil {
		return patch
	}
	return existing
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
