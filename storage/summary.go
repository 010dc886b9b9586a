package storage

import (
	"fintrack/models"
)

func buildSummaryWhere(prefix string, userID int64, f models.SummaryFilter) (string, []interface{}) {
	query := " WHERE " + prefix + "userId = ?"
	args := []interface{}{userID}

	and := func(cond string, arg interface{}) {
		query += " AND " + prefix + cond
		args = append(args, arg)
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
	if f.StartDate != "" {
		and("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		and("date <= ?", f.EndDate)
	}

	return query, args
}

// Summary aggregates the owner's transactions in the filter window: totals
// and counts per type, expense totals per category (largest first), and
// per-month totals in calendar order.
func (s *TransactionStore) Summary(userID int64, f models.SummaryFilter) (*models.Summary, error) {
	summary := &models.Summary{
		ByType: map[string]models.TypeTotal{
			models.TypeIncome:   {},
			models.TypeExpense:  {},
			models.TypeTransfer: {},
		},
		ByCategory: []models.CategoryTotal{},
		ByMonth:    []models.MonthTotal{},
	}

	where, args := buildSummaryWhere("", userID, f)

	rows, err := s.db.Query(`
		SELECT type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM master_transactions`+where+`
		GROUP BY type`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var txnType string
		var total models.TypeTotal
		if err := rows.Scan(&txnType, &total.Total, &total.Count); err != nil {
			return nil, err
		}
		summary.ByType[txnType] = total
		summary.TransactionCount += total.Count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.TotalIncome = summary.ByType[models.TypeIncome].Total
	summary.TotalExpense = summary.ByType[models.TypeExpense].Total
	summary.TotalTransfer = summary.ByType[models.TypeTransfer].Total
	// Transfers move money between accounts, so they stay out of the net.
	summary.NetAmount = summary.TotalIncome - summary.TotalExpense

	whereT, argsT := buildSummaryWhere("t.", userID, f)
	rows, err = s.db.Query(`
		SELECT COALESCE(c.name, 'Uncategorized'), COALESCE(SUM(t.amount), 0), COUNT(*)
		FROM master_transactions t
		LEFT JOIN categories c ON t.categoryId = c.id`+whereT+`
		AND t.type = 'Expense'
		GROUP BY t.categoryId
		ORDER BY SUM(t.amount) DESC`, argsT...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT month, monthNumber, COALESCE(SUM(amount), 0), COUNT(*)
		FROM master_transactions`+where+`
		GROUP BY monthNumber
		ORDER BY monthNumber`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var mt models.MonthTotal
		if err := rows.Scan(&mt.Month, &mt.MonthNumber, &mt.Total, &mt.Count); err != nil {
			return nil, err
		}
		summary.ByMonth = append(summary.ByMonth, mt)
	}
	return summary, rows.Err()
}
