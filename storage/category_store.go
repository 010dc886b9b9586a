package storage

import (
	"database/sql"
	"errors"
	"time"

	"fintrack/models"
)

type categoryDefault struct {
	name    string
	txnType string
}

var defaultCategories = []categoryDefault{
	{"Food", models.TypeExpense},
	{"Travel", models.TypeExpense},
	{"Bills", models.TypeExpense},
	{"Shopping", models.TypeExpense},
	{"Entertainment", models.TypeExpense},
	{"Healthcare", models.TypeExpense},
	{"Salary", models.TypeIncome},
	{"Freelance", models.TypeIncome},
	{"Investment", models.TypeIncome},
	{"Other", models.TypeExpense},
}

// CategoryStore manages the category master. Categories carry a type and an
// optional budget on top of the plain master shape.
type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) FindAllByUser(userID int64) ([]models.Category, error) {
	return s.findAll(userID, true)
}

// FindAllByUserIncludingInactive also returns soft-deleted categories, for
// resolving historical references in the UI.
func (s *CategoryStore) FindAllByUserIncludingInactive(userID int64) ([]models.Category, error) {
	return s.findAll(userID, false)
}

func (s *CategoryStore) findAll(userID int64, activeOnly bool) ([]models.Category, error) {
	query := "SELECT id, userId, name, type, budget, active, createdAt FROM categories WHERE userId = ?"
	if activeOnly {
		query += " AND active = 1"
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow("SELECT id, userId, name, type, budget, active, createdAt FROM categories WHERE id = ?", id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (s *CategoryStore) Create(userID int64, name, txnType string, budget *float64) (*models.Category, error) {
	if name == "" {
		return nil, validationErr("Name is required")
	}
	if txnType == "" {
		txnType = models.TypeExpense
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"INSERT INTO categories (userId, name, type, budget, active, createdAt) VALUES (?, ?, ?, ?, 1, ?)",
		userID, name, txnType, budget, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *CategoryStore) Update(id, userID int64, name, txnType string, budget *float64) (*models.Category, error) {
	if name == "" {
		return nil, validationErr("Name is required")
	}
	if txnType == "" {
		txnType = models.TypeExpense
	}

	res, err := s.db.Exec(
		"UPDATE categories SET name = ?, type = ?, budget = ? WHERE id = ? AND userId = ?",
		name, txnType, budget, id, userID,
	)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(id)
}

// Delete soft-deletes a category. Its subcategories stay resolvable for
// historical transactions.
func (s *CategoryStore) Delete(id, userID int64) (bool, error) {
	res, err := s.db.Exec("UPDATE categories SET active = 0 WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InitializeDefaults seeds the starter categories for a user with none yet.
func (s *CategoryStore) InitializeDefaults(userID int64) error {
	existing, err := s.FindAllByUser(userID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, d := range defaultCategories {
		if _, err := s.Create(userID, d.name, d.txnType, nil); err != nil {
			return err
		}
	}
	return nil
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	var budget sql.NullFloat64
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &budget, &c.Active, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Budget = nullFloat(budget)
	return &c, nil
}
