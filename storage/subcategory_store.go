package storage

import (
	"database/sql"
	"errors"
	"time"

	"fintrack/models"
)

// SubcategoryStore manages subcategories. Ownership runs through the parent
// category, so every mutating query joins against the user's categories.
type SubcategoryStore struct {
	db *sql.DB
}

func NewSubcategoryStore(db *sql.DB) *SubcategoryStore {
	return &SubcategoryStore{db: db}
}

// FindAllByUser lists the user's active subcategories with their parent
// category names, ordered by category then name.
func (s *SubcategoryStore) FindAllByUser(userID int64) ([]models.Subcategory, error) {
	rows, err := s.db.Query(`
		SELECT sc.id, sc.categoryId, sc.name, c.name, sc.active, sc.createdAt
		FROM subcategories sc
		JOIN categories c ON sc.categoryId = c.id
		WHERE c.userId = ? AND sc.active = 1
		ORDER BY c.name, sc.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subcategories := []models.Subcategory{}
	for rows.Next() {
		var sub models.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.CategoryName, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, sub)
	}
	return subcategories, rows.Err()
}

// FindByCategory lists a category's active subcategories, provided the
// category belongs to the user.
func (s *SubcategoryStore) FindByCategory(categoryID, userID int64) ([]models.Subcategory, error) {
	rows, err := s.db.Query(`
		SELECT sc.id, sc.categoryId, sc.name, sc.active, sc.createdAt
		FROM subcategories sc
		JOIN categories c ON sc.categoryId = c.id
		WHERE sc.categoryId = ? AND c.userId = ? AND sc.active = 1
		ORDER BY sc.name`, categoryID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subcategories := []models.Subcategory{}
	for rows.Next() {
		var sub models.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, sub)
	}
	return subcategories, rows.Err()
}

func (s *SubcategoryStore) FindByIDAndUser(id, userID int64) (*models.Subcategory, error) {
	var sub models.Subcategory
	err := s.db.QueryRow(`
		SELECT sc.id, sc.categoryId, sc.name, c.name, sc.active, sc.createdAt
		FROM subcategories sc
		JOIN categories c ON sc.categoryId = c.id
		WHERE sc.id = ? AND c.userId = ?`, id, userID,
	).Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.CategoryName, &sub.Active, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create adds a subcategory under one of the user's categories. Returns
// (nil, nil) when the category is not owned by the user.
func (s *SubcategoryStore) Create(categoryID, userID int64, name string) (*models.Subcategory, error) {
	if name == "" {
		return nil, validationErr("Name is required")
	}

	var ownerID int64
	err := s.db.QueryRow("SELECT userId FROM categories WHERE id = ?", categoryID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && ownerID != userID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"INSERT INTO subcategories (categoryId, name, active, createdAt) VALUES (?, ?, 1, ?)",
		categoryID, name, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.FindByIDAndUser(id, userID)
}

// Update renames and optionally reparents a subcategory. The new parent
// must belong to the same user.
func (s *SubcategoryStore) Update(id, userID int64, name string, categoryID int64) (*models.Subcategory, error) {
	if name == "" {
		return nil, validationErr("Name is required")
	}

	existing, err := s.FindByIDAndUser(id, userID)
	if err != nil || existing == nil {
		return nil, err
	}

	if categoryID == 0 {
		categoryID = existing.CategoryID
	} else if categoryID != existing.CategoryID {
		var ownerID int64
		err := s.db.QueryRow("SELECT userId FROM categories WHERE id = ?", categoryID).Scan(&ownerID)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && ownerID != userID) {
			return nil, validationErr("Category not found")
		}
		if err != nil {
			return nil, err
		}
	}

	_, err = s.db.Exec("UPDATE subcategories SET name = ?, categoryId = ? WHERE id = ?", name, categoryID, id)
	if err != nil {
		return nil, err
	}
	return s.FindByIDAndUser(id, userID)
}

// Delete soft-deletes an owned subcategory.
func (s *SubcategoryStore) Delete(id, userID int64) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE subcategories SET active = 0
		WHERE id = ? AND categoryId IN (SELECT id FROM categories WHERE userId = ?)`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
