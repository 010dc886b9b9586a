package storage

import (
	"database/sql"
	"errors"
	"time"

	"fintrack/models"
)

// Default seed lists applied once per user, the first time a user has no
// rows of the type.
var (
	defaultAccounts  = []string{"Cash", "Savings Account", "Credit Card", "Wallet", "Other"}
	defaultStatuses  = []string{"Completed", "Pending", "Planned", "Cancelled", "Refunded", "Failed"}
	defaultModes     = []string{"Cash", "UPI", "Credit Card", "Debit Card", "Net Banking", "Wallet", "Other"}
	defaultPlatforms = []string{"Amazon", "Flipkart", "Swiggy", "Zomato", "PhonePe", "GPay", "Paytm", "Offline", "Other"}
)

// MasterStore is a generic repository over one user-scoped lookup table.
// One instance is created per table; the table name is a package constant,
// never caller input.
type MasterStore struct {
	db       *sql.DB
	table    string
	defaults []string
}

func NewAccountStore(db *sql.DB) *MasterStore {
	return &MasterStore{db: db, table: "accounts", defaults: defaultAccounts}
}

func NewStatusStore(db *sql.DB) *MasterStore {
	return &MasterStore{db: db, table: "statuses", defaults: defaultStatuses}
}

func NewModeStore(db *sql.DB) *MasterStore {
	return &MasterStore{db: db, table: "modes", defaults: defaultModes}
}

func NewPlatformStore(db *sql.DB) *MasterStore {
	return &MasterStore{db: db, table: "platforms", defaults: defaultPlatforms}
}

// FindAllByUser lists the user's active rows ordered by name. Soft-deleted
// rows stay out of listings but keep resolving in transaction joins.
func (s *MasterStore) FindAllByUser(userID int64) ([]models.Master, error) {
	rows, err := s.db.Query(
		"SELECT id, userId, name, active, createdAt FROM "+s.table+" WHERE userId = ? AND active = 1 ORDER BY name",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	masters := []models.Master{}
	for rows.Next() {
		var m models.Master
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		masters = append(masters, m)
	}
	return masters, rows.Err()
}

func (s *MasterStore) FindByID(id int64) (*models.Master, error) {
	var m models.Master
	err := s.db.QueryRow(
		"SELECT id, userId, name, active, createdAt FROM "+s.table+" WHERE id = ?", id,
	).Scan(&m.ID, &m.UserID, &m.Name, &m.Active, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MasterStore) Create(userID int64, name string) (*models.Master, error) {
	if name == "" {
		return nil, validationErr("Name is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"INSERT INTO "+s.table+" (userId, name, active, createdAt) VALUES (?, ?, 1, ?)",
		userID, name, now,
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

// Update renames an owned row. Returns (nil, nil) when the row is not owned
// by the user.
func (s *MasterStore) Update(id, userID int64, name string) (*models.Master, error) {
	if name == "" {
		return nil, validationErr("Name is required")
	}

	res, err := s.db.Exec(
		"UPDATE "+s.table+" SET name = ? WHERE id = ? AND userId = ?",
		name, id, userID,
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

// Delete soft-deletes an owned row and reports whether one was affected.
func (s *MasterStore) Delete(id, userID int64) (bool, error) {
	res, err := s.db.Exec(
		"UPDATE "+s.table+" SET active = 0 WHERE id = ? AND userId = ?",
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

// InitializeDefaults seeds the starter rows for a user with none yet.
// Idempotent: a user who already has rows, including customized ones, is
// left untouched.
func (s *MasterStore) InitializeDefaults(userID int64) error {
	existing, err := s.FindAllByUser(userID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range s.defaults {
		if _, err := s.Create(userID, name); err != nil {
			return err
		}
	}
	return nil
}
