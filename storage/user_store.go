package storage

import (
	"database/sql"
	"errors"
	"time"

	"fintrack/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		"SELECT id, username, passwordHash, createdAt, updatedAt FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByID(id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		"SELECT id, username, passwordHash, createdAt, updatedAt FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) Create(username, passwordHash string) (*models.User, error) {
	if username == "" {
		return nil, validationErr("Username is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		"INSERT INTO users (username, passwordHash, createdAt, updatedAt) VALUES (?, ?, ?, ?)",
		username, passwordHash, now, now,
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

func (s *UserStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
