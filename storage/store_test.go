package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"fintrack/database"
)

// setupTestDB opens a migrated SQLite database in a temp dir and creates a
// user for the test to act as.
func setupTestDB(t *testing.T) (*sql.DB, int64) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db, createTestUser(t, db, "testuser")
}

func createTestUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	user, err := NewUserStore(db).Create(username, "not-a-real-hash")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func str(v string) *string   { return &v }
