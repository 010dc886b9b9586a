package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/storage"
)

func setupHandlerTest(t *testing.T) (*sql.DB, int64) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	user, err := storage.NewUserStore(db).Create("testuser", "not-a-real-hash")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return db, user.ID
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// authedRequest builds a request carrying the user id the way the auth
// middleware would have set it.
func authedRequest(userID int64, method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}
