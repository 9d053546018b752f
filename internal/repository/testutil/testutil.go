package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"oompa/backend/internal/db"
)

// NewTestDB opens a migrated sqlite database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}
