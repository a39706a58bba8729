package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/campuswatch/campuswatch-be/internal/database"
)

// newTestDB opens an isolated in-memory database with the real schema.
// A single connection keeps every statement on the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
