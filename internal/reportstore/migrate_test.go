package reportstore

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadworks/tachoscan/schema"
)

// tableExists checks for a table in a SQLite database file.
func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

// TestMigrateStoreUpAndDown runs the embedded migrations against SQLite.
func TestMigrateStoreUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to latest.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, analysisRunsTable))
	assert.True(t, tableExists(t, dbPath, daySummariesTable))
	assert.True(t, tableExists(t, dbPath, infractionsTable))

	// Up again is a no-op.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Down to initial state.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, analysisRunsTable))
	assert.False(t, tableExists(t, dbPath, daySummariesTable))
	assert.False(t, tableExists(t, dbPath, infractionsTable))
}

// TestMigrateStoreToVersion migrates to an explicit version.
func TestMigrateStoreToVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, analysisRunsTable))
}

// TestMigrateStoreNoneBackend verifies NoneBackend is rejected.
func TestMigrateStoreNoneBackend(t *testing.T) {
	err := MigrateStore(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}
