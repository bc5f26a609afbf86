package export

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openExported(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.db")
	require.NoError(t, ExportSQLite(path, testGraph(), testMeta()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExportSQLite_Counts(t *testing.T) {
	db := openExported(t)
	g := testGraph()

	var nodes, edges int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&nodes))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&edges))
	assert.Equal(t, len(g.Nodes), nodes)
	assert.Equal(t, len(g.Edges), edges)
}

func TestExportSQLite_LeafRow(t *testing.T) {
	db := openExported(t)

	var (
		kind, health string
		status       sql.NullString
		auto         sql.NullFloat64
		progress     sql.NullFloat64
	)
	err := db.QueryRow(`SELECT kind, health, status, automation_level, progress FROM nodes WHERE id = ?`, "skills-cal").
		Scan(&kind, &health, &status, &auto, &progress)
	require.NoError(t, err)
	assert.Equal(t, "leaf", kind)
	assert.Equal(t, "caution", health)
	assert.Equal(t, "paused", status.String)
	assert.True(t, auto.Valid, "a present zero is stored")
	assert.Equal(t, 0.0, auto.Float64)
	assert.False(t, progress.Valid)
}

func TestExportSQLite_LastStatusOnly(t *testing.T) {
	db := openExported(t)

	var status, last sql.NullString
	var health string
	require.NoError(t, db.QueryRow(`SELECT status, last_status, health FROM nodes WHERE id = ?`, "cron-brief").Scan(&status, &last, &health))
	assert.False(t, status.Valid)
	assert.Equal(t, "ok", last.String)
	assert.Equal(t, "healthy", health)
}

func TestExportSQLite_Meta(t *testing.T) {
	db := openExported(t)

	meta := map[string]string{}
	rows, err := db.Query(`SELECT key, value FROM export_meta`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		meta[k] = v
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, "1", meta["schema_version"])
	assert.Equal(t, "Test Board", meta["title"])
	assert.Equal(t, "2024-03-05T14:07:09Z", meta["last_updated"])
	assert.Equal(t, "testdata.json", meta["source"])
}

func TestExportSQLite_Animated(t *testing.T) {
	db := openExported(t)

	var animated int
	require.NoError(t, db.QueryRow(`SELECT animated FROM edges WHERE source = 'vida' AND target = 'skills'`).Scan(&animated))
	assert.Equal(t, 1, animated)
	require.NoError(t, db.QueryRow(`SELECT animated FROM edges WHERE target = 'skills-mail'`).Scan(&animated))
	assert.Equal(t, 0, animated)
}

func TestExportSQLite_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0o644))
	require.NoError(t, ExportSQLite(path, testGraph(), testMeta()))
	require.NoError(t, ExportSQLite(path, testGraph(), testMeta()))
}
