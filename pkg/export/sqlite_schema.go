package export

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is stored in export_meta so consumers can detect layout
// changes.
const SchemaVersion = 1

// CreateSchema creates all tables and indexes of the dashboard database.
func CreateSchema(db *sql.DB) error {
	if err := createCoreTables(db); err != nil {
		return fmt.Errorf("create core tables: %w", err)
	}
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	if err := createMetaTable(db); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}
	return nil
}

func createCoreTables(db *sql.DB) error {
	nodesSQL := `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			category TEXT,
			label TEXT NOT NULL,
			description TEXT,
			icon TEXT,
			status TEXT,
			last_status TEXT,
			health TEXT NOT NULL,
			automation_level REAL,
			schedule TEXT,
			progress REAL,
			x REAL NOT NULL,
			y REAL NOT NULL
		)
	`
	if _, err := db.Exec(nodesSQL); err != nil {
		return fmt.Errorf("create nodes table: %w", err)
	}

	edgesSQL := `
		CREATE TABLE IF NOT EXISTS edges (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			stroke TEXT NOT NULL,
			stroke_width REAL NOT NULL,
			animated INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (source) REFERENCES nodes(id),
			FOREIGN KEY (target) REFERENCES nodes(id)
		)
	`
	if _, err := db.Exec(edgesSQL); err != nil {
		return fmt.Errorf("create edges table: %w", err)
	}
	return nil
}

func createIndexes(db *sql.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_category ON nodes(category)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_health ON nodes(health)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func createMetaTable(db *sql.DB) error {
	metaSQL := `
		CREATE TABLE IF NOT EXISTS export_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)
	`
	if _, err := db.Exec(metaSQL); err != nil {
		return fmt.Errorf("create export_meta table: %w", err)
	}
	return nil
}
