package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vanderheijden86/vidaboard/pkg/model"
	"github.com/vanderheijden86/vidaboard/pkg/version"

	_ "modernc.org/sqlite"
)

// ExportSQLite writes the graph to a fresh SQLite database at path. An
// existing file is replaced.
func ExportSQLite(path string, g model.Graph, meta Meta) error {
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}
	if path == "" {
		return ErrNoOutputPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := CreateSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := insertNodes(db, g.Nodes); err != nil {
		return fmt.Errorf("insert nodes: %w", err)
	}
	if err := insertEdges(db, g.Edges); err != nil {
		return fmt.Errorf("insert edges: %w", err)
	}
	if err := insertMeta(db, g, meta); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}
	return db.Close()
}

func insertNodes(db *sql.DB, nodes []model.GraphNode) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO nodes (id, kind, category, label, description, icon, status, last_status, health, automation_level, schedule, progress, x, y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range nodes {
		_, err := stmt.Exec(
			n.ID,
			n.Kind.String(),
			nullString(string(n.Category)),
			n.Data.Label,
			nullString(n.Data.Description),
			nullString(n.Data.Icon),
			nullString(string(n.Data.Status)),
			nullString(string(n.Data.LastStatus)),
			n.Data.Health().String(),
			n.Data.AutomationLevel,
			nullString(n.Data.Schedule),
			n.Data.Progress,
			n.Position.X,
			n.Position.Y,
		)
		if err != nil {
			return fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

func insertEdges(db *sql.DB, edges []model.GraphEdge) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO edges (id, source, target, stroke, stroke_width, animated)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range edges {
		animated := 0
		if e.Style.Animated {
			animated = 1
		}
		if _, err := stmt.Exec(e.ID, e.Source, e.Target, e.Style.Stroke, e.Style.Width, animated); err != nil {
			return fmt.Errorf("insert edge %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func insertMeta(db *sql.DB, g model.Graph, meta Meta) error {
	rows := map[string]string{
		"schema_version": strconv.Itoa(SchemaVersion),
		"title":          meta.title(),
		"last_updated":   meta.LastUpdated,
		"source":         meta.Source,
		"node_count":     strconv.Itoa(len(g.Nodes)),
		"edge_count":     strconv.Itoa(len(g.Edges)),
		"exported_at":    time.Now().UTC().Format(time.RFC3339),
		"generator":      "vb " + version.Version,
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO export_meta (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for k, v := range rows {
		if _, err := stmt.Exec(k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// nullString stores absent optional text as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
