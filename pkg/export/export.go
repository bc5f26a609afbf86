// Package export renders the dashboard graph to files and text: static
// snapshots, a self-contained HTML page, Mermaid, SQLite, a text tree and
// machine-readable JSON.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/vidaboard/pkg/debug"
	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/metrics"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

var (
	ErrEmptyGraph        = errors.New("graph has no nodes")
	ErrNoOutputPath      = errors.New("output path is required")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Meta is dataset provenance carried into every export.
type Meta struct {
	Title       string
	LastUpdated string // raw dataset timestamp
	Source      string // dataset path, or "<bundled>"
}

const defaultTitle = "VIDA Dashboard"

func (m Meta) title() string {
	if strings.TrimSpace(m.Title) == "" {
		return defaultTitle
	}
	return m.Title
}

// Format is an export file type.
type Format string

const (
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatHTML     Format = "html"
	FormatMermaid  Format = "mermaid"
	FormatSQLite   Format = "sqlite"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatDOT      Format = "dot"
)

// Formats lists every export format in a stable order.
var Formats = []Format{FormatSVG, FormatPNG, FormatHTML, FormatMermaid, FormatSQLite, FormatJSON, FormatMarkdown, FormatDOT}

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "html", "htm":
		return FormatHTML, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "sqlite", "db", "sqlite3":
		return FormatSQLite, nil
	case "json", "robot":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "dot", "gv", "graphviz":
		return FormatDOT, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, s)
	}
}

// ParseFormats parses a list of names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	var out []Format
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Ext is the file extension written for f.
func (f Format) Ext() string {
	switch f {
	case FormatMermaid:
		return ".mmd"
	case FormatSQLite:
		return ".db"
	case FormatMarkdown:
		return ".md"
	default:
		return "." + string(f)
	}
}

// Target is one file to produce.
type Target struct {
	Format Format
	Path   string
}

// DefaultBaseName is the file stem used by TargetsFor.
const DefaultBaseName = "vidaboard"

// TargetsFor places one file per format in dir.
func TargetsFor(dir string, formats []Format) []Target {
	targets := make([]Target, 0, len(formats))
	for _, f := range formats {
		targets = append(targets, Target{Format: f, Path: filepath.Join(dir, DefaultBaseName+f.Ext())})
	}
	return targets
}

// Export writes a single target.
func Export(g model.Graph, meta Meta, t Target) error {
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}
	if t.Path == "" {
		return ErrNoOutputPath
	}
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch t.Format {
	case FormatSVG, FormatPNG:
		return SaveGraphSnapshot(GraphSnapshotOptions{Path: t.Path, Format: string(t.Format), Graph: g, Meta: meta})
	case FormatHTML:
		return GenerateInteractiveHTML(HTMLOptions{Path: t.Path, Graph: g, Meta: meta})
	case FormatMermaid:
		return os.WriteFile(t.Path, []byte(GenerateMermaid(g)), 0o644)
	case FormatDOT:
		return os.WriteFile(t.Path, []byte(GenerateDOT(g)), 0o644)
	case FormatSQLite:
		return ExportSQLite(t.Path, g, meta)
	case FormatMarkdown:
		md, err := GenerateMarkdown(g, meta)
		if err != nil {
			return err
		}
		return os.WriteFile(t.Path, []byte(md), 0o644)
	case FormatJSON:
		f, err := os.Create(t.Path)
		if err != nil {
			return fmt.Errorf("create %s: %w", t.Path, err)
		}
		if err := WriteRobotJSON(f, g, graph.Summarize(g), meta); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, t.Format)
	}
}

// ExportAll writes every target concurrently. Each writer owns its output
// file and only reads g. The first error cancels the remaining writers and
// is returned.
func ExportAll(ctx context.Context, g model.Graph, meta Meta, targets []Target) error {
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}
	eg, ctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer metrics.TimerWithCallback(metrics.Export, func(d time.Duration) {
				debug.LogTiming("export "+string(t.Format), d)
			})()
			if err := Export(g, meta, t); err != nil {
				return fmt.Errorf("export %s: %w", t.Format, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
