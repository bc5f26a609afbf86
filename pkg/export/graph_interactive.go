package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

//go:embed assets/dashboard.html
var dashboardHTML string

// HTMLOptions configures the self-contained HTML export.
type HTMLOptions struct {
	Path  string // Output path; .html is appended when missing
	Graph model.Graph
	Meta  Meta
}

// htmlPayload is the data island the page script reads.
type htmlPayload struct {
	Title       string        `json:"title"`
	LastUpdated string        `json:"lastUpdated"`
	Source      string        `json:"source,omitempty"`
	Graph       model.Graph   `json:"graph"`
	Summary     graph.Summary `json:"summary"`
}

// GenerateInteractiveHTML writes a single HTML file with the graph inlined
// as SVG plus the script for zoom, pan and the detail panel. It needs no
// network access to open.
func GenerateInteractiveHTML(opts HTMLOptions) error {
	page, err := RenderInteractiveHTML(opts.Graph, opts.Meta)
	if err != nil {
		return err
	}
	if opts.Path == "" {
		return ErrNoOutputPath
	}

	outputPath := opts.Path
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".html"
	}
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	return os.WriteFile(outputPath, []byte(page), 0o644)
}

// RenderInteractiveHTML returns the page as a string.
func RenderInteractiveHTML(g model.Graph, meta Meta) (string, error) {
	if len(g.Nodes) == 0 {
		return "", ErrEmptyGraph
	}

	// go-json escapes <, > and & by default, so the payload cannot close the
	// surrounding script element.
	dataJSON, err := json.Marshal(htmlPayload{
		Title:       meta.title(),
		LastUpdated: meta.LastUpdated,
		Source:      meta.Source,
		Graph:       g,
		Summary:     graph.Summarize(g),
	})
	if err != nil {
		return "", fmt.Errorf("marshal graph data: %w", err)
	}

	var svgBuf bytes.Buffer
	if err := renderSVGToWriter(&svgBuf, buildLayout(g, meta), true); err != nil {
		return "", fmt.Errorf("render svg: %w", err)
	}
	// Drop the XML prolog; the SVG is inlined into HTML.
	inline := svgBuf.String()
	if i := strings.Index(inline, "<svg"); i > 0 {
		inline = inline[i:]
	}

	return strings.NewReplacer(
		"__VB_TITLE__", html.EscapeString(meta.title()),
		"__VB_SVG__", inline,
		"__VB_DATA__", string(dataJSON),
	).Replace(dashboardHTML), nil
}
