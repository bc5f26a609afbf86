package export

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/model"
	"github.com/vanderheijden86/vidaboard/pkg/version"
)

// RobotOutput is the machine-readable dump of a built dashboard.
type RobotOutput struct {
	GeneratedAt string         `json:"generated_at"`
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	Source      string         `json:"source,omitempty"`
	LastUpdated string         `json:"last_updated"`
	Summary     graph.Summary  `json:"summary"`
	Health      map[string]int `json:"health"`
	Graph       model.Graph    `json:"graph"`
}

// WriteRobotJSON writes the graph and its summary as indented JSON.
func WriteRobotJSON(w io.Writer, g model.Graph, summary graph.Summary, meta Meta) error {
	out := RobotOutput{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
		Title:       meta.title(),
		Source:      meta.Source,
		LastUpdated: meta.LastUpdated,
		Summary:     summary,
		Health:      summary.HealthCounts(),
		Graph:       g,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode robot output: %w", err)
	}
	return nil
}
