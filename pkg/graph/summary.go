package graph

import (
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// CategoryCount is the number of leaves under one category.
type CategoryCount struct {
	ID     model.CategoryID `json:"id"`
	Label  string           `json:"label"`
	Color  string           `json:"color"`
	Leaves int              `json:"leaves"`
}

// Summary aggregates a built graph for header blocks and text outputs.
type Summary struct {
	NodeCount  int                  `json:"node_count"`
	EdgeCount  int                  `json:"edge_count"`
	LeafCount  int                  `json:"leaf_count"`
	Categories []CategoryCount      `json:"categories"`
	ByHealth   map[model.Health]int `json:"-"`
}

// HealthCounts is ByHealth keyed by bucket name, for JSON output.
func (s Summary) HealthCounts() map[string]int {
	out := make(map[string]int, len(s.ByHealth))
	for h, n := range s.ByHealth {
		out[h.String()] = n
	}
	return out
}

// Summarize counts nodes, edges and leaves per category and per health bucket.
func Summarize(g model.Graph) Summary {
	s := Summary{
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
		ByHealth:  make(map[model.Health]int, len(model.Healths)),
	}

	index := make(map[model.CategoryID]int, len(categorySpecs))
	for _, n := range g.Nodes {
		if n.Kind != model.NodeCategory {
			continue
		}
		index[n.Category] = len(s.Categories)
		s.Categories = append(s.Categories, CategoryCount{
			ID:    n.Category,
			Label: n.Data.Label,
			Color: CategoryColor(n.Category),
		})
	}

	for _, n := range g.Nodes {
		if n.Kind != model.NodeLeaf {
			continue
		}
		s.LeafCount++
		s.ByHealth[n.Data.Health()]++
		if i, ok := index[n.Category]; ok {
			s.Categories[i].Leaves++
		}
	}
	return s
}
