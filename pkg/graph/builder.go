// Package graph turns a dashboard dataset into the root -> category -> leaf
// tree the view and the exporters draw.
package graph

import (
	"github.com/vanderheijden86/vidaboard/pkg/metrics"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// Root node constants.
const (
	RootID          = "vida"
	RootLabel       = "⬡ VIDA"
	RootDescription = "AI Assistant Core"
	RootIcon        = "🤖"
	CategoryIcon    = "📁"
)

// RootPosition is the fixed canvas position of the root node.
var RootPosition = model.Position{X: 400, Y: 300}

// Leaf grid geometry, relative to the category anchor.
const (
	GridColumns   = 3
	ColumnSpacing = 180.0
	ColumnOffset  = -180.0
	RowSpacing    = 100.0
	RowOffset     = 120.0
)

// Edge widths.
const (
	CategoryEdgeWidth = 2.0
	LeafEdgeWidth     = 1.0
)

type categorySpec struct {
	id     model.CategoryID
	label  string
	anchor model.Position
	color  string
	items  func(model.Dataset) []model.Item
}

// categorySpecs is the fixed category table, in emission order.
var categorySpecs = []categorySpec{
	{model.CategorySkills, "Skills", model.Position{X: 100, Y: 100}, "#00ffff",
		func(d model.Dataset) []model.Item { return d.Skills }},
	{model.CategoryIntegrations, "Integrations", model.Position{X: 700, Y: 100}, "#00ff88",
		func(d model.Dataset) []model.Item { return d.Integrations }},
	{model.CategoryCron, "Cron Jobs", model.Position{X: 100, Y: 500}, "#bf00ff",
		func(d model.Dataset) []model.Item { return d.CronJobs }},
	{model.CategoryProjects, "Projects", model.Position{X: 700, Y: 500}, "#ff6600",
		func(d model.Dataset) []model.Item { return d.Projects }},
}

// Categories returns the four categories populated from ds, in fixed order.
func Categories(ds model.Dataset) []model.Category {
	out := make([]model.Category, 0, len(categorySpecs))
	for _, spec := range categorySpecs {
		out = append(out, model.Category{
			ID:     spec.id,
			Label:  spec.label,
			Anchor: spec.anchor,
			Color:  spec.color,
			Items:  spec.items(ds),
		})
	}
	return out
}

// CategoryColor returns the accent colour of a category, or "" if unknown.
func CategoryColor(id model.CategoryID) string {
	for _, spec := range categorySpecs {
		if spec.id == id {
			return spec.color
		}
	}
	return ""
}

// LeafID is the node id of an item within a category.
func LeafID(cat model.CategoryID, itemID string) string {
	return string(cat) + "-" + itemID
}

// LeafOffset is the grid offset of the index-th item from its category anchor.
func LeafOffset(index int) (dx, dy float64) {
	dx = float64(index%GridColumns)*ColumnSpacing + ColumnOffset
	dy = float64(index/GridColumns)*RowSpacing + RowOffset
	return dx, dy
}

// Build maps a dataset onto nodes and edges. It is pure: the same input
// always yields the same graph, and ds is never modified.
func Build(ds model.Dataset) model.Graph {
	defer metrics.Timer(metrics.GraphBuild)()

	cats := Categories(ds)
	total := ds.ItemCount()

	g := model.Graph{
		Nodes: make([]model.GraphNode, 0, 1+len(cats)+total),
		Edges: make([]model.GraphEdge, 0, len(cats)+total),
	}

	g.Nodes = append(g.Nodes, model.GraphNode{
		ID:       RootID,
		Kind:     model.NodeRoot,
		Position: RootPosition,
		Data: model.NodeData{
			Label:       RootLabel,
			Description: RootDescription,
			Icon:        RootIcon,
		},
	})

	for _, cat := range cats {
		catID := string(cat.ID)
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID:       catID,
			Kind:     model.NodeCategory,
			Category: cat.ID,
			Position: cat.Anchor,
			Data:     model.NodeData{Label: cat.Label, Icon: CategoryIcon},
		})
		g.Edges = append(g.Edges, model.GraphEdge{
			ID:     RootID + "-" + catID,
			Source: RootID,
			Target: catID,
			Style:  model.EdgeStyle{Stroke: cat.Color, Width: CategoryEdgeWidth, Animated: true},
		})

		for i, item := range cat.Items {
			leafID := LeafID(cat.ID, item.ID)
			dx, dy := LeafOffset(i)
			g.Nodes = append(g.Nodes, model.GraphNode{
				ID:       leafID,
				Kind:     model.NodeLeaf,
				Category: cat.ID,
				Position: cat.Anchor.Add(dx, dy),
				Data:     model.DataFromItem(item),
			})
			g.Edges = append(g.Edges, model.GraphEdge{
				ID:     catID + "-" + leafID,
				Source: catID,
				Target: leafID,
				Style:  model.EdgeStyle{Stroke: cat.Color, Width: LeafEdgeWidth},
			})
		}
	}

	return g
}
