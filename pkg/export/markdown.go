package export

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// GenerateMarkdown creates a report of the dashboard: summary counts, the
// Mermaid diagram and one table per category.
func GenerateMarkdown(g model.Graph, meta Meta) (string, error) {
	if len(g.Nodes) == 0 {
		return "", ErrEmptyGraph
	}
	summary := graph.Summarize(g)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", meta.title()))
	sb.WriteString(fmt.Sprintf("*Last sync: %s*\n\n", model.FormatTimestamp(meta.LastUpdated, model.DefaultTimeLayout)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Count |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| **Items** | %d |\n", summary.LeafCount))
	for _, c := range summary.Categories {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", escapeCell(c.Label), c.Leaves))
	}
	sb.WriteString("\n")

	sb.WriteString("| Health | Items |\n|--------|-------|\n")
	for _, h := range model.Healths {
		sb.WriteString(fmt.Sprintf("| %s %s | %d |\n", healthEmoji(h), h, summary.ByHealth[h]))
	}
	sb.WriteString("\n---\n\n")

	sb.WriteString("## Graph\n\n```mermaid\n")
	sb.WriteString(GenerateMermaid(g))
	sb.WriteString("```\n\n---\n\n")

	leaves := make(map[model.CategoryID][]model.GraphNode)
	for _, n := range g.Nodes {
		if n.Kind == model.NodeLeaf {
			leaves[n.Category] = append(leaves[n.Category], n)
		}
	}
	for _, c := range summary.Categories {
		sb.WriteString(fmt.Sprintf("## %s\n\n", c.Label))
		items := leaves[c.ID]
		if len(items) == 0 {
			sb.WriteString("*No items.*\n\n")
			continue
		}
		sb.WriteString("| Name | Status | Automation | Schedule | Progress |\n")
		sb.WriteString("|------|--------|------------|----------|----------|\n")
		for _, n := range items {
			d := n.Data
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				escapeCell(d.Title()),
				statusCell(d),
				percentCell(d.AutomationLevel),
				escapeCell(d.Schedule),
				percentCell(d.Progress),
			))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func statusCell(d model.NodeData) string {
	switch {
	case !d.Status.IsZero():
		return healthEmoji(d.Health()) + " " + escapeCell(string(d.Status))
	case !d.LastStatus.IsZero():
		return healthEmoji(d.Health()) + " last " + escapeCell(string(d.LastStatus))
	}
	return ""
}

func percentCell(v *float64) string {
	if v == nil {
		return ""
	}
	return model.FormatPercent(*v)
}

func healthEmoji(h model.Health) string {
	switch h {
	case model.HealthHealthy:
		return "🟢"
	case model.HealthCaution:
		return "🟡"
	case model.HealthDormant:
		return "⚫"
	default:
		return "🔵"
	}
}

// escapeCell keeps a value on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
