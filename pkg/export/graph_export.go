package export

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// Subgraph keeps rootID and everything reachable from it along edges, up to
// maxDepth hops (0 means unlimited). Nodes and edges keep their order. An
// unknown root yields an empty graph.
func Subgraph(g model.Graph, rootID string, maxDepth int) model.Graph {
	if g.Node(rootID) == nil {
		return model.Graph{}
	}

	children := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		children[e.Source] = append(children[e.Source], e.Target)
	}

	type item struct {
		id    string
		depth int
	}
	visited := make(map[string]bool)
	queue := []item{{rootID, 0}}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if visited[curr.id] {
			continue
		}
		if maxDepth > 0 && curr.depth > maxDepth {
			continue
		}
		visited[curr.id] = true
		for _, kid := range children[curr.id] {
			if !visited[kid] {
				queue = append(queue, item{kid, curr.depth + 1})
			}
		}
	}

	var out model.Graph
	for _, n := range g.Nodes {
		if visited[n.ID] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if visited[e.Source] && visited[e.Target] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// GenerateDOT renders the graph in Graphviz DOT. Node outlines use the
// health palette and edges keep their accent colour.
func GenerateDOT(g model.Graph) string {
	var sb strings.Builder

	sb.WriteString("digraph VIDA {\n")
	sb.WriteString("    rankdir=TB;\n")
	sb.WriteString("    bgcolor=\"#0a0a14\";\n")
	sb.WriteString("    node [shape=box, style=\"rounded,filled\", fillcolor=\"#16162a\", fontcolor=\"#e8e8ff\", fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	for _, n := range g.Nodes {
		label := escapeDOTString(truncateRunes(n.Data.Title(), 30))
		if n.Kind == model.NodeLeaf && n.Data.Description != "" {
			label += "\\n" + escapeDOTString(truncateRunes(n.Data.Description, 30))
		}
		penwidth := 1.0
		if n.Kind != model.NodeLeaf {
			penwidth = 2.0
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", color=\"%s\", penwidth=%.1f];\n",
			escapeDOTString(n.ID), label, n.Data.Health().Hex(), penwidth))
	}

	sb.WriteString("\n")

	for _, e := range g.Edges {
		style := "solid"
		if e.Style.Animated {
			style = "dashed"
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [style=%s, color=\"%s\", penwidth=%g];\n",
			escapeDOTString(e.Source), escapeDOTString(e.Target), style, e.Style.Stroke, e.Style.Width))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOTString(s string) string {
	// DOT string literals need backslashes and quotes escaped; normalize newlines.
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", " ",
		"\r", " ",
	)
	return replacer.Replace(s)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
