package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// TreeOptions controls WriteTree output.
type TreeOptions struct {
	NoColor bool
}

// WriteTree prints the graph as an indented tree following edges from the
// root. Every leaf line ends in its health and its optional metrics.
func WriteTree(w io.Writer, g model.Graph, opts TreeOptions) error {
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}

	children := make(map[string][]string, len(g.Nodes))
	hasParent := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		children[e.Source] = append(children[e.Source], e.Target)
		hasParent[e.Target] = true
	}

	tw := &treeWriter{w: w, g: g, children: children, noColor: opts.NoColor}
	for _, n := range g.Nodes {
		if hasParent[n.ID] {
			continue
		}
		tw.line("", n)
		tw.walk(n.ID, "")
	}
	return tw.err
}

type treeWriter struct {
	w        io.Writer
	g        model.Graph
	children map[string][]string
	noColor  bool
	err      error
}

func (t *treeWriter) walk(id, indent string) {
	kids := t.children[id]
	for i, kid := range kids {
		n := t.g.Node(kid)
		if n == nil {
			continue
		}
		branch, next := "├── ", "│   "
		if i == len(kids)-1 {
			branch, next = "└── ", "    "
		}
		t.line(indent+branch, *n)
		t.walk(kid, indent+next)
	}
}

func (t *treeWriter) line(prefix string, n model.GraphNode) {
	if t.err != nil {
		return
	}
	h := n.Data.Health()
	c := t.colorFor(h)

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(c.Sprint("●"))
	sb.WriteString(" ")
	if n.Kind == model.NodeLeaf {
		sb.WriteString(n.Data.Title())
	} else {
		sb.WriteString(t.bold().Sprint(n.Data.Title()))
	}
	if n.Kind == model.NodeLeaf {
		var parts []string
		if s := n.Data.Status; !s.IsZero() {
			parts = append(parts, string(s))
		} else if s := n.Data.LastStatus; !s.IsZero() {
			parts = append(parts, "last "+string(s))
		}
		if v := n.Data.AutomationLevel; v != nil {
			parts = append(parts, "auto "+model.FormatPercent(*v))
		}
		if n.Data.Schedule != "" {
			parts = append(parts, "⏰ "+n.Data.Schedule)
		}
		if v := n.Data.Progress; v != nil {
			parts = append(parts, "progress "+model.FormatPercent(*v))
		}
		if len(parts) > 0 {
			sb.WriteString(t.faint().Sprint("  " + strings.Join(parts, " · ")))
		}
	}
	_, t.err = fmt.Fprintln(t.w, sb.String())
}

func (t *treeWriter) colorFor(h model.Health) *color.Color {
	rgb := parseHex(h.Hex())
	c := color.RGB(int(rgb.R), int(rgb.G), int(rgb.B))
	if t.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (t *treeWriter) bold() *color.Color  { return t.attr(color.Bold) }
func (t *treeWriter) faint() *color.Color { return t.attr(color.Faint) }

func (t *treeWriter) attr(a color.Attribute) *color.Color {
	c := color.New(a)
	if t.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}
