package export

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// GenerateMermaid renders the graph as a Mermaid flowchart. Nodes are
// emitted in graph order so the root comes first, each gets a class for its
// health bucket and each edge keeps its stroke colour through linkStyle.
func GenerateMermaid(g model.Graph) string {
	var sb strings.Builder

	sb.WriteString("graph TD\n")
	for _, h := range model.Healths {
		sb.WriteString(fmt.Sprintf("    classDef %s fill:#16162a,stroke:%s,color:#e8e8ff\n", h, h.Hex()))
	}
	sb.WriteString("\n")

	// Deterministic, collision-free Mermaid IDs
	safeIDMap := make(map[string]string, len(g.Nodes))
	usedSafe := make(map[string]bool, len(g.Nodes))
	getSafeID := func(orig string) string {
		if safe, ok := safeIDMap[orig]; ok {
			return safe
		}
		base := sanitizeMermaidID(orig)
		safe := base
		if usedSafe[safe] {
			h := fnv.New32a()
			_, _ = h.Write([]byte(orig))
			safe = fmt.Sprintf("%s_%x", base, h.Sum32())
		}
		usedSafe[safe] = true
		safeIDMap[orig] = safe
		return safe
	}

	for _, n := range g.Nodes {
		safeID := getSafeID(n.ID)
		label := sanitizeMermaidText(n.Data.Title())
		if n.Kind == model.NodeLeaf {
			if sub := mermaidSubtitle(n.Data); sub != "" {
				label += "<br/>" + sub
			}
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeID, label))
		sb.WriteString(fmt.Sprintf("    class %s %s\n", safeID, n.Data.Health()))
	}

	sb.WriteString("\n")

	var linkStyles []string
	for i, e := range g.Edges {
		arrow := "-->"
		if e.Style.Animated {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", getSafeID(e.Source), arrow, getSafeID(e.Target)))
		linkStyles = append(linkStyles, fmt.Sprintf("    linkStyle %d stroke:%s,stroke-width:%gpx\n", i, e.Style.Stroke, e.Style.Width))
	}
	if len(linkStyles) > 0 {
		sb.WriteString("\n")
		for _, ls := range linkStyles {
			sb.WriteString(ls)
		}
	}

	return sb.String()
}

// mermaidSubtitle is the second label line: automation, schedule or progress,
// whichever the item carries first.
func mermaidSubtitle(d model.NodeData) string {
	switch {
	case d.AutomationLevel != nil:
		return "auto " + model.FormatPercent(*d.AutomationLevel)
	case d.Schedule != "":
		return sanitizeMermaidText(d.Schedule)
	case d.Progress != nil:
		return "progress " + model.FormatPercent(*d.Progress)
	}
	return ""
}

// sanitizeMermaidID keeps only characters Mermaid accepts in node IDs.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "node"
	}
	return sb.String()
}

// sanitizeMermaidText prepares text for a quoted Mermaid label.
func sanitizeMermaidText(text string) string {
	result := strings.NewReplacer(
		"\"", "'",
		"[", "(",
		"]", ")",
		"{", "(",
		"}", ")",
		"<", "&lt;",
		">", "&gt;",
		"|", "/",
		"`", "'",
		"\n", " ",
		"\r", "",
	).Replace(text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, result)
	result = strings.TrimSpace(result)

	if runes := []rune(result); len(runes) > 40 {
		result = string(runes[:37]) + "..."
	}
	return result
}
