package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

func TestGenerateMermaid(t *testing.T) {
	g := testGraph()
	out := GenerateMermaid(g)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "classDef healthy fill:#16162a,stroke:#00ff88")
	assert.Contains(t, out, `skills-mail["📧 Email Triage<br/>auto 80%"]`)
	assert.Contains(t, out, "class skills-mail healthy")
	assert.Contains(t, out, "class skills-cal caution")
	assert.Contains(t, out, "class projects-dash dormant")
	assert.Contains(t, out, `cron-brief["Morning Brief<br/>0 7 * * *"]`)
	assert.Contains(t, out, "vida -.-> skills")
	assert.Contains(t, out, "skills --> skills-mail")
	assert.Equal(t, len(g.Edges), strings.Count(out, "linkStyle "))
	assert.Contains(t, out, "linkStyle 0 stroke:#00ffff,stroke-width:2px")
}

func TestGenerateMermaid_IDCollision(t *testing.T) {
	g := model.Graph{Nodes: []model.GraphNode{
		{ID: "a.b", Kind: model.NodeLeaf, Data: model.NodeData{Label: "one"}},
		{ID: "a:b", Kind: model.NodeLeaf, Data: model.NodeData{Label: "two"}},
	}}
	out := GenerateMermaid(g)

	assert.Contains(t, out, `ab["one"]`)
	assert.Contains(t, out, `ab_`)
}

func TestSanitizeMermaidText(t *testing.T) {
	assert.Equal(t, "a 'b' (c) /", sanitizeMermaidText("a \"b\" [c] |"))
	assert.Equal(t, "&lt;x&gt;", sanitizeMermaidText("<x>"))
	long := strings.Repeat("x", 50)
	assert.Equal(t, strings.Repeat("x", 37)+"...", sanitizeMermaidText(long))
}

func TestSanitizeMermaidID(t *testing.T) {
	assert.Equal(t, "skills-mail", sanitizeMermaidID("skills-mail"))
	assert.Equal(t, "node", sanitizeMermaidID("⬡"))
	assert.Equal(t, "ab", sanitizeMermaidID("a b"))
}
