package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/vidaboard/pkg/graph"
)

func TestSubgraph_Category(t *testing.T) {
	sub := Subgraph(testGraph(), "skills", 0)

	ids := make([]string, 0, len(sub.Nodes))
	for _, n := range sub.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"skills", "skills-mail", "skills-cal"}, ids)
	assert.Len(t, sub.Edges, 2)
}

func TestSubgraph_Depth(t *testing.T) {
	g := testGraph()

	sub := Subgraph(g, graph.RootID, 1)
	assert.Len(t, sub.Nodes, 5, "root plus four categories")
	assert.Len(t, sub.Edges, 4)

	full := Subgraph(g, graph.RootID, 0)
	assert.Equal(t, len(g.Nodes), len(full.Nodes))
	assert.Equal(t, len(g.Edges), len(full.Edges))
}

func TestSubgraph_UnknownRoot(t *testing.T) {
	sub := Subgraph(testGraph(), "nope", 0)
	assert.Empty(t, sub.Nodes)
	assert.Empty(t, sub.Edges)
}

func TestGenerateDOT(t *testing.T) {
	g := testGraph()
	out := GenerateDOT(g)

	require.True(t, strings.HasPrefix(out, "digraph VIDA {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `"skills-mail" [label="📧 Email Triage\nSorts the inbox", color="#00ff88", penwidth=1.0];`)
	assert.Contains(t, out, `"vida" -> "skills" [style=dashed, color="#00ffff", penwidth=2];`)
	assert.Contains(t, out, `"skills" -> "skills-mail" [style=solid, color="#00ffff", penwidth=1];`)
	assert.Equal(t, len(g.Edges), strings.Count(out, " -> "))
}

func TestEscapeDOTString(t *testing.T) {
	assert.Equal(t, `a \"b\" \\ c`, escapeDOTString(`a "b" \ c`))
	assert.Equal(t, "x y", escapeDOTString("x\ny"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 3))
	assert.Equal(t, "ab", truncateRunes("abcdef", 2))
	assert.Equal(t, "abc...", truncateRunes("abcdefgh", 6))
	assert.Equal(t, "", truncateRunes("abc", 0))
	assert.Equal(t, "⏰⏰...", truncateRunes("⏰⏰⏰⏰⏰⏰", 5))
}
