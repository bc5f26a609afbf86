package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

func TestRenderInteractiveHTML(t *testing.T) {
	page, err := RenderInteractiveHTML(testGraph(), testMeta())
	require.NoError(t, err)

	assert.NotContains(t, page, "__VB_")
	assert.Contains(t, page, "<title>Test Board</title>")
	assert.Contains(t, page, `id="viewport"`)
	assert.Contains(t, page, "toLocaleString")
	assert.NotContains(t, page, "<?xml")
}

func TestRenderInteractiveHTML_DataIsland(t *testing.T) {
	g := testGraph()
	page, err := RenderInteractiveHTML(g, testMeta())
	require.NoError(t, err)

	const open = `<script id="vb-data" type="application/json">`
	start := strings.Index(page, open)
	require.GreaterOrEqual(t, start, 0)
	rest := page[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.GreaterOrEqual(t, end, 0)

	var payload struct {
		Title       string      `json:"title"`
		LastUpdated string      `json:"lastUpdated"`
		Graph       model.Graph `json:"graph"`
	}
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &payload))
	assert.Equal(t, "Test Board", payload.Title)
	assert.Equal(t, "2024-03-05T14:07:09Z", payload.LastUpdated)
	assert.Len(t, payload.Graph.Nodes, len(g.Nodes))
	assert.Len(t, payload.Graph.Edges, len(g.Edges))
}

func TestRenderInteractiveHTML_EscapesTitle(t *testing.T) {
	meta := testMeta()
	meta.Title = "A </script><b>B"
	page, err := RenderInteractiveHTML(testGraph(), meta)
	require.NoError(t, err)

	assert.Contains(t, page, "<title>A &lt;/script&gt;&lt;b&gt;B</title>")
	assert.Equal(t, 2, strings.Count(page, "</script>"))
}

func TestGenerateInteractiveHTML_ForcesExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateInteractiveHTML(HTMLOptions{Path: filepath.Join(dir, "sub", "board.txt"), Graph: testGraph(), Meta: testMeta()}))

	_, err := os.Stat(filepath.Join(dir, "sub", "board.html"))
	assert.NoError(t, err)
}

func TestGenerateInteractiveHTML_Errors(t *testing.T) {
	assert.ErrorIs(t, GenerateInteractiveHTML(HTMLOptions{Path: "x.html"}), ErrEmptyGraph)
	assert.ErrorIs(t, GenerateInteractiveHTML(HTMLOptions{Graph: testGraph()}), ErrNoOutputPath)
}
