package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/model"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// GraphSnapshotOptions controls graph snapshot export behaviour.
type GraphSnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Graph  model.Graph
	Meta   Meta
}

// SaveGraphSnapshot renders a static picture of the dashboard (SVG or PNG):
// dotted backdrop, a summary header with legend, edges in their accent
// colours and one card per node.
func SaveGraphSnapshot(opts GraphSnapshotOptions) error {
	if len(opts.Graph.Nodes) == 0 {
		return ErrEmptyGraph
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("%w %q (want svg or png)", ErrUnsupportedFormat, format)
	}
	if opts.Path == "" {
		return ErrNoOutputPath
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildLayout(opts.Graph, opts.Meta)

	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	default:
		return renderPNG(opts.Path, layout)
	}
}

// --- layout computation ----------------------------------------------------

const (
	cardW        = 170.0
	cardTitleH   = 30.0
	cardLineH    = 18.0
	cardPadB     = 10.0
	cardPadX     = 10.0
	barW         = 100.0
	barH         = 6.0
	pagePadding  = 40.0
	headerHeight = 120.0
	dotGap       = 20
)

type layoutNode struct {
	ID     string
	Kind   model.NodeKind
	Data   model.NodeData
	Health color.RGBA
	X, Y   float64
	W, H   float64
}

func (n layoutNode) center() (float64, float64) {
	return n.X + n.W/2, n.Y + n.H/2
}

type layoutEdge struct {
	From, To string
	Stroke   color.RGBA
	Width    float64
	Animated bool
}

type layoutResult struct {
	Nodes   []layoutNode
	Edges   []layoutEdge
	Width   int
	Height  int
	Title   string
	Sync    string
	Summary graph.Summary
}

func cardHeight(d model.NodeData) float64 {
	h := cardTitleH + cardPadB
	if d.Description != "" {
		h += cardLineH
	}
	if d.AutomationLevel != nil {
		h += cardLineH
	}
	if d.Schedule != "" {
		h += cardLineH
	}
	if d.Progress != nil {
		h += cardLineH
	}
	return h
}

// buildLayout keeps the builder's positions and only shifts them so the
// top-left node clears the page padding and the header.
func buildLayout(g model.Graph, meta Meta) layoutResult {
	lo, _ := g.Bounds()
	offX := pagePadding - lo.X
	offY := pagePadding + headerHeight - lo.Y

	nodes := make([]layoutNode, 0, len(g.Nodes))
	maxX, maxY := 0.0, 0.0
	for _, n := range g.Nodes {
		ln := layoutNode{
			ID:     n.ID,
			Kind:   n.Kind,
			Data:   n.Data,
			Health: parseHex(n.Data.Health().Hex()),
			X:      n.Position.X + offX,
			Y:      n.Position.Y + offY,
			W:      cardW,
			H:      cardHeight(n.Data),
		}
		maxX = math.Max(maxX, ln.X+ln.W)
		maxY = math.Max(maxY, ln.Y+ln.H)
		nodes = append(nodes, ln)
	}

	edges := make([]layoutEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, layoutEdge{
			From:     e.Source,
			To:       e.Target,
			Stroke:   parseHex(e.Style.Stroke),
			Width:    e.Style.Width,
			Animated: e.Style.Animated,
		})
	}

	return layoutResult{
		Nodes:   nodes,
		Edges:   edges,
		Width:   int(math.Ceil(math.Max(maxX+pagePadding, 640))),
		Height:  int(math.Ceil(maxY + pagePadding)),
		Title:   meta.title(),
		Sync:    model.FormatTimestamp(meta.LastUpdated, model.DefaultTimeLayout),
		Summary: graph.Summarize(g),
	}
}

// --- rendering -------------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0x0a, 0x0a, 0x14, 0xff}
	colorDot      = color.RGBA{0x2a, 0x2a, 0x44, 0xff}
	colorHeaderBG = color.RGBA{0x12, 0x12, 0x22, 0xff}
	colorCardBG   = color.RGBA{0x16, 0x16, 0x2a, 0xff}
	colorTrack    = color.RGBA{0x2a, 0x2a, 0x40, 0xff}
	colorText     = color.RGBA{0xe8, 0xe8, 0xff, 0xff}
	colorSubtle   = color.RGBA{0x88, 0x88, 0xaa, 0xff}
	colorAccent   = color.RGBA{0x00, 0xff, 0xff, 0xff}
)

var legendRows = []struct {
	health model.Health
	label  string
}{
	{model.HealthHealthy, "active / connected / ok"},
	{model.HealthCaution, "paused"},
	{model.HealthDormant, "inactive"},
	{model.HealthDefault, "other / none"},
}

func renderPNG(path string, layout layoutResult) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorDot)
	for y := 0; y < layout.Height; y += dotGap {
		for x := 0; x < layout.Width; x += dotGap {
			dc.DrawCircle(float64(x), float64(y), 1)
		}
	}
	dc.Fill()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, headerHeight-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	drawSummaryBlock(dc, layout)
	drawLegend(dc, layout)

	nodePos := make(map[string]layoutNode, len(layout.Nodes))
	for _, n := range layout.Nodes {
		nodePos[n.ID] = n
	}
	for _, e := range layout.Edges {
		x1, y1 := nodePos[e.From].center()
		x2, y2 := nodePos[e.To].center()
		dc.SetColor(e.Stroke)
		dc.SetLineWidth(e.Width)
		if e.Animated {
			dc.SetDash(6, 4)
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		dc.SetDash()
	}

	for _, n := range layout.Nodes {
		drawNode(dc, n)
	}

	return dc.SavePNG(path)
}

func drawNode(dc *gg.Context, n layoutNode) {
	dc.SetColor(colorCardBG)
	dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 8)
	dc.Fill()
	dc.SetColor(n.Health)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 8)
	dc.Stroke()
	dc.DrawCircle(n.X+n.W-12, n.Y+12, 4)
	dc.Fill()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(truncateRunes(asciiOnly(n.Data.Label), 20), n.X+cardPadX, n.Y+cardTitleH/2+2, 0, 0.5)

	y := n.Y + cardTitleH
	if n.Data.Description != "" {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(truncateRunes(asciiOnly(n.Data.Description), 22), n.X+cardPadX, y+cardLineH/2-4, 0, 0.5)
		y += cardLineH
	}
	if n.Data.AutomationLevel != nil {
		drawBar(dc, n, y, *n.Data.AutomationLevel)
		y += cardLineH
	}
	if n.Data.Schedule != "" {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(truncateRunes("@ "+asciiOnly(n.Data.Schedule), 22), n.X+cardPadX, y+cardLineH/2-4, 0, 0.5)
		y += cardLineH
	}
	if n.Data.Progress != nil {
		drawBar(dc, n, y, *n.Data.Progress)
	}
}

func drawBar(dc *gg.Context, n layoutNode, y, pct float64) {
	dc.SetColor(colorTrack)
	dc.DrawRoundedRectangle(n.X+cardPadX, y+2, barW, barH, 3)
	dc.Fill()
	if w := barW * clampPct(pct) / 100; w > 0 {
		dc.SetColor(n.Health)
		dc.DrawRoundedRectangle(n.X+cardPadX, y+2, w, barH, 3)
		dc.Fill()
	}
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(model.FormatPercent(pct), n.X+cardPadX+barW+8, y+5, 0, 0.5)
}

func drawSummaryBlock(dc *gg.Context, layout layoutResult) {
	dc.SetColor(colorAccent)
	dc.DrawStringAnchored(asciiOnly(layout.Title), 32, 44, 0, 0.5)
	dc.SetColor(colorSubtle)
	for i, line := range summaryLines(layout) {
		dc.DrawStringAnchored(asciiOnly(line), 32, 64+float64(i)*20, 0, 0.5)
	}
}

func drawLegend(dc *gg.Context, layout layoutResult) {
	x := float64(layout.Width) - 220
	y := 30.0
	for i, row := range legendRows {
		ry := y + float64(i)*18
		dc.SetColor(parseHex(row.health.Hex()))
		dc.DrawCircle(x+6, ry, 5)
		dc.Fill()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(row.label, x+18, ry, 0, 0.5)
	}
}

func summaryLines(layout layoutResult) []string {
	s := layout.Summary
	parts := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		parts = append(parts, fmt.Sprintf("%s %d", c.Label, c.Leaves))
	}
	return []string{
		fmt.Sprintf("nodes: %d  edges: %d  items: %d", s.NodeCount, s.EdgeCount, s.LeafCount),
		strings.Join(parts, "  "),
		"Last sync: " + layout.Sync,
	}
}

func renderSVG(path string, layout layoutResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderSVGToWriter(file, layout, false)
}

// renderSVGToWriter draws the snapshot. In interactive mode the summary
// header is left to the host page, the graph sits in a "viewport" group the
// page can transform, and each card is a group carrying its node index.
func renderSVGToWriter(w io.Writer, layout layoutResult, interactive bool) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Def()
	canvas.Pattern("dots", 0, 0, dotGap, dotGap, "user")
	canvas.Circle(1, 1, 1, fmt.Sprintf("fill:%s", css(colorDot)))
	canvas.PatternEnd()
	canvas.DefEnd()
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Rect(0, 0, layout.Width, layout.Height, "fill:url(#dots)")
	if interactive {
		canvas.Gid("viewport")
	} else {
		drawHeaderSVG(canvas, layout)
	}

	nodePos := make(map[string]layoutNode, len(layout.Nodes))
	for _, n := range layout.Nodes {
		nodePos[n.ID] = n
	}
	for _, e := range layout.Edges {
		x1, y1 := nodePos[e.From].center()
		x2, y2 := nodePos[e.To].center()
		style := fmt.Sprintf("stroke:%s;stroke-width:%s", css(e.Stroke), strconv.FormatFloat(e.Width, 'f', -1, 64))
		if e.Animated {
			style += ";stroke-dasharray:6,4"
		}
		canvas.Line(int(x1), int(y1), int(x2), int(y2), style)
	}

	for i, n := range layout.Nodes {
		if interactive {
			canvas.Group(`class="vb-node"`, fmt.Sprintf(`data-index="%d"`, i))
		}
		x, y := int(n.X), int(n.Y)
		canvas.Roundrect(x, y, int(n.W), int(n.H), 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", css(colorCardBG), css(n.Health)))
		canvas.Circle(x+int(n.W)-12, y+12, 4, fmt.Sprintf("fill:%s", css(n.Health)))
		canvas.Text(x+int(cardPadX), y+20, truncateRunes(n.Data.Title(), 22),
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorText)))

		ly := y + int(cardTitleH)
		sub := fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle))
		if n.Data.Description != "" {
			canvas.Text(x+int(cardPadX), ly+10, truncateRunes(n.Data.Description, 24), sub)
			ly += int(cardLineH)
		}
		if n.Data.AutomationLevel != nil {
			barSVG(canvas, n, ly, *n.Data.AutomationLevel, sub)
			ly += int(cardLineH)
		}
		if n.Data.Schedule != "" {
			canvas.Text(x+int(cardPadX), ly+10, truncateRunes("⏰ "+n.Data.Schedule, 24), sub)
			ly += int(cardLineH)
		}
		if n.Data.Progress != nil {
			barSVG(canvas, n, ly, *n.Data.Progress, sub)
		}
		if interactive {
			canvas.Gend()
		}
	}
	if interactive {
		canvas.Gend()
	}

	canvas.End()
	return nil
}

func drawHeaderSVG(canvas *svg.SVG, layout layoutResult) {
	canvas.Roundrect(16, 16, layout.Width-32, int(headerHeight-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(32, 44, layout.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorAccent)))
	for i, line := range summaryLines(layout) {
		canvas.Text(32, 64+i*20, line, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	}
	lx := layout.Width - 220
	for i, row := range legendRows {
		ry := 30 + i*18
		canvas.Circle(lx+6, ry, 5, fmt.Sprintf("fill:%s", row.health.Hex()))
		canvas.Text(lx+18, ry+4, row.label, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	}
}

func barSVG(canvas *svg.SVG, n layoutNode, y int, pct float64, textStyle string) {
	x := int(n.X + cardPadX)
	canvas.Roundrect(x, y+2, int(barW), int(barH), 3, 3, fmt.Sprintf("fill:%s", css(colorTrack)))
	if w := int(math.Round(barW * clampPct(pct) / 100)); w > 0 {
		canvas.Roundrect(x, y+2, w, int(barH), 3, 3, fmt.Sprintf("fill:%s", css(n.Health)))
	}
	canvas.Text(x+int(barW)+8, y+9, model.FormatPercent(pct), textStyle)
}

// --- helpers ---------------------------------------------------------------

func clampPct(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// asciiOnly drops runes basicfont cannot draw and trims what is left.
func asciiOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// parseHex reads #rgb or #rrggbb. Anything else falls back to the default
// accent.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return colorAccent
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorAccent
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}
