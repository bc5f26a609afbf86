package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

const (
	nodeWidth = 26
	barWidth  = 10

	gridGap = 20.0

	statusDot  = "●"
	gridGlyph  = "·"
	barFull    = '█'
	barEmpty   = '░'
	clockIcon  = "⏰"
)

type boxChars struct {
	tl, tr, bl, br, h, v string
}

var (
	plainBox    = boxChars{"╭", "╮", "╰", "╯", "─", "│"}
	focusedBox  = boxChars{"┏", "┓", "┗", "┛", "━", "┃"}
	selectedBox = boxChars{"╔", "╗", "╚", "╝", "═", "║"}
)

// nodeHeight is the number of rows a node box takes, borders included.
func nodeHeight(d model.NodeData) int {
	h := 3
	if d.Description != "" {
		h++
	}
	if d.AutomationLevel != nil {
		h++
	}
	if d.Schedule != "" {
		h++
	}
	if d.Progress != nil {
		h++
	}
	return h
}

func maxNodeHeight(nodes []model.GraphNode) int {
	h := 3
	for _, n := range nodes {
		h = max(h, nodeHeight(n.Data))
	}
	return h
}

// rect is a cell rectangle on the canvas.
type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) center() (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

func nodeRect(cam Camera, n model.GraphNode) rect {
	x, y := cam.Project(n.Position)
	return rect{x: x, y: y, w: nodeWidth, h: nodeHeight(n.Data)}
}

// nodeBar renders the automation and progress bars. Colour comes from the
// canvas styles, so only the glyphs of its output are used.
var nodeBar = newNodeBar()

func newNodeBar() progress.Model {
	bar := progress.New(progress.WithWidth(barWidth), progress.WithoutPercentage())
	bar.Full, bar.Empty = barFull, barEmpty
	return bar
}

type nodeLook struct {
	focused  bool
	selected bool
}

// drawNode paints one node box: health-coloured border, icon and label with
// the status dot, then the optional description, automation bar, schedule
// and progress bar lines.
func drawNode(c *canvas, t Theme, r rect, d model.NodeData, look nodeLook) {
	health := d.Health()
	hs := t.HealthStyle(health)
	border := c.style(hs)
	if look.focused || look.selected {
		border = c.style(hs.Bold(true))
	}
	text := c.style(t.Base.Bold(true))
	muted := c.style(t.MutedText)
	fill := c.style(hs)
	empty := c.style(t.BarEmpty)

	chars := plainBox
	switch {
	case look.selected:
		chars = selectedBox
	case look.focused:
		chars = focusedBox
	}

	c.fill(r.x+1, r.y+1, r.w-2, r.h-2, " ", 0)
	c.set(r.x, r.y, chars.tl, border)
	c.set(r.x+r.w-1, r.y, chars.tr, border)
	c.set(r.x, r.y+r.h-1, chars.bl, border)
	c.set(r.x+r.w-1, r.y+r.h-1, chars.br, border)
	for x := r.x + 1; x < r.x+r.w-1; x++ {
		c.set(x, r.y, chars.h, border)
		c.set(x, r.y+r.h-1, chars.h, border)
	}
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		c.set(r.x, y, chars.v, border)
		c.set(r.x+r.w-1, y, chars.v, border)
	}

	inner := r.w - 4
	x, y := r.x+2, r.y+1

	title := truncate(d.Title(), inner-2)
	c.text(x, y, title, text)
	c.set(r.x+r.w-3, y, statusDot, c.style(hs))
	y++

	if d.Description != "" {
		c.text(x, y, truncate(d.Description, inner), muted)
		y++
	}
	if d.AutomationLevel != nil {
		drawBar(c, x, y, *d.AutomationLevel, fill, empty, muted)
		y++
	}
	if d.Schedule != "" {
		c.text(x, y, truncate(clockIcon+" "+d.Schedule, inner), muted)
		y++
	}
	if d.Progress != nil {
		drawBar(c, x, y, *d.Progress, fill, empty, muted)
	}
}

func drawBar(c *canvas, x, y int, pct float64, fill, empty, label int) {
	cells := []rune(ansi.Strip(nodeBar.ViewAs(pct / 100)))
	n := strings.Count(string(cells), string(barFull))
	c.text(x, y, string(cells[:n]), fill)
	c.text(x+n, y, string(cells[n:]), empty)
	c.text(x+barWidth+1, y, model.FormatPercent(pct), label)
}

// drawGrid paints the dotted background. The world gap doubles while the
// projected spacing is under two columns so the pattern stays legible when
// zoomed out.
func drawGrid(c *canvas, cam Camera, style int) {
	gap := gridGap
	for gap*cam.Zoom/cellWorldW < 2 {
		gap *= 2
	}
	tl := cam.Unproject(0, 0)
	br := cam.Unproject(c.w, c.h)
	for wy := math.Floor(tl.Y/gap) * gap; wy <= br.Y; wy += gap {
		for wx := math.Floor(tl.X/gap) * gap; wx <= br.X; wx += gap {
			x, y := cam.Project(model.Position{X: wx, Y: wy})
			c.set(x, y, gridGlyph, style)
		}
	}
}

// lineGlyph picks a box-drawing stroke for a segment with the given cell
// slope.
func lineGlyph(dx, dy int) string {
	adx, ady := math.Abs(float64(dx)), math.Abs(float64(dy))
	switch {
	case adx == 0 || ady > 2*adx:
		return "│"
	case ady*4 < adx:
		return "─"
	case (dx > 0) == (dy > 0):
		return "╲"
	default:
		return "╱"
	}
}

// dashPeriod is the length of one dash plus gap on animated edges.
const dashPeriod = 4

// drawEdge draws a straight line between two cells. Animated edges leave a
// gap every dashPeriod cells and the gaps travel from source to target as
// phase grows.
func drawEdge(c *canvas, x0, y0, x1, y1 int, animated bool, phase int, style int) {
	glyph := lineGlyph(x1-x0, y1-y0)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for k := 0; ; k++ {
		if !animated || mod(k-phase, dashPeriod) != dashPeriod-1 {
			c.set(x0, y0, glyph, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

// scene paints the whole graph onto a canvas.
type scene struct {
	theme    Theme
	cam      Camera
	nodes    []model.GraphNode
	edges    []model.GraphEdge
	focused  string
	selected string
	phase    int
}

func (s scene) paint(c *canvas) {
	drawGrid(c, s.cam, c.style(s.theme.GridDot))

	rects := make(map[string]rect, len(s.nodes))
	for _, n := range s.nodes {
		rects[n.ID] = nodeRect(s.cam, n)
	}
	for _, e := range s.edges {
		src, okS := rects[e.Source]
		dst, okT := rects[e.Target]
		if !okS || !okT {
			continue
		}
		st := s.theme.AccentStyle(e.Style.Stroke)
		if e.Style.Width >= 2 {
			st = st.Bold(true)
		}
		x0, y0 := src.center()
		x1, y1 := dst.center()
		drawEdge(c, x0, y0, x1, y1, e.Style.Animated, s.phase, c.style(st))
	}
	for _, n := range s.nodes {
		drawNode(c, s.theme, rects[n.ID], n.Data, nodeLook{
			focused:  n.ID == s.focused,
			selected: n.ID == s.selected,
		})
	}
}

// hitTest returns the id of the topmost node covering (x, y), or "".
func hitTest(cam Camera, nodes []model.GraphNode, x, y int) string {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodeRect(cam, nodes[i]).contains(x, y) {
			return nodes[i].ID
		}
	}
	return ""
}

// statRow is a label/value line of the detail overlay.
type statRow struct {
	label string
	value string
	style lipgloss.Style
}

// detailStats lists the overlay rows present for d.
func detailStats(t Theme, d model.NodeData) []statRow {
	var rows []statRow
	if d.AutomationLevel != nil {
		rows = append(rows, statRow{"Automation Level", model.FormatPercent(*d.AutomationLevel), t.StatValue})
	}
	if d.Schedule != "" {
		rows = append(rows, statRow{"Schedule", d.Schedule, t.StatValue})
	}
	if d.Progress != nil {
		rows = append(rows, statRow{"Progress", model.FormatPercent(*d.Progress), t.StatValue})
	}
	if !d.Status.IsZero() {
		rows = append(rows, statRow{"Status", string(d.Status), t.StatValue.Foreground(t.HealthColor(model.HealthOf(d.Status)))})
	}
	return rows
}

func statLine(t Theme, r statRow, width int) string {
	value := r.style.Render(r.value)
	label := t.StatLabel.Render(padRight(r.label, width-lipgloss.Width(value)-1))
	return label + " " + value
}
