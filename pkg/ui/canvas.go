package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const zwj = '\u200d'

type cell struct {
	ch    string // "" marks the trailing half of a wide glyph
	style int
	wide  bool
}

// canvas is a grid of terminal cells that the dashboard paints into before
// flattening it to styled lines.
type canvas struct {
	w, h   int
	cells  []cell
	styles []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{
		w:      w,
		h:      h,
		cells:  make([]cell, w*h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.cells {
		c.cells[i] = cell{ch: " "}
	}
	return c
}

// style registers s and returns its index for use with set and text.
func (c *canvas) style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) at(x, y int) *cell {
	return &c.cells[y*c.w+x]
}

// clear breaks up any wide glyph overlapping (x, y).
func (c *canvas) clear(x, y int) {
	cur := c.at(x, y)
	if cur.ch == "" && x > 0 {
		*c.at(x-1, y) = cell{ch: " "}
	}
	if cur.wide && x+1 < c.w {
		*c.at(x+1, y) = cell{ch: " "}
	}
	*cur = cell{ch: " "}
}

// set writes one grapheme at (x, y) and returns the number of columns it
// took. Writes outside the canvas are dropped but still report the width,
// so text can run off either edge.
func (c *canvas) set(x, y int, g string, style int) int {
	width := max(runewidth.StringWidth(g), 1)
	if !c.in(x, y) {
		return width
	}
	c.clear(x, y)
	if width == 2 {
		if x+1 >= c.w {
			*c.at(x, y) = cell{ch: " ", style: style}
			return width
		}
		c.clear(x+1, y)
		*c.at(x, y) = cell{ch: g, style: style, wide: true}
		*c.at(x+1, y) = cell{ch: "", style: style}
		return width
	}
	*c.at(x, y) = cell{ch: g, style: style}
	return width
}

// text writes s starting at (x, y) and returns the columns consumed.
func (c *canvas) text(x, y int, s string, style int) int {
	start := x
	for _, g := range graphemes(s) {
		x += c.set(x, y, g, style)
	}
	return x - start
}

// graphemes splits s into display units. Zero-width runes and anything
// joined by ZWJ stay attached to the preceding unit.
func graphemes(s string) []string {
	var out []string
	joinNext := false
	for _, r := range s {
		if len(out) > 0 && (joinNext || runewidth.RuneWidth(r) == 0) {
			out[len(out)-1] += string(r)
			joinNext = r == zwj
			continue
		}
		out = append(out, string(r))
		joinNext = false
	}
	return out
}

// fill paints a rectangle with a single glyph.
func (c *canvas) fill(x, y, w, h int, g string, style int) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, g, style)
		}
	}
}

// renderRow flattens the cells [from, to) of row y into a styled string.
func (c *canvas) renderRow(y, from, to int) string {
	from, to = max(from, 0), min(to, c.w)
	var (
		sb      strings.Builder
		run     strings.Builder
		runKind = -1
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runKind == 0 {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(c.styles[runKind].Render(run.String()))
		}
		run.Reset()
	}
	for x := from; x < to; x++ {
		cl := c.cells[y*c.w+x]
		g, st := cl.ch, cl.style
		switch {
		case g == "" && x == from:
			// Trailing half of a glyph cut off on the left.
			g, st = " ", 0
		case g == "":
			continue
		case cl.wide && x+1 >= to:
			g, st = " ", 0
		}
		if st != runKind {
			flush()
			runKind = st
		}
		run.WriteString(g)
	}
	flush()
	return sb.String()
}

// Lines returns every row rendered in full.
func (c *canvas) Lines() []string {
	lines := make([]string, c.h)
	for y := range c.h {
		lines[y] = c.renderRow(y, 0, c.w)
	}
	return lines
}

// plainRow returns the row without styling. Tests use it to assert layout.
func (c *canvas) plainRow(y int) string {
	var sb strings.Builder
	for x := range c.w {
		sb.WriteString(c.cells[y*c.w+x].ch)
	}
	return sb.String()
}
