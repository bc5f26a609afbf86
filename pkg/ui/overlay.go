package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

const (
	panelWidth  = 44
	closeGlyph  = "×"
	panelMargin = 1
)

// detailPanel is the slide-in overlay. The spring position is the fraction
// of the panel pushed below the canvas: 1 is fully hidden, 0 fully shown.
// The last payload is kept while the panel slides out.
type detailPanel struct {
	spring  Spring
	data    model.NodeData
	visible bool
}

func newDetailPanel() detailPanel {
	return detailPanel{spring: NewSpring(1)}
}

// open shows d, starting the slide-in if the panel was hidden.
func (p *detailPanel) open(d model.NodeData) {
	p.data = d
	if !p.visible {
		p.spring.Pos, p.spring.Vel = 1, 0
		p.visible = true
	}
	p.spring.Target = 0
}

// close starts the slide-out.
func (p *detailPanel) close() {
	p.spring.Target = 1
}

// animating reports whether frames still change the panel.
func (p detailPanel) animating() bool {
	return p.visible && !p.spring.Settled()
}

// step advances the slide and hides the panel once it has left the screen.
func (p *detailPanel) step() {
	if !p.visible {
		return
	}
	p.spring.Step()
	if p.spring.Target == 1 && p.spring.Settled() {
		p.visible = false
		p.data = model.NodeData{}
	}
}

// offset converts the spring position into rows pushed down from the
// resting place for a panel of the given height.
func (p detailPanel) offset(height int) int {
	return int(math.Round(p.spring.Pos * float64(height+panelMargin)))
}

// markdown renders descriptions for the overlay, caching the glamour
// renderer per wrap width.
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

func (m *markdown) render(s string, width int) string {
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return s
		}
		m.renderer, m.width = r, width
	}
	out, err := m.renderer.Render(s)
	if err != nil {
		return s
	}
	// glamour pads with blank lines and a left margin; the panel has its own.
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// renderPanel builds the overlay box for d at the given outer width.
func renderPanel(t Theme, md *markdown, d model.NodeData, width int) []string {
	inner := max(width-4, 8)
	hs := t.HealthStyle(d.Health())

	title := hs.Bold(true).Render(truncate(d.Title(), inner-2))
	closeBtn := t.CloseBtn.Render(closeGlyph)
	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(closeBtn))
	parts := []string{title + strings.Repeat(" ", gap) + closeBtn}

	if d.Description != "" {
		parts = append(parts, "", md.render(d.Description, inner))
	}
	if rows := detailStats(t, d); len(rows) > 0 {
		parts = append(parts, "")
		for _, r := range rows {
			parts = append(parts, statLine(t, r, inner))
		}
	}

	box := t.Panel.
		BorderForeground(t.HealthColor(d.Health())).
		Width(width - 2).
		Render(strings.Join(parts, "\n"))
	return strings.Split(box, "\n")
}

// panelRect is where the panel sits on a canvas of size w x h when fully
// shown.
func panelRect(w, h, lines int) rect {
	width := min(panelWidth, w)
	return rect{
		x: max(0, w-width-panelMargin),
		y: h - lines - panelMargin,
		w: width,
		h: lines,
	}
}
