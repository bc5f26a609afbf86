package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/vidaboard/pkg/debug"
	"github.com/vanderheijden86/vidaboard/pkg/metrics"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

const (
	headerTitle = "🤖 VIDA DASHBOARD"
	headerBadge = "● All Systems Operational"

	headerRows = 1
	footerRows = 1

	frameInterval = 50 * time.Millisecond
	framesPerDash = 2

	defaultWidth  = 120
	defaultHeight = 40
)

// frameMsg drives the overlay spring and the edge dash animation.
type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Options configures a dashboard Model.
type Options struct {
	LastUpdated string // raw dataset timestamp for the footer
	TimeFormat  string // Go layout for the footer, local time
	FitOnStart  bool   // fit the graph to the first window size
}

type dragState struct {
	active bool
	id     string // "" pans the canvas
	x, y   int
	moved  bool
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	dash  Dashboard
	theme Theme
	keys  keyMap
	help  help.Model

	cam    Camera
	width  int
	height int

	focusIdx   int
	selectedID string
	panel      detailPanel
	md         *markdown
	drag       dragState
	frame      int

	showHelp      bool
	statusMsg     string
	statusIsError bool

	lastUpdated string
	timeFormat  string
	fitOnStart  bool
	fitted      bool

	copyFn func(string) error
}

// NewModel creates the dashboard for g.
func NewModel(g model.Graph, opts Options) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	h := help.New()
	h.Styles.ShortKey = theme.Header
	h.Styles.FullKey = theme.Header

	layout := opts.TimeFormat
	if layout == "" {
		layout = model.DefaultTimeLayout
	}

	m := Model{
		dash:        NewDashboard(g),
		theme:       theme,
		keys:        defaultKeyMap(),
		help:        h,
		cam:         DefaultCamera(),
		width:       defaultWidth,
		height:      defaultHeight,
		focusIdx:    -1,
		panel:       newDetailPanel(),
		md:          &markdown{},
		lastUpdated: opts.LastUpdated,
		timeFormat:  layout,
		fitOnStart:  opts.FitOnStart,
		copyFn:      clipboard.WriteAll,
	}
	if m.fitOnStart {
		m.fit()
	}
	return m
}

// Dashboard exposes the view state.
func (m Model) Dashboard() Dashboard { return m.dash }

// Camera returns the current viewport.
func (m Model) Camera() Camera { return m.cam }

func (m Model) Init() tea.Cmd {
	return frameCmd()
}

func (m Model) canvasHeight() int {
	h := m.height - headerRows - footerRows
	if m.showHelp {
		h -= lipgloss.Height(m.fullHelp())
	}
	return max(h, 1)
}

func (m *Model) fit() {
	m.cam = FitCamera(model.Graph{Nodes: m.dash.Nodes()}, m.width, m.canvasHeight(), nodeWidth, maxNodeHeight(m.dash.Nodes()))
}

func (m Model) focusedID() string {
	nodes := m.dash.Nodes()
	if m.focusIdx < 0 || m.focusIdx >= len(nodes) {
		return ""
	}
	return nodes[m.focusIdx].ID
}

func (m *Model) selectNode(id string) {
	if !m.dash.SelectID(id) {
		return
	}
	d, _ := m.dash.Selected()
	m.selectedID = id
	m.panel.open(d)
	m.statusMsg = ""
	debug.Log("selected %s", id)
}

func (m *Model) dismiss() {
	if _, ok := m.dash.Selected(); !ok {
		return
	}
	m.dash.Dismiss()
	m.selectedID = ""
	m.panel.close()
}

func (m *Model) cycleFocus(delta int) {
	n := len(m.dash.Nodes())
	if n == 0 {
		return
	}
	if m.focusIdx < 0 {
		if delta > 0 {
			m.focusIdx = 0
		} else {
			m.focusIdx = n - 1
		}
	} else {
		m.focusIdx = mod(m.focusIdx+delta, n)
	}
	m.ensureVisible(m.dash.Nodes()[m.focusIdx])
}

// ensureVisible recentres the camera when n's box is not fully on screen.
func (m *Model) ensureVisible(n model.GraphNode) {
	r := nodeRect(m.cam, n)
	if r.x >= 0 && r.y >= 0 && r.x+r.w <= m.width && r.y+r.h <= m.canvasHeight() {
		return
	}
	cx, cy := m.cam.CellDelta(r.w/2, r.h/2)
	m.cam.CenterOn(n.Position.Add(cx, cy), m.width, m.canvasHeight())
}

func (m *Model) moveFocused(dcols, drows int) {
	id := m.focusedID()
	if id == "" {
		return
	}
	dx, dy := m.cam.CellDelta(dcols, drows)
	m.dash.MoveNode(id, dx, dy)
}

func (m *Model) copySelected() {
	d, ok := m.dash.Selected()
	if !ok {
		m.statusMsg, m.statusIsError = "Nothing selected", true
		return
	}
	if err := m.copyFn(d.Label); err != nil {
		m.statusMsg, m.statusIsError = fmt.Sprintf("Clipboard error: %v", err), true
		return
	}
	m.statusMsg, m.statusIsError = fmt.Sprintf("Copied %q", d.Label), false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.fitOnStart && !m.fitted {
			m.fit()
			m.fitted = true
		}

	case frameMsg:
		m.frame++
		if m.panel.animating() {
			m.panel.step()
		}
		return m, frameCmd()

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp && (key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc) {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.cam.Pan(0, -panCells/2)
	case key.Matches(msg, m.keys.Down):
		m.cam.Pan(0, panCells/2)
	case key.Matches(msg, m.keys.Left):
		m.cam.Pan(-panCells, 0)
	case key.Matches(msg, m.keys.Right):
		m.cam.Pan(panCells, 0)
	case key.Matches(msg, m.keys.MoveUp):
		m.moveFocused(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveFocused(0, 1)
	case key.Matches(msg, m.keys.MoveLeft):
		m.moveFocused(-2, 0)
	case key.Matches(msg, m.keys.MoveRight):
		m.moveFocused(2, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.cam.ZoomAt(zoomStep, m.width/2, m.canvasHeight()/2)
	case key.Matches(msg, m.keys.ZoomOut):
		m.cam.ZoomAt(1/zoomStep, m.width/2, m.canvasHeight()/2)
	case key.Matches(msg, m.keys.Fit):
		m.fit()
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Select):
		if id := m.focusedID(); id != "" {
			m.selectNode(id)
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.dismiss()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	x, y := msg.X, msg.Y-headerRows

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cam.ZoomAt(zoomStep, x, y)
		return m
	case tea.MouseButtonWheelDown:
		m.cam.ZoomAt(1/zoomStep, x, y)
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if r, _, ok := m.panelLayout(); ok && r.contains(x, y) {
			// Title row, right edge: the close control.
			if y == r.y+1 && x >= r.x+r.w-4 {
				m.dismiss()
			}
			return m
		}
		id := hitTest(m.cam, m.dash.Nodes(), x, y)
		m.drag = dragState{active: true, id: id, x: x, y: y}
		if id != "" {
			m.focusIdx = m.dash.Index(id)
		}

	case tea.MouseActionMotion:
		if !m.drag.active {
			return m
		}
		dcol, drow := x-m.drag.x, y-m.drag.y
		if dcol == 0 && drow == 0 {
			return m
		}
		m.drag.moved = true
		if m.drag.id != "" {
			dx, dy := m.cam.CellDelta(dcol, drow)
			m.dash.MoveNode(m.drag.id, dx, dy)
		} else {
			m.cam.Pan(-dcol, -drow)
		}
		m.drag.x, m.drag.y = x, y

	case tea.MouseActionRelease:
		if m.drag.active && !m.drag.moved && m.drag.id != "" {
			m.selectNode(m.drag.id)
		}
		m.drag = dragState{}
	}
	return m
}

// panelLayout renders the overlay and returns where it currently sits on
// the canvas, slide offset applied.
func (m Model) panelLayout() (rect, []string, bool) {
	if !m.panel.visible {
		return rect{}, nil, false
	}
	lines := renderPanel(m.theme, m.md, m.panel.data, min(panelWidth, m.width))
	r := panelRect(m.width, m.canvasHeight(), len(lines))
	r.y += m.panel.offset(len(lines))
	return r, lines, true
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteByte('\n')
	sb.WriteString(m.renderCanvas())
	if m.showHelp {
		sb.WriteByte('\n')
		sb.WriteString(m.fullHelp())
	}
	sb.WriteByte('\n')
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render(headerTitle)
	badge := m.theme.Badge.Render(headerBadge)
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(badge))
	return title + strings.Repeat(" ", gap) + badge
}

func (m Model) renderCanvas() string {
	h := m.canvasHeight()
	c := newCanvas(m.width, h)
	scene{
		theme:    m.theme,
		cam:      m.cam,
		nodes:    m.dash.Nodes(),
		edges:    m.dash.Edges(),
		focused:  m.focusedID(),
		selected: m.selectedID,
		phase:    m.frame / framesPerDash,
	}.paint(c)

	r, lines, ok := m.panelLayout()
	rows := make([]string, h)
	for y := range h {
		i := y - r.y
		if !ok || i < 0 || i >= len(lines) {
			rows[y] = c.renderRow(y, 0, m.width)
			continue
		}
		rows[y] = c.renderRow(y, 0, r.x) + lines[i] + c.renderRow(y, r.x+r.w, m.width)
	}
	return strings.Join(rows, "\n")
}

func (m Model) fullHelp() string {
	return m.help.FullHelpView(m.keys.FullHelp())
}

func (m Model) renderFooter() string {
	left := m.theme.Footer.Render("Last sync: " + model.FormatTimestamp(m.lastUpdated, m.timeFormat))

	var right string
	switch {
	case m.statusMsg != "" && m.statusIsError:
		right = m.theme.Error.Render(m.statusMsg)
	case m.statusMsg != "":
		right = m.theme.Badge.Render(m.statusMsg)
	default:
		right = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}
