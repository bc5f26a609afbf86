package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Fit       key.Binding
	Next      key.Binding
	Prev      key.Binding
	Select    key.Binding
	Dismiss   key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		MoveUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move node up")),
		MoveDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move node down")),
		MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "move node left")),
		MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "move node right")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Fit:       key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "fit view")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next node")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev node")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Dismiss:   key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc/x", "close")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy label")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Dismiss, k.Fit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Fit},
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},
		{k.Next, k.Prev, k.Select, k.Dismiss},
		{k.Copy, k.Help, k.Quit},
	}
}
