package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// healthANSI is the 16-color fallback for each health bucket.
var healthANSI = map[model.Health]lipgloss.ANSIColor{
	model.HealthHealthy: 10,
	model.HealthCaution: 11,
	model.HealthDormant: 8,
	model.HealthDefault: 14,
}

type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Header    lipgloss.Style
	Badge     lipgloss.Style
	Footer    lipgloss.Style
	GridDot   lipgloss.Style
	MutedText lipgloss.Style
	BarEmpty  lipgloss.Style
	Panel     lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	CloseBtn  lipgloss.Style
	Error     lipgloss.Style
}

// DefaultTheme returns the neon-on-dark dashboard theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#007A7A", Dark: "#00FFFF"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#444444", Dark: "#C8C8D0"},
		Muted:     lipgloss.AdaptiveColor{Light: "#777777", Dark: "#5A5A6E"},
		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#33334A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#1A1A2E"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F0F0F5"})
	t.Header = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Badge = r.NewStyle().Foreground(t.HealthColor(model.HealthHealthy))
	t.Footer = r.NewStyle().Foreground(t.Subtext)
	t.GridDot = r.NewStyle().Foreground(t.Border)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.BarEmpty = r.NewStyle().Foreground(t.Border)
	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	t.StatLabel = r.NewStyle().Foreground(t.Subtext)
	t.StatValue = r.NewStyle().Bold(true)
	t.CloseBtn = r.NewStyle().Foreground(t.Subtext).Bold(true)
	t.Error = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"})

	return t
}

// HealthColor is the terminal colour of a health bucket.
func (t Theme) HealthColor(h model.Health) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return healthANSI[h]
	}
	return lipgloss.Color(h.Hex())
}

// HealthStyle is a foreground style in the health colour.
func (t Theme) HealthStyle(h model.Health) lipgloss.Style {
	return t.Renderer.NewStyle().Foreground(t.HealthColor(h))
}

// AccentStyle colours an edge with its stroke.
func (t Theme) AccentStyle(hex string) lipgloss.Style {
	return t.Renderer.NewStyle().Foreground(ThemeFg(hex))
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
