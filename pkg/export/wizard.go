package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/vidaboard/pkg/config"
)

// WizardResult is what the export wizard collected.
type WizardResult struct {
	Export   config.ExportConfig
	Remember bool // persist the choices to the config file
}

// Wizard asks for export formats, output directory and title.
type Wizard struct {
	defaults config.ExportConfig
	out      io.Writer
}

// NewWizard seeds the form with defaults, usually the configured export
// section.
func NewWizard(defaults config.ExportConfig) *Wizard {
	return &Wizard{defaults: defaults, out: os.Stdout}
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run shows the form and returns the validated answers.
func (w *Wizard) Run() (WizardResult, error) {
	res := WizardResult{Export: w.defaults}
	formats := append([]string(nil), w.defaults.Formats...)

	options := make([]huh.Option[string], 0, len(Formats))
	for _, f := range Formats {
		options = append(options, huh.NewOption(formatLabel(f), string(f)).Selected(contains(formats, string(f))))
	}

	fmt.Fprintln(w.out, "vb export")
	fmt.Fprintln(w.out, "─────────")

	form := newForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Formats").
				Options(options...).
				Value(&formats).
				Validate(validateFormats),
			huh.NewInput().
				Title("Output directory").
				Value(&res.Export.Dir).
				Placeholder(".").
				Validate(validateDir),
			huh.NewInput().
				Title("Title").
				Value(&res.Export.Title).
				Placeholder(defaultTitle),
			huh.NewConfirm().
				Title("Remember these choices?").
				Value(&res.Remember),
		),
	)
	if err := form.Run(); err != nil {
		return WizardResult{}, err
	}

	res.Export.Formats = formats
	return res.normalize(), nil
}

func (r WizardResult) normalize() WizardResult {
	r.Export.Dir = strings.TrimSpace(r.Export.Dir)
	if r.Export.Dir == "" {
		r.Export.Dir = "."
	}
	r.Export.Title = strings.TrimSpace(r.Export.Title)
	if r.Export.Title == "" {
		r.Export.Title = defaultTitle
	}
	return r
}

func validateFormats(selected []string) error {
	if len(selected) == 0 {
		return errors.New("pick at least one format")
	}
	_, err := ParseFormats(selected)
	return err
}

func validateDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil // created on export
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func formatLabel(f Format) string {
	switch f {
	case FormatSVG:
		return "SVG snapshot"
	case FormatPNG:
		return "PNG snapshot"
	case FormatHTML:
		return "Interactive HTML"
	case FormatMermaid:
		return "Mermaid diagram"
	case FormatSQLite:
		return "SQLite database"
	case FormatJSON:
		return "JSON (robot)"
	case FormatMarkdown:
		return "Markdown report"
	case FormatDOT:
		return "Graphviz DOT"
	}
	return string(f)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
