package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/vidaboard/pkg/config"
	"github.com/vanderheijden86/vidaboard/pkg/debug"
	"github.com/vanderheijden86/vidaboard/pkg/export"
	"github.com/vanderheijden86/vidaboard/pkg/graph"
	"github.com/vanderheijden86/vidaboard/pkg/loader"
	"github.com/vanderheijden86/vidaboard/pkg/metrics"
	"github.com/vanderheijden86/vidaboard/pkg/model"
	"github.com/vanderheijden86/vidaboard/pkg/ui"
	"github.com/vanderheijden86/vidaboard/pkg/version"
)

// Globals are flags shared by every command.
type Globals struct {
	Data    string `short:"d" help:"Dataset file (JSON or YAML). Defaults to $VB_DATA, then the config file, then the bundled sample." type:"path"`
	Config  string `help:"Config file." env:"VB_CONFIG" type:"path"`
	Debug   bool   `help:"Log diagnostics to stderr (same as VB_DEBUG=1)."`
	Timings bool   `help:"Print operation timings to stderr on exit."`

	out    io.Writer `kong:"-"`
	errOut io.Writer `kong:"-"`
}

// CLI is the root kong command structure.
type CLI struct {
	Globals

	ShowVersion kong.VersionFlag `name:"version" help:"Show version information"`

	View    ViewCmd    `cmd:"" default:"withargs" help:"Open the dashboard (default)"`
	Export  ExportCmd  `cmd:"" help:"Write the dashboard to files"`
	Tree    TreeCmd    `cmd:"" help:"Print the graph as a text tree"`
	Robot   RobotCmd   `cmd:"" help:"Print the graph and summary as JSON"`
	Check   CheckCmd   `cmd:"" help:"Validate the dataset and the built graph"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// Execute parses args and runs the selected command.
func Execute(args []string) error {
	return execute(args, os.Stdout)
}

func execute(args []string, out io.Writer) error {
	cli := &CLI{Globals: Globals{out: out, errOut: os.Stderr}}
	parser, err := kong.New(cli,
		kong.Name("vb"),
		kong.Description("VIDA dashboard: skills, integrations, cron jobs and projects as a node graph."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.String()},
		kong.Writers(out, os.Stderr),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if cli.Debug {
		debug.SetEnabled(true)
	}
	err = ctx.Run(&cli.Globals)
	if cli.Timings {
		printTimings(cli.errOut)
	}
	return err
}

func printTimings(w io.Writer) {
	for _, s := range metrics.AllTimingStats() {
		fmt.Fprintf(w, "%-14s n=%-4d avg=%.2fms max=%.2fms total=%.2fms\n", s.Name, s.Count, s.AvgMs, s.MaxMs, s.TotalMs)
	}
}

// session is everything a command needs after startup.
type session struct {
	cfg    config.Config
	ds     model.Dataset
	source string
	graph  model.Graph
}

func (s session) meta(title string) export.Meta {
	return export.Meta{Title: title, LastUpdated: s.ds.LastUpdated, Source: s.source}
}

func (g *Globals) load() (session, error) {
	var (
		cfg config.Config
		err error
	)
	if g.Config != "" {
		cfg, err = config.LoadFrom(g.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return session{}, err
	}
	debug.Dump("config", cfg)

	path := loader.ResolvePath(g.Data, cfg.Data)
	ds, source, err := loader.Load(path)
	if err != nil {
		return session{}, err
	}
	debug.Log("loaded %d items from %s", ds.ItemCount(), source)

	built := graph.Build(ds)
	if debug.Enabled() {
		err := graph.Verify(built)
		debug.LogIf(err != nil, "graph verification failed: %v", err)
	}
	return session{cfg: cfg, ds: ds, source: source, graph: built}, nil
}

// scoped narrows g to one category when id is set.
func scoped(g model.Graph, id string) (model.Graph, error) {
	if id == "" {
		return g, nil
	}
	n := g.Node(id)
	if n == nil || n.Kind != model.NodeCategory {
		return model.Graph{}, fmt.Errorf("unknown category %q", id)
	}
	return export.Subgraph(g, id, 0), nil
}

// ViewCmd opens the interactive dashboard.
type ViewCmd struct {
	NoMouse bool `help:"Disable mouse input."`
}

// Run executes the view command.
func (c *ViewCmd) Run(g *Globals) error {
	s, err := g.load()
	if err != nil {
		return err
	}
	m := ui.NewModel(s.graph, ui.Options{
		LastUpdated: s.ds.LastUpdated,
		TimeFormat:  s.cfg.UI.TimeFormat,
		FitOnStart:  s.cfg.FitOnStart(),
	})
	return runTUIProgram(m, s.cfg.MouseEnabled() && !c.NoMouse)
}

// ExportCmd writes one file per format.
type ExportCmd struct {
	Out      string   `short:"o" help:"Output directory." type:"path"`
	Format   []string `short:"f" sep:"," help:"Formats: svg, png, html, mermaid, dot, sqlite, json, markdown."`
	Title    string   `help:"Title shown in the exports."`
	Category string   `help:"Export only one category (skills, integrations, cron, projects)."`
	Wizard   bool     `short:"w" help:"Choose the options interactively."`
}

// Run executes the export command.
func (c *ExportCmd) Run(g *Globals) error {
	s, err := g.load()
	if err != nil {
		return err
	}

	opts := s.cfg.Export
	if c.Out != "" {
		opts.Dir = c.Out
	}
	if len(c.Format) > 0 {
		opts.Formats = c.Format
	}
	if c.Title != "" {
		opts.Title = c.Title
	}

	if c.Wizard {
		res, err := export.NewWizard(opts).Run()
		if err != nil {
			return err
		}
		opts = res.Export
		if res.Remember {
			s.cfg.Export = opts
			if err := saveConfig(g, s.cfg); err != nil {
				return err
			}
		}
	}

	formats, err := export.ParseFormats(opts.Formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return errors.New("no export formats selected")
	}
	scope, err := scoped(s.graph, c.Category)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	targets := export.TargetsFor(opts.Dir, formats)
	if err := export.ExportAll(ctx, scope, s.meta(opts.Title), targets); err != nil {
		return err
	}
	for _, t := range targets {
		color.New(color.FgGreen).Fprintf(g.out, "✓ %s\n", t.Path)
	}
	return nil
}

func saveConfig(g *Globals, cfg config.Config) error {
	if g.Config != "" {
		return config.SaveTo(cfg, g.Config)
	}
	return config.Save(cfg)
}

// TreeCmd prints the graph as a tree.
type TreeCmd struct {
	NoColor  bool   `help:"Disable colour."`
	Category string `help:"Print only one category."`
}

// Run executes the tree command.
func (c *TreeCmd) Run(g *Globals) error {
	s, err := g.load()
	if err != nil {
		return err
	}
	scope, err := scoped(s.graph, c.Category)
	if err != nil {
		return err
	}
	return export.WriteTree(g.out, scope, export.TreeOptions{NoColor: c.NoColor || color.NoColor})
}

// RobotCmd prints machine-readable JSON.
type RobotCmd struct {
	Category string `help:"Print only one category."`
}

// Run executes the robot command.
func (c *RobotCmd) Run(g *Globals) error {
	s, err := g.load()
	if err != nil {
		return err
	}
	scope, err := scoped(s.graph, c.Category)
	if err != nil {
		return err
	}
	return export.WriteRobotJSON(g.out, scope, graph.Summarize(scope), s.meta(s.cfg.Export.Title))
}

// CheckCmd verifies the dataset produces a well-formed graph.
type CheckCmd struct{}

// Run executes the check command.
func (c *CheckCmd) Run(g *Globals) error {
	s, err := g.load()
	if err != nil {
		return err
	}
	if err := graph.Verify(s.graph); err != nil {
		return err
	}
	if _, err := s.ds.LastUpdatedTime(); err != nil {
		color.New(color.FgYellow).Fprintf(g.out, "! lastUpdated %q is not a valid timestamp\n", s.ds.LastUpdated)
	}
	sum := graph.Summarize(s.graph)
	color.New(color.FgGreen).Fprintf(g.out, "✓ %s: %d nodes, %d edges, %d items\n", s.source, sum.NodeCount, sum.EdgeCount, sum.LeafCount)
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(g *Globals) error {
	_, err := fmt.Fprintf(g.out, "vb %s\n", version.String())
	return err
}

func runTUIProgram(m ui.Model, mouse bool) error {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set VB_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("VB_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
