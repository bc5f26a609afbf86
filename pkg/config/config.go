// Package config handles loading and saving vidaboard configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/vidaboard/config.yaml
//
// VB_CONFIG points at an alternative file. A .env file in the working
// directory is read first so that VB_* variables can be kept per project.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/vidaboard/pkg/model"
)

// AppName is the XDG directory name.
const AppName = "vidaboard"

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "VB_CONFIG"

// DefaultTimeFormat renders the "Last sync" footer.
const DefaultTimeFormat = model.DefaultTimeLayout

// UIConfig holds dashboard preferences.
type UIConfig struct {
	TimeFormat string `yaml:"time_format,omitempty"`
	Mouse      *bool  `yaml:"mouse,omitempty"`        // enable mouse cell motion (default true)
	FitOnStart *bool  `yaml:"fit_on_start,omitempty"` // fit the graph to the viewport at startup (default true)
}

// ExportConfig holds defaults for `vb export`.
type ExportConfig struct {
	Dir     string   `yaml:"dir,omitempty"`
	Formats []string `yaml:"formats,omitempty"`
	Title   string   `yaml:"title,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Data   string       `yaml:"data,omitempty"` // dataset file; empty uses the bundled copy
	UI     UIConfig     `yaml:"ui,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			TimeFormat: DefaultTimeFormat,
		},
		Export: ExportConfig{
			Dir:     ".",
			Formats: []string{"svg", "html"},
			Title:   "VIDA Dashboard",
		},
	}
}

// MouseEnabled reports whether mouse input should be captured.
func (c Config) MouseEnabled() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}

// FitOnStart reports whether the view should fit the graph when it opens.
func (c Config) FitOnStart() bool {
	return c.UI.FitOnStart == nil || *c.UI.FitOnStart
}

// ConfigDir returns the XDG config directory.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the config file path, honouring VB_CONFIG.
func ConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return expandHome(p)
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadEnv reads .env files (default: ./.env) into the process environment.
// Variables already set are left alone and missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file from ConfigPath.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.UI.TimeFormat == "" {
		cfg.UI.TimeFormat = DefaultTimeFormat
	}
	cfg.Data = expandHome(cfg.Data)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

	return cfg, nil
}

// Save writes the config to ConfigPath.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
