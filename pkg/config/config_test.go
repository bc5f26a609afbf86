package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.TimeFormat != DefaultTimeFormat {
		t.Errorf("expected default time format, got %q", cfg.UI.TimeFormat)
	}
	if !cfg.MouseEnabled() {
		t.Error("mouse should default to enabled")
	}
	if !cfg.FitOnStart() {
		t.Error("fit_on_start should default to true")
	}
	if cfg.Data != "" {
		t.Errorf("expected empty data path, got %q", cfg.Data)
	}
	if len(cfg.Export.Formats) == 0 {
		t.Error("expected default export formats")
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got := ConfigDir(); got != "/tmp/xdg-test/vidaboard" {
		t.Errorf("ConfigDir() = %q", got)
	}
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/tmp/custom.yaml")
	if got := ConfigPath(); got != "/tmp/custom.yaml" {
		t.Errorf("ConfigPath() = %q, want VB_CONFIG value", got)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.UI.TimeFormat != DefaultTimeFormat {
		t.Error("expected defaults for missing file")
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `data: /srv/vida/dashboard.yaml
ui:
  time_format: "2006-01-02 15:04"
  mouse: false
export:
  dir: /tmp/out
  formats: [png, sqlite]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Data != "/srv/vida/dashboard.yaml" {
		t.Errorf("data = %q", cfg.Data)
	}
	if cfg.UI.TimeFormat != "2006-01-02 15:04" {
		t.Errorf("time_format = %q", cfg.UI.TimeFormat)
	}
	if cfg.MouseEnabled() {
		t.Error("mouse should be disabled")
	}
	if !cfg.FitOnStart() {
		t.Error("fit_on_start absent should stay true")
	}
	if len(cfg.Export.Formats) != 2 || cfg.Export.Formats[0] != "png" {
		t.Errorf("formats = %v", cfg.Export.Formats)
	}
	// Untouched keys keep their defaults.
	if cfg.Export.Title != "VIDA Dashboard" {
		t.Errorf("title = %q", cfg.Export.Title)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Data = "/data/d.json"
	off := false
	cfg.UI.FitOnStart = &off

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Data != cfg.Data {
		t.Errorf("data = %q", loaded.Data)
	}
	if loaded.FitOnStart() {
		t.Error("fit_on_start should round-trip as false")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/data.json"); got != filepath.Join(home, "data.json") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("VB_TEST_FROM_FILE=file\nVB_TEST_PRESET=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VB_TEST_PRESET", "process")
	t.Setenv("VB_TEST_FROM_FILE", "")
	os.Unsetenv("VB_TEST_FROM_FILE")

	if err := LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("VB_TEST_FROM_FILE"); got != "file" {
		t.Errorf("VB_TEST_FROM_FILE = %q", got)
	}
	if got := os.Getenv("VB_TEST_PRESET"); got != "process" {
		t.Errorf("existing variable overridden: %q", got)
	}
	os.Unsetenv("VB_TEST_FROM_FILE")
}

func TestLoadEnv_MissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
