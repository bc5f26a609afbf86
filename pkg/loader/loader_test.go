package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/vidaboard/pkg/loader"
	"github.com/vanderheijden86/vidaboard/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]loader.Format{
		"data.json":     loader.FormatJSON,
		"data.yaml":     loader.FormatYAML,
		"DATA.YML":      loader.FormatYAML,
		"dashboard":     loader.FormatJSON,
		"dir/x.jsonish": loader.FormatJSON,
	}
	for path, want := range tests {
		if got := loader.FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(loader.DataEnvVar, "")
	if got := loader.ResolvePath("", ""); got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
	if got := loader.ResolvePath("", "cfg.json"); got != "cfg.json" {
		t.Errorf("expected configured path, got %q", got)
	}

	t.Setenv(loader.DataEnvVar, "env.json")
	if got := loader.ResolvePath("", "cfg.json"); got != "env.json" {
		t.Errorf("expected env path to beat config, got %q", got)
	}
	if got := loader.ResolvePath("flag.json", "cfg.json"); got != "flag.json" {
		t.Errorf("expected explicit path to win, got %q", got)
	}
}

func TestBundled(t *testing.T) {
	ds, err := loader.Bundled()
	if err != nil {
		t.Fatalf("Bundled: %v", err)
	}
	if len(ds.Skills) == 0 || len(ds.Integrations) == 0 || len(ds.CronJobs) == 0 || len(ds.Projects) == 0 {
		t.Fatalf("bundled dataset should populate every collection, got %+v", ds)
	}
	if _, err := ds.LastUpdatedTime(); err != nil {
		t.Errorf("bundled lastUpdated should parse: %v", err)
	}
}

func TestLoad_EmptyPathUsesBundled(t *testing.T) {
	ds, source, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if source != loader.BundledName {
		t.Errorf("source = %q, want %q", source, loader.BundledName)
	}
	if ds.ItemCount() == 0 {
		t.Error("expected bundled items")
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "d.json", `{
  "skills": [{"id":"s1","name":"Skill","status":"active","automationLevel":42.5}],
  "integrations": [],
  "cronJobs": [{"id":"c1","name":"Job","schedule":"0 * * * *","lastStatus":"ok"}],
  "projects": [{"id":"p1","name":"Proj","progress":0}],
  "lastUpdated": "2024-01-01T00:00:00Z"
}`)

	ds, err := loader.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(ds.Skills) != 1 || ds.Skills[0].Status != model.StatusActive {
		t.Fatalf("unexpected skills: %+v", ds.Skills)
	}
	if ds.Skills[0].AutomationLevel == nil || *ds.Skills[0].AutomationLevel != 42.5 {
		t.Errorf("automationLevel not decoded: %v", ds.Skills[0].AutomationLevel)
	}
	if ds.CronJobs[0].LastStatus != model.StatusOK || ds.CronJobs[0].Schedule != "0 * * * *" {
		t.Errorf("cron job not decoded: %+v", ds.CronJobs[0])
	}
	// A zero progress is present, not absent.
	if ds.Projects[0].Progress == nil || *ds.Projects[0].Progress != 0 {
		t.Errorf("progress 0 should decode as present: %v", ds.Projects[0].Progress)
	}
	if ds.Projects[0].AutomationLevel != nil {
		t.Error("absent automationLevel should stay nil")
	}
}

func TestLoadFromFile_NullFieldsAreAbsent(t *testing.T) {
	tests := map[string]string{
		"d.json": `{
  "skills": [{"id":"s1","name":"Skill","status":null,"automationLevel":null,"progress":null,"schedule":null}],
  "integrations": [], "cronJobs": [], "projects": [],
  "lastUpdated": "2024-01-01T00:00:00Z"
}`,
		"d.yaml": `skills:
  - id: s1
    name: Skill
    status: ~
    automationLevel: null
    progress: ~
    schedule: null
integrations: []
cronJobs: []
projects: []
lastUpdated: "2024-01-01T00:00:00Z"
`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			ds, err := loader.LoadFromFile(writeFile(t, name, content))
			if err != nil {
				t.Fatalf("LoadFromFile: %v", err)
			}
			it := ds.Skills[0]
			if it.AutomationLevel != nil || it.Progress != nil {
				t.Errorf("null percentages should decode as absent: %v %v", it.AutomationLevel, it.Progress)
			}
			if !it.Status.IsZero() || it.Schedule != "" {
				t.Errorf("null strings should decode as absent: %+v", it)
			}
			if got := model.DataFromItem(it).Health(); got != model.HealthDefault {
				t.Errorf("health = %v, want default", got)
			}
		})
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeFile(t, "d.yaml", `
skills:
  - id: s1
    name: Skill
    status: paused
projects:
  - id: p1
    name: Proj
    progress: 50
lastUpdated: "2024-06-01T12:00:00Z"
`)
	ds, err := loader.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(ds.Skills) != 1 || ds.Skills[0].Status != model.StatusPaused {
		t.Fatalf("unexpected skills: %+v", ds.Skills)
	}
	if len(ds.Integrations) != 0 || len(ds.CronJobs) != 0 {
		t.Error("missing collections should decode empty")
	}
	if ds.Projects[0].Progress == nil || *ds.Projects[0].Progress != 50 {
		t.Errorf("progress not decoded: %v", ds.Projects[0].Progress)
	}
}

func TestLoadFromFile_StripsBOM(t *testing.T) {
	path := writeFile(t, "bom.json", "\xEF\xBB\xBF"+`{"skills":[{"id":"a","name":"A"}]}`)
	ds, err := loader.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(ds.Skills) != 1 {
		t.Errorf("expected 1 skill, got %d", len(ds.Skills))
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := loader.LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "no dataset found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := writeFile(t, "bad.json", `{"skills": [`)
	_, err := loader.LoadFromFile(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestParseDataset_UnsupportedFormat(t *testing.T) {
	_, err := loader.ParseDataset(strings.NewReader("{}"), loader.Format("toml"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
