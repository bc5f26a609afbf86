// Package loader reads the dashboard dataset from disk or from the copy
// bundled into the binary.
package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/vidaboard/pkg/debug"
	"github.com/vanderheijden86/vidaboard/pkg/metrics"
	"github.com/vanderheijden86/vidaboard/pkg/model"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DataEnvVar names the environment variable that points at a dataset file.
const DataEnvVar = "VB_DATA"

// BundledName is the pseudo-path reported for the embedded dataset.
const BundledName = "<bundled>"

//go:embed data/dashboard.json
var bundledDataset []byte

// Format is the encoding of a dataset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the encoding from a file extension. Anything that is
// not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ResolvePath picks the dataset path: an explicit path wins, then VB_DATA,
// then the configured fallback. An empty result means "use the bundled copy".
func ResolvePath(explicit, configured string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(DataEnvVar); env != "" {
		return env
	}
	return configured
}

// Bundled returns the dataset compiled into the binary.
func Bundled() (model.Dataset, error) {
	ds, err := ParseDataset(bytes.NewReader(bundledDataset), FormatJSON)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("parse bundled dataset: %w", err)
	}
	return ds, nil
}

// Load reads the dataset at path, or the bundled dataset when path is empty
// or equals BundledName. It returns the source actually used.
func Load(path string) (model.Dataset, string, error) {
	if path == "" || path == BundledName {
		ds, err := Bundled()
		return ds, BundledName, err
	}
	ds, err := LoadFromFile(path)
	return ds, path, err
}

// LoadFromFile reads and decodes a dataset file.
func LoadFromFile(path string) (model.Dataset, error) {
	defer debug.LogEnterExit("loader.LoadFromFile")()
	defer metrics.Timer(metrics.DatasetLoad)()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Dataset{}, fmt.Errorf("no dataset found at %s", path)
		}
		return model.Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	ds, err := ParseDataset(file, FormatFromPath(path))
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	debug.Log("loaded %d items from %s", ds.ItemCount(), path)
	return ds, nil
}

// utf8BOM is stripped before decoding; editors on some platforms add it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseDataset decodes a dataset document. Shape is not validated beyond what
// decoding itself requires: missing collections decode as empty.
func ParseDataset(r io.Reader, format Format) (model.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var ds model.Dataset
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return model.Dataset{}, fmt.Errorf("decode yaml dataset: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &ds); err != nil {
			return model.Dataset{}, fmt.Errorf("decode json dataset: %w", err)
		}
	default:
		return model.Dataset{}, fmt.Errorf("unsupported dataset format %q", format)
	}
	return ds, nil
}
