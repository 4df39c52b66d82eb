// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting harness configuration.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the harness configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultWorkloadBinary matches the cargo release layout of the
	// sibling workload crate.
	defaultWorkloadBinary = "../target/release/rust-ml-benchmark"
	// defaultManifestPath points the build step at the workload crate.
	defaultManifestPath = "../Cargo.toml"
	// defaultOutputDir receives the per-phase CSV files.
	defaultOutputDir = "bench"
	// defaultRunTimeout bounds a single workload invocation.
	defaultRunTimeout = 10 * time.Minute
)

// Config represents the top-level harness configuration. Fields map 1:1 to
// viper keys; flags override file values which override defaults.
type Config struct {
	Workload    string  `json:"workload,omitempty"`
	Manifest    string  `json:"manifest,omitempty"`
	OutputDir   string  `json:"outputDir,omitempty"`
	PhaseTable  string  `json:"phaseTable,omitempty"`
	Timeout     int     `json:"timeout,omitempty"`
	SkipBuild   bool    `json:"skipBuild"`
	Debug       bool    `json:"debug"`
	JSONSummary bool    `json:"jsonSummary"`
	LogFile     string  `json:"logFile,omitempty"`
	ConfigPath  string  `json:"-"`
	Phases      []Phase `json:"-"`
}

// Phase couples a phase name with the marker substring introducing its
// block in the workload output and the CSV file that collects its rows.
type Phase struct {
	Name   string `json:"name"`
	Marker string `json:"marker"`
	File   string `json:"file"`
}

// WorkloadPath returns the workload binary path, applying the default.
func (c Config) WorkloadPath() string {
	if p := strings.TrimSpace(c.Workload); p != "" {
		return p
	}
	return defaultWorkloadBinary
}

// ManifestPath returns the Cargo manifest used by the build step.
func (c Config) ManifestPath() string {
	if p := strings.TrimSpace(c.Manifest); p != "" {
		return p
	}
	return defaultManifestPath
}

// OutputDirectory returns the CSV destination directory.
func (c Config) OutputDirectory() string {
	if p := strings.TrimSpace(c.OutputDir); p != "" {
		return p
	}
	return defaultOutputDir
}

// RunTimeout bounds one workload subprocess run.
func (c Config) RunTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultRunTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

// LogFilePath returns the log file path, or empty for stdout-only logging.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// DefaultPhases returns the phase table matching the workload's stdout
// format: one entry per block the Rust binary prints, including the
// envload block.
func DefaultPhases() []Phase {
	return []Phase{
		{Name: "envload", Marker: "envload Metrics", File: "envload.csv"},
		{Name: "loadmodel", Marker: "loadmodel Metrics", File: "loadmodel.csv"},
		{Name: "readimg", Marker: "readimg Metrics", File: "readimg.csv"},
		{Name: "redbox", Marker: "RED BOX Phase Metrics", File: "redbox.csv"},
		{Name: "preprocessing", Marker: "Pre-processing Metrics", File: "preprocessing.csv"},
		{Name: "inference", Marker: "Inference Metrics", File: "inference.csv"},
		{Name: "postprocessing", Marker: "Post-processing Metrics", File: "postprocessing.csv"},
		{Name: "greenbox", Marker: "GREEN BOX Phase Metrics", File: "greenbox.csv"},
		{Name: "total", Marker: "Total Metrics", File: "total.csv"},
	}
}

// phaseTableSchema validates user-supplied phase tables before they replace
// the built-in defaults.
const phaseTableSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["name", "marker", "file"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "marker": {"type": "string", "minLength": 1},
      "file": {"type": "string", "minLength": 1}
    },
    "additionalProperties": false
  }
}`

// LoadPhases reads a phase table from path, validating it against the
// embedded schema and rejecting duplicate names or files.
func LoadPhases(path string) ([]Phase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phase table %q: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(phaseTableSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate phase table %q: %w", path, err)
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, fmt.Errorf("phase table %q is invalid: %s", path, strings.Join(reasons, "; "))
	}

	var phases []Phase
	if err := json.Unmarshal(data, &phases); err != nil {
		return nil, fmt.Errorf("decode phase table %q: %w", path, err)
	}

	names := make(map[string]bool, len(phases))
	files := make(map[string]bool, len(phases))
	for _, p := range phases {
		if names[p.Name] {
			return nil, fmt.Errorf("phase table %q: duplicate phase name %q", path, p.Name)
		}
		if files[p.File] {
			return nil, fmt.Errorf("phase table %q: duplicate csv file %q", path, p.File)
		}
		names[p.Name] = true
		files[p.File] = true
	}

	return phases, nil
}
