package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.WorkloadPath(); got != defaultWorkloadBinary {
		t.Fatalf("WorkloadPath default = %q", got)
	}
	if got := cfg.ManifestPath(); got != defaultManifestPath {
		t.Fatalf("ManifestPath default = %q", got)
	}
	if got := cfg.OutputDirectory(); got != defaultOutputDir {
		t.Fatalf("OutputDirectory default = %q", got)
	}
	if got := cfg.RunTimeout(); got != defaultRunTimeout {
		t.Fatalf("RunTimeout default = %v", got)
	}
	if got := cfg.LogFilePath(); got != "" {
		t.Fatalf("LogFilePath default = %q", got)
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg := Config{
		Workload:  "/opt/workload",
		OutputDir: "out",
		Timeout:   30,
	}

	if cfg.WorkloadPath() != "/opt/workload" {
		t.Fatalf("WorkloadPath override ignored")
	}
	if cfg.OutputDirectory() != "out" {
		t.Fatalf("OutputDirectory override ignored")
	}
	if cfg.RunTimeout() != 30*time.Second {
		t.Fatalf("RunTimeout override = %v", cfg.RunTimeout())
	}
}

func TestDefaultPhases(t *testing.T) {
	phases := DefaultPhases()
	if len(phases) != 9 {
		t.Fatalf("expected 9 default phases, got %d", len(phases))
	}

	names := make(map[string]bool)
	files := make(map[string]bool)
	for _, p := range phases {
		if p.Name == "" || p.Marker == "" || p.File == "" {
			t.Fatalf("incomplete phase: %+v", p)
		}
		if names[p.Name] || files[p.File] {
			t.Fatalf("duplicate phase entry: %+v", p)
		}
		names[p.Name] = true
		files[p.File] = true
	}

	if !names["inference"] || !names["total"] {
		t.Fatalf("expected inference and total phases: %v", names)
	}
}

func writePhaseTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phases.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write phase table: %v", err)
	}
	return path
}

func TestLoadPhasesValid(t *testing.T) {
	path := writePhaseTable(t, `[
  {"name": "inference", "marker": "Inference Metrics", "file": "inference.csv"},
  {"name": "total", "marker": "Total Metrics", "file": "total.csv"}
]`)

	phases, err := LoadPhases(path)
	if err != nil {
		t.Fatalf("LoadPhases: %v", err)
	}
	if len(phases) != 2 || phases[0].Name != "inference" {
		t.Fatalf("phases = %+v", phases)
	}
}

func TestLoadPhasesSchemaViolation(t *testing.T) {
	cases := map[string]string{
		"missing field": `[{"name": "x", "marker": "X Metrics"}]`,
		"empty string":  `[{"name": "", "marker": "X Metrics", "file": "x.csv"}]`,
		"empty array":   `[]`,
		"unknown field": `[{"name": "x", "marker": "X", "file": "x.csv", "color": "red"}]`,
		"not an array":  `{"name": "x"}`,
	}

	for label, content := range cases {
		path := writePhaseTable(t, content)
		if _, err := LoadPhases(path); err == nil {
			t.Fatalf("%s: expected schema error", label)
		}
	}
}

func TestLoadPhasesDuplicates(t *testing.T) {
	path := writePhaseTable(t, `[
  {"name": "a", "marker": "A Metrics", "file": "a.csv"},
  {"name": "a", "marker": "B Metrics", "file": "b.csv"}
]`)

	_, err := LoadPhases(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadPhasesMissingFile(t *testing.T) {
	if _, err := LoadPhases(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing phase table")
	}
}
