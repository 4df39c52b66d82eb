package harness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureWorkloadExisting(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "rust-ml-benchmark")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write stub binary: %v", err)
	}

	err := EnsureWorkload(context.Background(), bin, true, BuildConfig{})
	if err != nil {
		t.Fatalf("EnsureWorkload with existing binary: %v", err)
	}
}

func TestEnsureWorkloadMissingWithBuildDisabled(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "missing")

	err := EnsureWorkload(context.Background(), bin, true, BuildConfig{})
	if err == nil {
		t.Fatalf("expected error for missing binary with building disabled")
	}
	if !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("unexpected error: %v", err)
	}
}
