package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "benchmark.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", string(data))
	}
}

func TestLogDebugGated(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "benchmark.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		SetDebug(false)
		_ = Close()
	})

	SetDebug(false)
	LogDebug("hidden %d", 1)
	SetDebug(true)
	LogDebug("visible %d", 2)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "hidden 1") {
		t.Fatalf("debug line emitted while disabled: %s", content)
	}
	if !strings.Contains(content, "visible 2") {
		t.Fatalf("debug line missing while enabled: %s", content)
	}
}

func TestInitWithoutFile(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init without file: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close without file: %v", err)
	}
}
