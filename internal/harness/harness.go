// internal/harness/harness.go
// Package harness drives the benchmark campaign: N sequential workload
// runs, each captured, parsed and folded into the per-phase aggregates.
package harness

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/LiquidAI-project/rust-ml-benchmark/internal/appconfig"
	"github.com/LiquidAI-project/rust-ml-benchmark/internal/logging"
	"github.com/LiquidAI-project/rust-ml-benchmark/internal/metrics"
)

// Executor runs the workload once and returns its captured stdout. The
// narrow interface keeps campaign logic testable without real processes.
type Executor interface {
	Execute(ctx context.Context, modelPath, imagePath string) ([]byte, error)
}

// CommandExecutor invokes the workload binary as a subprocess, fully
// awaited before returning. Runs are bounded by Timeout when set.
type CommandExecutor struct {
	Binary  string
	Timeout time.Duration
}

// Execute spawns `<binary> <model> <image>` and captures stdout.
func (e *CommandExecutor) Execute(ctx context.Context, modelPath, imagePath string) ([]byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.Binary, modelPath, imagePath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("workload failed: %w (stderr: %s)",
			err, bytes.TrimSpace(stderr.Bytes()))
	}

	return stdout.Bytes(), nil
}

// Campaign wires the executor to the parser, aggregator and CSV sinks for
// one full benchmark run. All fields must be set before Run.
type Campaign struct {
	Executor   Executor
	Phases     []appconfig.Phase
	Aggregator *metrics.Aggregator
	Sinks      *metrics.SinkSet
}

// Run executes iterations sequential workload runs. A failed run or an
// unparseable block skips only itself; the campaign always completes and
// reports over whatever records survived.
func (c *Campaign) Run(ctx context.Context, iterations int, modelPath, imagePath string) error {
	markers := make([]metrics.Marker, 0, len(c.Phases))
	for _, p := range c.Phases {
		markers = append(markers, metrics.Marker{Name: p.Name, Match: p.Marker})
	}

	for i := 1; i <= iterations; i++ {
		logging.LogEvent("Running iteration %d of %d", i, iterations)

		output, err := c.Executor.Execute(ctx, modelPath, imagePath)
		if err != nil {
			logging.LogEvent("Iteration %d skipped: %v", i, err)
			continue
		}

		scanErr := metrics.ScanOutput(bytes.NewReader(output), markers,
			func(phase string, rec metrics.Record) {
				c.Aggregator.Update(phase, rec)
				if err := c.Sinks.Append(phase, rec); err != nil {
					logging.LogEvent("Iteration %d: %v", i, err)
				}
			})
		if scanErr != nil {
			logging.LogEvent("Iteration %d: scan output: %v", i, scanErr)
		}
	}

	return nil
}
