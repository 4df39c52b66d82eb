// internal/harness/build.go
package harness

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/LiquidAI-project/rust-ml-benchmark/internal/logging"
)

// BuildConfig describes how to compile the workload when its binary is
// missing at campaign start.
type BuildConfig struct {
	ManifestPath string
	ModelPath    string
	ImagePath    string
}

// Build compiles the workload crate in release mode. The model and image
// paths are exported into the build environment because the crate bakes
// them into its compile-time checks. Build output goes to stderr so it
// never mixes with captured workload stdout.
func Build(ctx context.Context, cfg BuildConfig) error {
	logging.LogEvent("Building workload (manifest %s)", cfg.ManifestPath)

	cmd := exec.CommandContext(ctx, "cargo", "build", "--release",
		"--manifest-path="+cfg.ManifestPath)
	cmd.Env = append(os.Environ(),
		"MODEL_PATH="+cfg.ModelPath,
		"IMAGE_PATH="+cfg.ImagePath,
	)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build workload: %w", err)
	}

	return nil
}

// EnsureWorkload verifies the workload binary exists, triggering one build
// when it is absent and building is allowed. Both a failed build and a
// still-missing binary are fatal to the campaign.
func EnsureWorkload(ctx context.Context, binaryPath string, skipBuild bool, cfg BuildConfig) error {
	if _, err := os.Stat(binaryPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat workload %s: %w", binaryPath, err)
	}

	if skipBuild {
		return fmt.Errorf("workload binary %s not found and building is disabled", binaryPath)
	}

	if err := Build(ctx, cfg); err != nil {
		return err
	}

	if _, err := os.Stat(binaryPath); err != nil {
		return fmt.Errorf("workload binary %s still missing after build: %w", binaryPath, err)
	}

	return nil
}
