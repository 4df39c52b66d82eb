// internal/commands/run.go
package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LiquidAI-project/rust-ml-benchmark/internal/appconfig"
	"github.com/LiquidAI-project/rust-ml-benchmark/internal/harness"
	"github.com/LiquidAI-project/rust-ml-benchmark/internal/logging"
	"github.com/LiquidAI-project/rust-ml-benchmark/internal/metrics"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// summaryFile receives the JSON aggregate export when --json is set.
const summaryFile = "summary.json"

// runCmd executes the full benchmark campaign.
var runCmd = &cobra.Command{
	Use:   "run <iterations> <model_path> <image_path>",
	Short: "Run the benchmark campaign against the inference workload",
	Long: `Run executes the inference workload the requested number of times,
parses the timing blocks it prints, and writes one CSV file per phase plus
a console summary of the running averages.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		iterations, modelPath, imagePath, err := parseRunArgs(args)
		if err != nil {
			return err
		}
		return runCampaign(cmd.Context(), GetConfig(), iterations, modelPath, imagePath)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// parseRunArgs validates the three positional campaign arguments.
func parseRunArgs(args []string) (int, string, string, error) {
	iterations, err := strconv.Atoi(args[0])
	if err != nil || iterations <= 0 {
		return 0, "", "", fmt.Errorf("iterations must be a positive integer, got %q", args[0])
	}

	modelPath := strings.TrimSpace(args[1])
	imagePath := strings.TrimSpace(args[2])
	if modelPath == "" || imagePath == "" {
		return 0, "", "", fmt.Errorf("model path and image path must not be empty")
	}

	return iterations, modelPath, imagePath, nil
}

// runCampaign performs the startup preconditions, runs all iterations and
// emits the summary. Startup failures return an error (exit status 1);
// per-iteration failures are absorbed inside the campaign.
func runCampaign(ctx context.Context, cfg *appconfig.Config, iterations int, modelPath, imagePath string) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not initialized")
	}

	if cfg.Debug {
		pp.Println(cfg)
	}

	workload := cfg.WorkloadPath()
	if err := harness.EnsureWorkload(ctx, workload, cfg.SkipBuild, harness.BuildConfig{
		ManifestPath: cfg.ManifestPath(),
		ModelPath:    modelPath,
		ImagePath:    imagePath,
	}); err != nil {
		return err
	}

	outputDir := cfg.OutputDirectory()
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	specs := make([]metrics.SinkSpec, 0, len(cfg.Phases))
	for _, p := range cfg.Phases {
		specs = append(specs, metrics.SinkSpec{Name: p.Name, File: p.File})
	}

	sinks, err := metrics.OpenSinks(outputDir, specs)
	if err != nil {
		return err
	}
	defer sinks.Close()

	campaign := &harness.Campaign{
		Executor: &harness.CommandExecutor{
			Binary:  workload,
			Timeout: cfg.RunTimeout(),
		},
		Phases:     cfg.Phases,
		Aggregator: metrics.NewAggregator(),
		Sinks:      sinks,
	}

	if err := campaign.Run(ctx, iterations, modelPath, imagePath); err != nil {
		return err
	}

	logging.LogEvent("Benchmarking completed, CSV files written to %s", outputDir)
	metrics.WriteSummary(os.Stdout, campaign.Aggregator)

	if cfg.JSONSummary {
		path := filepath.Join(outputDir, summaryFile)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create summary %s: %w", path, err)
		}
		defer file.Close()

		if err := metrics.WriteJSON(file, campaign.Aggregator); err != nil {
			return fmt.Errorf("write summary %s: %w", path, err)
		}
		logging.LogEvent("Aggregate summary written to %s", path)
	}

	return nil
}
