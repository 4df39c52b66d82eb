// internal/commands/root.go
package benchmark

import (
	"fmt"
	"os"
	"strconv"

	"github.com/LiquidAI-project/rust-ml-benchmark/internal/appconfig"
	"github.com/LiquidAI-project/rust-ml-benchmark/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "benchmark — iteration driver for the rust-ml-benchmark inference workload",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// If the user did not set a flag, copy the config value into the
		// flag so pflags and viper reflect the same final value.
		boolKeys := map[string]string{
			"debug":      "debug",
			"json":       "jsonSummary",
			"skip-build": "skipBuild",
		}
		for flag, key := range boolKeys {
			if !cmd.Flags().Changed(flag) {
				_ = cmd.Flags().Set(flag, strconv.FormatBool(viper.GetBool(key)))
			}
		}
		stringKeys := map[string]string{
			"workload":    "workload",
			"manifest":    "manifest",
			"output-dir":  "outputDir",
			"phase-table": "phaseTable",
			"logFile":     "logFile",
		}
		for flag, key := range stringKeys {
			if !cmd.Flags().Changed(flag) {
				_ = cmd.Flags().Set(flag, viper.GetString(key))
			}
		}
		if !cmd.Flags().Changed("timeout") {
			_ = cmd.Flags().Set("timeout", strconv.Itoa(viper.GetInt("timeout")))
		}

		cfg := appconfig.Config{
			Workload:    viper.GetString("workload"),
			Manifest:    viper.GetString("manifest"),
			OutputDir:   viper.GetString("outputDir"),
			PhaseTable:  viper.GetString("phaseTable"),
			Timeout:     viper.GetInt("timeout"),
			SkipBuild:   viper.GetBool("skipBuild"),
			Debug:       viper.GetBool("debug"),
			JSONSummary: viper.GetBool("jsonSummary"),
			LogFile:     viper.GetString("logFile"),
		}
		cfg.ConfigPath = cfgFile

		cfg.Phases = appconfig.DefaultPhases()
		if cfg.PhaseTable != "" {
			phases, err := appconfig.LoadPhases(cfg.PhaseTable)
			if err != nil {
				return err
			}
			cfg.Phases = phases
		}

		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetDebug(cfg.Debug)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging and config dump")
	rootCmd.PersistentFlags().Bool("json", false, "write the per-phase aggregates as JSON next to the CSV files")
	rootCmd.PersistentFlags().Bool("skip-build", false, "never build the workload, fail if the binary is missing")
	rootCmd.PersistentFlags().String("workload", "", "path to the workload binary")
	rootCmd.PersistentFlags().String("manifest", "", "Cargo manifest used to build a missing workload")
	rootCmd.PersistentFlags().String("output-dir", "", "directory receiving the per-phase CSV files")
	rootCmd.PersistentFlags().String("phase-table", "", "JSON phase table overriding the built-in markers")
	rootCmd.PersistentFlags().Int("timeout", 0, "per-run workload timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("jsonSummary", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("skipBuild", rootCmd.PersistentFlags().Lookup("skip-build"))
	_ = viper.BindPFlag("workload", rootCmd.PersistentFlags().Lookup("workload"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("outputDir", rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("phaseTable", rootCmd.PersistentFlags().Lookup("phase-table"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file, tolerating its absence.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded harness configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}
