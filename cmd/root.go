package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/inflammation-cli/internal/config"
	"github.com/KaramelBytes/inflammation-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags (override config if set)
	cfgFile       string
	debug         bool
	flagLogFormat string
	flagWorkers   int

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger, configured from cfg and flags
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:          "inflammation",
	Short:        "Inflammation: daily statistics over patient measurement files",
	Long:         `Inflammation loads patient × day measurement matrices from CSV/TSV/XLSX files and reports daily mean, max, and min values plus per-patient normalisation.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.inflammation/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text|json (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "max goroutines for large matrices (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		d := cfgpkg.Defaults()
		c = &d
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("log-format") && flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if f.Changed("workers") && flagWorkers >= 0 {
		cfg.Workers = flagWorkers
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger = logging.Init(logging.Config{Level: level, Format: cfg.LogFormat})
	logger.Debug("configuration loaded", "config", cfgFile, "workers", cfg.Workers, "parallel_threshold", cfg.ParallelThreshold)
}

// settings returns the loaded configuration, or defaults if none was loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		d := cfgpkg.Defaults()
		cfg = &d
	}
	return cfg
}
