// =============================================================================
// Campaign Ranker - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called without a
// subcommand it analyses a campaign report (see analyze.go).
//
// COBRA CLI STRUCTURE:
//   rootCmd (campaign-ranker [report-file])
//   ├── validateCmd (campaign-ranker validate [report-file])
//   └── versionCmd (campaign-ranker version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration for the current run, set before any
// command runs.
var appConfig *config.Config

// logger is the run logger, set before any command runs.
var logger *zap.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "campaign-ranker [report-file]",
	Short: "Campaign Ranker - Rank ad campaigns by cost efficiency",
	Long: `Campaign Ranker reads an ad platform performance report, drops campaigns
whose spend or results fall below a volume threshold, and ranks the rest by
cost per result and then CPC.

Thresholds are the 20th percentile of spend and of results. Reports with fewer
than five rows use half the mean instead.

Example Usage:
  campaign-ranker                          # Analyse "Historic Report CA.csv"
  campaign-ranker report.csv -p 30         # Use the 30th percentile
  campaign-ranker report.xlsx --export out # Also write the ranking to out.csv
  campaign-ranker validate report.csv      # Check a report without ranking`,

	Args: cobra.MaximumNArgs(1),

	// Errors are printed once by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg

		base, err := newLogger(cfg, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = base.With(zap.String("run_id", uuid.NewString()))

		logger.Debug("Loaded configuration",
			zap.String("config", cfgFile),
			zap.String("input_file", cfg.InputFile),
			zap.Int("min_percentile", cfg.Percentile()))
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},

	RunE: runAnalyze,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	// A missing config.yaml in the current directory is not an error.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig reads the configuration named by --config. The default file is
// optional; a file named explicitly must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOptional(cfgFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the production logger. Logs go to stderr unless the
// configuration names a log file, keeping stdout for the report.
func newLogger(cfg *config.Config, debug bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if debug {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.LogFile != "" {
		zc.OutputPaths = []string{cfg.LogFile}
	}

	return zc.Build()
}
