// =============================================================================
// Campaign Ranker - Analyze Command
// =============================================================================
//
// This file implements the root command's action: rank one campaign report
// and print the result.
//
// COMMAND USAGE:
//   campaign-ranker [report-file] [flags]
//
// FLAGS:
//   -p, --min-percentile : Percentile (0-100) used for both volume thresholds
//   --export             : Also write the ranked campaigns to this CSV path
//
// PROCESSING PIPELINE:
//   1. Load and validate the report
//   2. Compute thresholds and keep the qualifying campaigns
//   3. Rank by cost per result, then CPC
//   4. Print the overview, ranking table and summary to stdout
//   5. Optionally export the ranking to CSV
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ginjaninja78/campaign-ranker/internal/campaign"
	"github.com/ginjaninja78/campaign-ranker/internal/export"
	"github.com/ginjaninja78/campaign-ranker/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// minPercentile overrides the configured threshold percentile when set.
var minPercentile int

// exportPath is the CSV file to write the ranking to.
var exportPath string

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the analysis flags on the root command.
func init() {
	// --min-percentile flag: Threshold percentile for spend and results.
	rootCmd.Flags().IntVarP(
		&minPercentile,
		"min-percentile",
		"p",
		20,
		"Percentile (0-100) of spend and results a campaign must reach",
	)

	// --export flag: Write the ranked campaigns to a CSV file.
	rootCmd.Flags().StringVar(
		&exportPath,
		"export",
		"",
		"Write the ranked campaigns to this CSV file",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runAnalyze ranks the report and writes the text report to the command's
// output.
func runAnalyze(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("min-percentile") {
		p := minPercentile
		appConfig.MinPercentile = &p
	}

	source := reportPath(args)
	analyzer := campaign.New(campaign.OptionsFromConfig(appConfig), logger)

	result, err := analyzer.Analyze(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := report.Options{Currency: appConfig.CurrencySymbol}

	if err := report.WriteOverview(out, result, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := report.Write(out, result.Campaigns, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	exportOpts, ok := exportOptions()
	if !ok {
		return nil
	}

	path, err := export.ToFile(result, exportOpts)
	if err != nil {
		return fmt.Errorf("failed to export ranking: %w", err)
	}
	logger.Info("Exported ranked campaigns",
		zap.String("path", path),
		zap.Int("campaigns", len(result.Campaigns)))
	fmt.Fprintf(out, "\nExported %d campaign(s) to %s\n", len(result.Campaigns), path)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// reportPath returns the report named on the command line, or the configured
// input file.
func reportPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return appConfig.InputFile
}

// exportOptions resolves where the ranking is exported. The --export flag
// wins over the configuration file.
func exportOptions() (export.Options, bool) {
	if exportPath != "" {
		return export.Options{
			Dir:            filepath.Dir(exportPath),
			FileNameFormat: filepath.Base(exportPath),
		}, true
	}

	if appConfig.Export.Enabled {
		return export.Options{
			Dir:            appConfig.Export.Dir,
			FileNameFormat: appConfig.Export.FileNameFormat,
		}, true
	}

	return export.Options{}, false
}
