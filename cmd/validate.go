// =============================================================================
// Campaign Ranker - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks that a report can be
// analysed without ranking it.
//
// COMMAND USAGE:
//   campaign-ranker validate [report-file]
//
// OUTPUT:
//   The row count, the columns found, and how many cells of each numeric
//   column are not numbers (they would be treated as missing). A missing
//   required column or an unreadable report is an error.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/campaign-ranker/internal/campaign"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// invalidExamples is the number of non-numeric cells shown per column.
const invalidExamples = 3

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate [report-file]",
	Short: "Check a campaign report without ranking it",
	Long: `Load a campaign report, confirm every required column is present, and
list the numeric cells that cannot be parsed. Unparsable cells are treated as
missing during analysis, so they are reported but do not fail validation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate loads and coerces the report and prints what it found.
func runValidate(cmd *cobra.Command, args []string) error {
	source := reportPath(args)

	ds, err := campaign.Load(source, campaign.OptionsFromConfig(appConfig).Input)
	if err != nil {
		return err
	}
	coercion := campaign.CoerceNumeric(ds)

	logger.Info("Validated campaign report",
		zap.String("source", source),
		zap.Int("rows", len(ds.Campaigns)),
		zap.Int("invalid_cells", len(coercion.Invalid)))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Report:  %s\n", ds.Source)
	fmt.Fprintf(&sb, "Rows:    %d\n", len(ds.Campaigns))
	fmt.Fprintf(&sb, "Columns: %d\n", len(ds.Headers))
	for i, header := range ds.Headers {
		fmt.Fprintf(&sb, "  %2d. %s\n", i+1, header)
	}
	sb.WriteString("\nNumeric columns:\n")
	sb.WriteString(coercion.Format(invalidExamples))
	sb.WriteString("\nReport is valid.\n")

	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}
