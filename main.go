// =============================================================================
// Campaign Ranker - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Campaign Ranker CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   campaign-ranker [report-file]  - Rank the campaigns in a performance report
//   campaign-ranker validate       - Check a report without ranking it
//   campaign-ranker version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/campaign-ranker/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
