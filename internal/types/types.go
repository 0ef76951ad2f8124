// =============================================================================
// Campaign Ranker - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are produced by:
//   - csvparser
//   - xlsxparser
//
// and consumed by the campaign package.
//
// =============================================================================

package types

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is a parsed tabular report: one header row followed by data rows.
type Table struct {
	// SourceFile is the path the table was read from.
	SourceFile string

	// Headers contains the cleaned column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// Lines holds the 1-based source line (or sheet row) of each entry in Rows.
	Lines []int
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}
