// =============================================================================
// Campaign Ranker - Validation Module
// =============================================================================
//
// This module checks that a parsed report has the structure the analysis
// needs. Structural problems (missing columns) are fatal; cell-level problems
// are never fatal and are only counted for diagnostics.
//
// VALIDATION TYPES:
//   1. Required columns: every named column must be present in the header
//   2. Numeric cells: counts of cells that could not be read as numbers
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrMissingColumns matches any *MissingColumnsError through errors.Is.
var ErrMissingColumns = errors.New("missing required columns")

// MissingColumnsError lists the required columns absent from a report.
type MissingColumnsError struct {
	// Columns holds the missing names in the order they were required.
	Columns []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

// Unwrap returns ErrMissingColumns.
func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// RequireColumns checks that every required column appears in headers.
//
// PARAMETERS:
//   - headers: The header row of the report.
//   - required: The column names the analysis depends on.
//
// RETURNS:
//   - nil when all columns are present.
//   - A *MissingColumnsError naming every absent column otherwise.
func RequireColumns(headers []string, required []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// =============================================================================
// NUMERIC CELL DIAGNOSTICS
// =============================================================================

// InvalidCell records a cell that did not hold a usable number.
type InvalidCell struct {
	Line   int
	Column string
	Value  string
}

// NumericReport summarises numeric coercion for a set of columns.
type NumericReport struct {
	// Checked is the number of cells examined per column.
	Checked map[string]int

	// Invalid holds every cell that was coerced to missing.
	Invalid []InvalidCell
}

// NewNumericReport creates an empty report.
func NewNumericReport() *NumericReport {
	return &NumericReport{Checked: make(map[string]int)}
}

// Record notes the outcome of coercing one cell.
func (r *NumericReport) Record(line int, column, value string, ok bool) {
	r.Checked[column]++
	if !ok {
		r.Invalid = append(r.Invalid, InvalidCell{Line: line, Column: column, Value: value})
	}
}

// InvalidCount returns the number of invalid cells in column.
func (r *NumericReport) InvalidCount(column string) int {
	n := 0
	for _, c := range r.Invalid {
		if c.Column == column {
			n++
		}
	}
	return n
}

// Format renders the report as human-readable lines, one per column in
// alphabetical order, followed by up to limit example cells per column.
func (r *NumericReport) Format(limit int) string {
	columns := make([]string, 0, len(r.Checked))
	for col := range r.Checked {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var b strings.Builder
	for _, col := range columns {
		invalid := r.InvalidCount(col)
		fmt.Fprintf(&b, "  %-28s %d of %d cells not numeric\n", col+":", invalid, r.Checked[col])

		shown := 0
		for _, c := range r.Invalid {
			if c.Column != col || shown >= limit {
				continue
			}
			fmt.Fprintf(&b, "    line %d: %q\n", c.Line, c.Value)
			shown++
		}
	}

	return b.String()
}
