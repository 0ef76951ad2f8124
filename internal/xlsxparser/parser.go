// =============================================================================
// Campaign Ranker - XLSX Report Parser
// =============================================================================
//
// This module reads campaign reports saved as spreadsheets (.xlsx / .xlsm).
// Ad platforms offer the same export as CSV or XLSX; both produce the same
// types.Table so the rest of the pipeline does not care which was used.
//
// SHEET LAYOUT (Expected):
//   | Campaign name | Ad Set Name | Ad name | Results | Amount spent (GBP) | ...
//   | Spring Sale   | UK 25-34    | Video 1 | 120     | 850.40             | ...
//
//   The first non-empty row is the header row. Cells are read as their stored
//   values, not their displayed text: a number formatted "#,##0.00" still
//   reads as 1050.5 rather than "1,050.50".
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/ginjaninja78/campaign-ranker/internal/csvparser"
	"github.com/ginjaninja78/campaign-ranker/internal/types"
	"github.com/xuri/excelize/v2"
)

// IsSpreadsheet reports whether path names a spreadsheet report by extension.
func IsSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Parse reads a spreadsheet report.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - settings: Sheet selection settings.
//
// RETURNS:
//   - A pointer to the Table containing the parsed data.
//   - An error if the file cannot be opened, the sheet does not exist, or a
//     row has more non-empty cells than the header.
func Parse(path string, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := settings.SheetName
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("invalid sheet name %q: %w", sheetName, err)
	}
	if index < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	table, err := buildTable(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	table.SourceFile = path

	return table, nil
}

// buildTable turns raw sheet rows into a Table. The first non-empty row is the
// header; sheet row numbers are kept for error reporting.
func buildTable(rows [][]string) (*types.Table, error) {
	headerIndex := -1
	for i, row := range rows {
		if !csvparser.IsRowEmpty(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, csvparser.ErrEmptyFile
	}

	headers := csvparser.CleanHeaders(rows[headerIndex])
	table := &types.Table{
		Headers: headers,
		Rows:    []map[string]string{},
	}

	for i := headerIndex + 1; i < len(rows); i++ {
		if csvparser.IsRowEmpty(rows[i]) {
			continue
		}

		row, err := csvparser.RecordToRow(rows[i], headers)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		table.Rows = append(table.Rows, row)
		table.Lines = append(table.Lines, i+1)
	}

	return table, nil
}
