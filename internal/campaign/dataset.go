// =============================================================================
// Campaign Ranker - Campaign Dataset
// =============================================================================
//
// This file defines the typed view of a campaign report and the first two
// pipeline stages:
//   1. Load: read the report and check the required columns
//   2. CoerceNumeric: turn the numeric columns into Metrics
//
// =============================================================================

package campaign

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/ginjaninja78/campaign-ranker/internal/csvparser"
	"github.com/ginjaninja78/campaign-ranker/internal/types"
	"github.com/ginjaninja78/campaign-ranker/internal/validation"
	"github.com/ginjaninja78/campaign-ranker/internal/xlsxparser"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Report column headers, as written by the ad platform export.
const (
	ColCampaignName  = "Campaign name"
	ColAdSetName     = "Ad Set Name"
	ColAdName        = "Ad name"
	ColCostPerResult = "Cost per result"
	ColCPC           = "CPC (cost per link click)"
	ColAmountSpent   = "Amount spent (GBP)"
	ColResults       = "Results"
)

// NumericColumns are coerced to Metrics before analysis.
var NumericColumns = []string{
	ColCostPerResult,
	ColCPC,
	ColAmountSpent,
	ColResults,
}

// RequiredColumns must all be present in a report.
var RequiredColumns = []string{
	ColCostPerResult,
	ColCPC,
	ColAmountSpent,
	ColResults,
	ColCampaignName,
	ColAdSetName,
	ColAdName,
}

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// Campaign is one row of a report.
type Campaign struct {
	// Line is the 1-based line (or sheet row) the campaign was read from.
	Line int

	CampaignName string
	AdSetName    string
	AdName       string

	// Numeric columns. They stay missing until CoerceNumeric runs.
	CostPerResult Metric
	CPC           Metric
	AmountSpent   Metric
	Results       Metric

	// Efficiency is the mean of the CPR and CPC ranks within a ranked set.
	// Lower is better. Set by ScoreEfficiency.
	Efficiency Metric

	// Fields holds every raw cell of the row keyed by header.
	Fields map[string]string
}

// metric returns the Metric backing a numeric column, or nil for any other
// column.
func (c *Campaign) metric(column string) *Metric {
	switch column {
	case ColCostPerResult:
		return &c.CostPerResult
	case ColCPC:
		return &c.CPC
	case ColAmountSpent:
		return &c.AmountSpent
	case ColResults:
		return &c.Results
	}
	return nil
}

// Value returns the cell for column, formatted from the coerced Metric for
// numeric columns and taken from the raw row otherwise.
func (c *Campaign) Value(column string) string {
	if m := c.metric(column); m != nil {
		return m.String()
	}
	return c.Fields[column]
}

// Dataset is a loaded report.
type Dataset struct {
	// Source is the path the report was read from.
	Source string

	// Headers are the report columns in file order.
	Headers []string

	// Campaigns holds one entry per data row in file order.
	Campaigns []*Campaign
}

// Input selects how reports are parsed.
type Input struct {
	CSV  config.CSVSettings
	XLSX config.XLSXSettings
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a campaign report and checks that every required column exists.
//
// PARAMETERS:
//   - source: Path to a delimited text file or an .xlsx/.xlsm spreadsheet.
//   - input: Parser settings.
//
// RETURNS:
//   - The Dataset, with numeric metrics still missing (see CoerceNumeric).
//   - ErrFileNotFound, ErrParse or ErrMissingColumns (wrapped) on failure.
func Load(source string, input Input) (*Dataset, error) {
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("failed to access report: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrParse, source)
	}

	var table *types.Table
	if xlsxparser.IsSpreadsheet(source) {
		table, err = xlsxparser.Parse(source, input.XLSX)
	} else {
		table, err = csvparser.Parse(source, input.CSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, source, err)
	}

	return FromTable(table)
}

// FromTable builds a Dataset from an already parsed table.
func FromTable(table *types.Table) (*Dataset, error) {
	if err := validation.RequireColumns(table.Headers, RequiredColumns); err != nil {
		if table.SourceFile == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", table.SourceFile, err)
	}

	ds := &Dataset{
		Source:    table.SourceFile,
		Headers:   table.Headers,
		Campaigns: make([]*Campaign, 0, table.RowCount()),
	}

	for i, row := range table.Rows {
		line := 0
		if i < len(table.Lines) {
			line = table.Lines[i]
		}

		ds.Campaigns = append(ds.Campaigns, &Campaign{
			Line:         line,
			CampaignName: row[ColCampaignName],
			AdSetName:    row[ColAdSetName],
			AdName:       row[ColAdName],
			Fields:       row,
		})
	}

	return ds, nil
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// CoerceNumeric parses the named numeric columns of every campaign in place.
// Cells that are not numbers become missing; this never fails. Columns other
// than NumericColumns are ignored. With no columns, all NumericColumns are
// coerced.
//
// RETURNS:
//   - A report of how many cells per column were coerced to missing.
func CoerceNumeric(ds *Dataset, columns ...string) *validation.NumericReport {
	if len(columns) == 0 {
		columns = NumericColumns
	}

	report := validation.NewNumericReport()
	for _, c := range ds.Campaigns {
		for _, column := range columns {
			m := c.metric(column)
			if m == nil {
				continue
			}

			raw := c.Fields[column]
			*m = ParseMetric(raw)
			report.Record(c.Line, column, raw, m.Valid)
		}
	}

	return report
}
