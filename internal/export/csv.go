// =============================================================================
// Campaign Ranker - CSV Export
// =============================================================================
//
// This module writes a ranked campaign set back out as CSV:
//   - Every report column, in the order it appeared in the report
//   - Numeric columns hold the coerced values (missing cells are empty)
//   - A trailing "Efficiency score" column
//
// Rows are written best first, in the order the analyzer ranked them.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/campaign-ranker/internal/campaign"
	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/ginjaninja78/campaign-ranker/pkg/utils"
)

// ColEfficiency is the header of the appended efficiency score column.
const ColEfficiency = "Efficiency score"

// Options controls where an export is written.
type Options struct {
	// Dir is the output directory. Created if it does not exist.
	Dir string

	// FileNameFormat is expanded with utils.GenerateOutputFileName. The
	// {original} placeholder is the report name without its extension.
	FileNameFormat string
}

// Write writes headers plus the efficiency column, then one record per
// campaign.
func Write(w io.Writer, headers []string, campaigns []*campaign.Campaign) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(headers)+1)
	header = append(header, headers...)
	header = append(header, ColEfficiency)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	record := make([]string, len(header))
	for _, c := range campaigns {
		for i, column := range headers {
			record[i] = c.Value(column)
		}
		record[len(headers)] = c.Efficiency.String()

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", c.Line, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ToFile exports the ranked campaigns of result and returns the path written.
// An existing file at that path is truncated.
func ToFile(result *campaign.Result, opts Options) (string, error) {
	format := opts.FileNameFormat
	if format == "" {
		format = config.DefaultExportFileNameFormat
	}

	name := utils.GenerateOutputFileName(format, map[string]string{
		"original": utils.BaseName(result.Source),
	})
	path := filepath.Join(opts.Dir, utils.EnsureExtension(name, ".csv"))

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, result.Headers, result.Campaigns); err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("csv: close file %q: %w", path, err)
	}
	return path, nil
}
