// =============================================================================
// Campaign Ranker - CSV Parser Module
// =============================================================================
//
// This module is responsible for parsing delimited report exports. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Different encodings (UTF-8 with or without BOM, UTF-16, Latin-1, CP1252)
//   - Quoted fields, optionally with lazy quote handling
//   - Comment lines
//
// The first record is the header row. Every following non-blank record becomes
// a row keyed by header name.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/ginjaninja78/campaign-ranker/internal/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Table containing the parsed data.
//   - An error if the file cannot be opened or is not valid delimited text.
//     Open failures wrap the os error, so errors.Is(err, fs.ErrNotExist) works.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// ParseReader parses CSV data from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	decoded, err := decodingReader(bufio.NewReader(r), settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader, settings)

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if IsRowEmpty(header) {
		return nil, ErrEmptyFile
	}
	headers := CleanHeaders(header)

	table := &types.Table{
		Headers: headers,
		Rows:    []map[string]string{},
	}

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)

		if IsRowEmpty(record) {
			continue
		}

		row, err := RecordToRow(record, headers)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		table.Rows = append(table.Rows, row)
		table.Lines = append(table.Lines, line)
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings.Delimiter)

	if settings.Comment != "" {
		reader.Comment = []rune(settings.Comment)[0]
	}

	// Field counts are checked against the header in RecordToRow, so short
	// rows can be padded instead of rejected.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes
	reader.TrimLeadingSpace = true
}

// Delimiter resolves a configured delimiter name to its rune.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(name) > 0 {
			return []rune(name)[0]
		}
		return ','
	}
}

// decodingReader wraps r so that it yields UTF-8 regardless of the source
// encoding. A leading UTF-8 byte order mark is dropped.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	var enc encoding.Encoding

	switch config.NormalizeEncoding(name) {
	case "utf-8":
		enc = unicode.UTF8BOM
	case "utf-16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "iso-8859-1":
		enc = charmap.ISO8859_1
	case "windows-1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// CleanHeaders trims header values, names empty headers by position and
// disambiguates repeated names with a numeric suffix ("Name", "Name.1").
func CleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	seen := make(map[string]int)

	for i, header := range headers {
		header = strings.TrimSpace(header)

		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}

		if n, dup := seen[header]; dup {
			seen[header] = n + 1
			header = fmt.Sprintf("%s.%d", header, n+1)
		} else {
			seen[header] = 0
		}

		cleaned[i] = header
	}

	return cleaned
}

// RecordToRow converts a record to a map keyed by header. Missing trailing
// cells become empty strings. Extra cells are only accepted when blank.
func RecordToRow(record []string, headers []string) (map[string]string, error) {
	if len(record) > len(headers) {
		for _, extra := range record[len(headers):] {
			if strings.TrimSpace(extra) != "" {
				return nil, fmt.Errorf("expected %d fields, saw %d", len(headers), len(record))
			}
		}
	}

	row := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(record) {
			row[header] = strings.TrimSpace(record[i])
		} else {
			row[header] = ""
		}
	}

	return row, nil
}

// IsRowEmpty checks if a row contains only empty values.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
