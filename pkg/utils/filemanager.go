// =============================================================================
// Campaign Ranker - File Manager Utility
// =============================================================================
//
// This module provides the file helpers used around an analysis run:
//   - Output file naming from a placeholder format
//   - Directory management
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents. An empty dir means the
// current directory and needs nothing.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders in a file name format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Input file name (without extension)
//   - params: Extra placeholder values, keyed without braces. They override
//             the built-in placeholders.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{original}_ranked_{date}.csv"
//   params: {"original": "Historic Report CA"}
//   output: "Historic Report CA_ranked_20240115.csv"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now())
}

func generateOutputFileName(format string, params map[string]string, now time.Time) string {
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// Replaced in one pass in sorted key order, so a value that itself
	// contains a placeholder token is never expanded again.
	placeholders := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		placeholders = append(placeholders, placeholder)
	}
	sort.Strings(placeholders)

	pairs := make([]string, 0, 2*len(placeholders))
	for _, placeholder := range placeholders {
		pairs = append(pairs, placeholder, replacements[placeholder])
	}

	return strings.NewReplacer(pairs...).Replace(format)
}

// EnsureExtension appends ext to name unless name already ends with it
// (case-insensitive).
func EnsureExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}
	return name + ext
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
