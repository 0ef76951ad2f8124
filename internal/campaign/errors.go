package campaign

import (
	"errors"

	"github.com/ginjaninja78/campaign-ranker/internal/validation"
)

// Structural failures. Each is fatal for a run; callers match them with
// errors.Is. The underlying cause is always wrapped as well.
var (
	// ErrFileNotFound is returned when the report path does not exist.
	ErrFileNotFound = errors.New("campaign report not found")

	// ErrParse is returned when the report is not valid tabular data.
	ErrParse = errors.New("campaign report could not be parsed")

	// ErrMissingColumns is returned when a required column is absent.
	// The wrapped *validation.MissingColumnsError lists every missing name.
	ErrMissingColumns = validation.ErrMissingColumns

	// ErrInvalidPercentile is returned for a minimum percentile outside 0-100.
	ErrInvalidPercentile = errors.New("min percentile must be between 0 and 100")
)
