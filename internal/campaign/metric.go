package campaign

import (
	"math"
	"strconv"
	"strings"
)

// Metric is an optional numeric cell. The zero value is missing.
//
// A missing metric never satisfies a comparison and is skipped by every
// aggregate (mean, percentile, rank).
type Metric struct {
	Value float64
	Valid bool
}

// Some returns a present metric holding v.
func Some(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// ParseMetric reads a cell as a number. Empty, unparsable and non-finite
// cells are missing.
func ParseMetric(s string) Metric {
	s = strings.TrimSpace(s)
	if s == "" {
		return Metric{}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}

	return Some(v)
}

// AtLeast reports whether the metric is present and >= threshold.
// A NaN threshold is never reached.
func (m Metric) AtLeast(threshold float64) bool {
	return m.Valid && m.Value >= threshold
}

// String formats a present metric with the shortest exact representation and
// a missing one as the empty string.
func (m Metric) String() string {
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// compareMissingLast orders present values ascending and puts missing values
// after all present ones. Two missing values compare equal.
func compareMissingLast(a, b Metric) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	case a.Value < b.Value:
		return -1
	case a.Value > b.Value:
		return 1
	}
	return 0
}
