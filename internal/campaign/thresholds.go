package campaign

import (
	"github.com/ginjaninja78/campaign-ranker/internal/config"
)

// Method names how a set of thresholds was derived.
type Method string

const (
	// MethodPercentile takes the configured percentile of each column.
	MethodPercentile Method = "percentile"

	// MethodMean scales each column mean; used for small reports where a
	// percentile would rest on too few points.
	MethodMean Method = "mean"
)

// Thresholds are the minimum volumes a campaign must reach to be ranked.
// A NaN threshold (no usable values) is never reached.
type Thresholds struct {
	MinSpend   float64
	MinResults float64

	Method         Method
	Percentile     int
	FallbackFactor float64

	// Rows is the number of campaigns the thresholds were computed from.
	Rows int
}

// Qualifies reports whether c meets both thresholds.
func (t Thresholds) Qualifies(c *Campaign) bool {
	return c.AmountSpent.AtLeast(t.MinSpend) && c.Results.AtLeast(t.MinResults)
}

// ThresholdPolicy decides how thresholds are computed.
type ThresholdPolicy struct {
	// MinPercentile is the percentile (0-100) used for larger reports.
	MinPercentile int

	// SmallSampleRows is the smallest row count that uses percentiles.
	SmallSampleRows int

	// FallbackFactor multiplies the column mean for smaller reports.
	FallbackFactor float64
}

// DefaultThresholdPolicy returns the 20th percentile policy with the
// half-mean fallback below five rows.
func DefaultThresholdPolicy() ThresholdPolicy {
	return ThresholdPolicy{
		MinPercentile:   config.DefaultMinPercentile,
		SmallSampleRows: config.DefaultSmallSampleRows,
		FallbackFactor:  config.DefaultFallbackFactor,
	}
}

// Compute derives spend and results thresholds from campaigns. Missing values
// are ignored by both the percentile and the mean.
func (p ThresholdPolicy) Compute(campaigns []*Campaign) Thresholds {
	spend := Values(campaigns, func(c *Campaign) Metric { return c.AmountSpent })
	results := Values(campaigns, func(c *Campaign) Metric { return c.Results })

	t := Thresholds{
		Percentile:     p.MinPercentile,
		FallbackFactor: p.FallbackFactor,
		Rows:           len(campaigns),
	}

	if len(campaigns) >= p.SmallSampleRows {
		t.Method = MethodPercentile
		t.MinSpend = Percentile(spend, float64(p.MinPercentile))
		t.MinResults = Percentile(results, float64(p.MinPercentile))
		return t
	}

	t.Method = MethodMean
	t.MinSpend = p.FallbackFactor * Mean(spend)
	t.MinResults = p.FallbackFactor * Mean(results)
	return t
}

// ComputeThresholds applies the default policy with the given percentile.
func ComputeThresholds(campaigns []*Campaign, minPercentile int) Thresholds {
	policy := DefaultThresholdPolicy()
	policy.MinPercentile = minPercentile
	return policy.Compute(campaigns)
}
