package campaign

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeThresholdsPercentile(t *testing.T) {
	th := ComputeThresholds(tenRowSample(), 20)

	assert.Equal(t, MethodPercentile, th.Method)
	assert.Equal(t, 20, th.Percentile)
	assert.Equal(t, 10, th.Rows)
	assert.InDelta(t, 28.0, th.MinSpend, 1e-9)
	assert.InDelta(t, 2.8, th.MinResults, 1e-9)
}

func TestComputeThresholdsSmallSample(t *testing.T) {
	campaigns := []*Campaign{
		newCampaign("A", Some(10), Some(1), Some(3), Some(0.3)),
		newCampaign("B", Some(20), Some(2), Some(1), Some(0.1)),
		newCampaign("C", Some(30), Some(3), Some(2), Some(0.2)),
	}

	th := ComputeThresholds(campaigns, 20)

	assert.Equal(t, MethodMean, th.Method)
	assert.Equal(t, 10.0, th.MinSpend, "half of the mean spend of 20")
	assert.Equal(t, 1.0, th.MinResults, "half of the mean results of 2")
}

func TestComputeThresholdsBoundary(t *testing.T) {
	five := tenRowSample()[:5]
	four := tenRowSample()[:4]

	assert.Equal(t, MethodPercentile, ComputeThresholds(five, 20).Method)
	assert.Equal(t, MethodMean, ComputeThresholds(four, 20).Method)
}

func TestComputeThresholdsIgnoresMissing(t *testing.T) {
	campaigns := []*Campaign{
		newCampaign("A", Some(10), Some(4), Metric{}, Metric{}),
		newCampaign("B", Metric{}, Metric{}, Metric{}, Metric{}),
		newCampaign("C", Some(30), Metric{}, Metric{}, Metric{}),
	}

	th := ComputeThresholds(campaigns, 20)
	assert.Equal(t, 10.0, th.MinSpend)
	assert.Equal(t, 2.0, th.MinResults)
}

func TestComputeThresholdsEmpty(t *testing.T) {
	th := ComputeThresholds(nil, 20)

	assert.True(t, math.IsNaN(th.MinSpend))
	assert.True(t, math.IsNaN(th.MinResults))
	assert.Empty(t, FilterQualified(tenRowSample(), th), "NaN thresholds qualify nothing")
}

func TestThresholdPolicyCustom(t *testing.T) {
	policy := ThresholdPolicy{MinPercentile: 50, SmallSampleRows: 20, FallbackFactor: 1}

	th := policy.Compute(tenRowSample())
	assert.Equal(t, MethodMean, th.Method)
	assert.Equal(t, 55.0, th.MinSpend)
	assert.Equal(t, 5.5, th.MinResults)

	policy.SmallSampleRows = 0
	th = policy.Compute(tenRowSample())
	assert.Equal(t, MethodPercentile, th.Method)
	assert.InDelta(t, 55.0, th.MinSpend, 1e-9)
}
