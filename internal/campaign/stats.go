package campaign

import (
	"math"
	"sort"
)

// Values collects the present values of one metric across campaigns.
func Values(campaigns []*Campaign, metric func(*Campaign) Metric) []float64 {
	values := make([]float64, 0, len(campaigns))
	for _, c := range campaigns {
		if m := metric(c); m.Valid {
			values = append(values, m.Value)
		}
	}
	return values
}

// Mean returns the arithmetic mean of values, or NaN when there are none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between the two nearest order statistics. It returns NaN
// when values is empty. values is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	pos := p * float64(len(sorted)-1) / 100
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	w := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*w
}

// averageRanks assigns 1-based ranks to the present metrics, ascending.
// Tied values share the mean of the positions they span. Missing metrics get
// a missing rank.
func averageRanks(metrics []Metric) []Metric {
	ranks := make([]Metric, len(metrics))

	order := make([]int, 0, len(metrics))
	for i, m := range metrics {
		if m.Valid {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return metrics[order[a]].Value < metrics[order[b]].Value
	})

	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && metrics[order[end]].Value == metrics[order[start]].Value {
			end++
		}

		// Positions start+1 .. end share their mean.
		rank := float64(start+1+end) / 2
		for _, idx := range order[start:end] {
			ranks[idx] = Some(rank)
		}
		start = end
	}

	return ranks
}
