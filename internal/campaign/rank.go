package campaign

import (
	"slices"
)

// FilterQualified returns the campaigns meeting both thresholds, in their
// original order. Campaigns with a missing spend or results value never
// qualify.
func FilterQualified(campaigns []*Campaign, t Thresholds) []*Campaign {
	qualified := make([]*Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if t.Qualifies(c) {
			qualified = append(qualified, c)
		}
	}
	return qualified
}

// SortByEfficiency returns a new slice ordered by ascending cost per result,
// then ascending CPC. Missing values sort after present ones for each key.
// The sort is stable: campaigns with equal keys keep their input order.
func SortByEfficiency(campaigns []*Campaign) []*Campaign {
	sorted := slices.Clone(campaigns)
	slices.SortStableFunc(sorted, compareEfficiency)
	return sorted
}

func compareEfficiency(a, b *Campaign) int {
	if c := compareMissingLast(a.CostPerResult, b.CostPerResult); c != 0 {
		return c
	}
	return compareMissingLast(a.CPC, b.CPC)
}

// ScoreEfficiency sets each campaign's Efficiency to the mean of its cost per
// result rank and CPC rank within campaigns. A campaign missing either value
// gets a missing score.
func ScoreEfficiency(campaigns []*Campaign) {
	cpr := make([]Metric, len(campaigns))
	cpc := make([]Metric, len(campaigns))
	for i, c := range campaigns {
		cpr[i] = c.CostPerResult
		cpc[i] = c.CPC
	}

	cprRanks := averageRanks(cpr)
	cpcRanks := averageRanks(cpc)

	for i, c := range campaigns {
		if !cprRanks[i].Valid || !cpcRanks[i].Valid {
			c.Efficiency = Metric{}
			continue
		}
		c.Efficiency = Some((cprRanks[i].Value + cpcRanks[i].Value) / 2)
	}
}
