package campaign

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const reportHeader = "Campaign name,Ad Set Name,Ad name,Results,Amount spent (GBP),Cost per result,CPC (cost per link click)"

// reportRow formats one report line. Values are inserted verbatim so tests
// can pass non-numeric cells.
func reportRow(name, results, spend, cpr, cpc string) string {
	return fmt.Sprintf("%s,%s set,%s ad,%s,%s,%s,%s", name, name, name, results, spend, cpr, cpc)
}

// writeReport writes a report with the standard header and returns its path.
func writeReport(t *testing.T, rows ...string) string {
	t.Helper()

	body := reportHeader + "\n"
	if len(rows) > 0 {
		body += strings.Join(rows, "\n") + "\n"
	}

	path := filepath.Join(t.TempDir(), "Historic Report CA.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// newCampaign builds an already coerced campaign.
func newCampaign(name string, spend, results, cpr, cpc Metric) *Campaign {
	return &Campaign{
		CampaignName:  name,
		AmountSpent:   spend,
		Results:       results,
		CostPerResult: cpr,
		CPC:           cpc,
	}
}

func names(campaigns []*Campaign) []string {
	out := make([]string, len(campaigns))
	for i, c := range campaigns {
		out[i] = c.CampaignName
	}
	return out
}

// tenRowSample has spends 10..100 and results 1..10.
func tenRowSample() []*Campaign {
	campaigns := make([]*Campaign, 10)
	for i := range campaigns {
		n := float64(i + 1)
		campaigns[i] = newCampaign(fmt.Sprintf("C%d", i+1), Some(10*n), Some(n), Some(11-n), Some(0.1*n))
	}
	return campaigns
}
