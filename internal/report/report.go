// =============================================================================
// Campaign Ranker - Report Output
// =============================================================================
//
// This module renders an analysis result as plain text:
//   1. Overview: rows analysed, qualifying count, thresholds
//   2. Table: one row per qualifying campaign, best first
//   3. Summary: campaign count and average cost metrics
//
// Output contains nothing run-specific (no timestamps), so the same result
// always renders to the same text.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ginjaninja78/campaign-ranker/internal/campaign"
	"github.com/ginjaninja78/campaign-ranker/internal/config"
)

// NotAvailable is printed for missing cells and for means with no inputs.
const NotAvailable = "N/A"

// Heading introduces the ranking table.
const Heading = "Top performing campaigns (sorted by cost per result and CPC):"

// Columns are the table columns, in display order.
var Columns = []string{
	campaign.ColCampaignName,
	campaign.ColAdSetName,
	campaign.ColAdName,
	campaign.ColCostPerResult,
	campaign.ColCPC,
	campaign.ColResults,
	campaign.ColAmountSpent,
}

// Options controls report formatting.
type Options struct {
	// Currency prefixes monetary summary values.
	Currency string
}

// DefaultOptions returns the built-in formatting options.
func DefaultOptions() Options {
	return Options{Currency: config.DefaultCurrencySymbol}
}

// =============================================================================
// OVERVIEW
// =============================================================================

// WriteOverview prints how many rows were analysed and the thresholds applied.
func WriteOverview(w io.Writer, result *campaign.Result, opts Options) error {
	th := result.Thresholds

	var sb strings.Builder
	fmt.Fprintf(&sb, "Report:             %s\n", result.Source)
	fmt.Fprintf(&sb, "Rows analysed:      %d\n", result.TotalRows)
	fmt.Fprintf(&sb, "Qualifying:         %d\n", len(result.Campaigns))
	fmt.Fprintf(&sb, "Threshold method:   %s\n", MethodDescription(th))
	fmt.Fprintf(&sb, "Minimum spend:      %s\n", money(th.MinSpend, opts.Currency))
	fmt.Fprintf(&sb, "Minimum results:    %s\n", number(th.MinResults))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// MethodDescription describes how thresholds were derived, for example
// "20th percentile" or "50% of mean".
func MethodDescription(th campaign.Thresholds) string {
	if th.Method == campaign.MethodMean {
		return strconv.FormatFloat(th.FallbackFactor*100, 'f', -1, 64) + "% of mean"
	}
	return ordinal(th.Percentile) + " percentile"
}

// =============================================================================
// TABLE AND SUMMARY
// =============================================================================

// Write prints the ranking table followed by the summary block.
func Write(w io.Writer, campaigns []*campaign.Campaign, opts Options) error {
	var sb strings.Builder

	sb.WriteString(Heading)
	sb.WriteString("\n")
	sb.WriteString(Table(campaigns))
	sb.WriteString("\n\n")
	sb.WriteString(Summary(campaigns, opts))

	_, err := io.WriteString(w, sb.String())
	return err
}

// Table renders campaigns as a bordered table with the Columns headers.
// Cells are never truncated.
func Table(campaigns []*campaign.Campaign) string {
	rows := make([][]string, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, []string{
			cell(c.CampaignName),
			cell(c.AdSetName),
			cell(c.AdName),
			money(metricValue(c.CostPerResult), ""),
			money(metricValue(c.CPC), ""),
			number(metricValue(c.Results)),
			money(metricValue(c.AmountSpent), ""),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Columns...).
		Rows(rows...)

	return t.String()
}

// Summary renders the campaign count and the mean cost metrics. Means skip
// missing values.
func Summary(campaigns []*campaign.Campaign, opts Options) string {
	cpr := campaign.Mean(campaign.Values(campaigns, func(c *campaign.Campaign) campaign.Metric { return c.CostPerResult }))
	cpc := campaign.Mean(campaign.Values(campaigns, func(c *campaign.Campaign) campaign.Metric { return c.CPC }))

	var sb strings.Builder
	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "Total campaigns meeting criteria: %d\n", len(campaigns))
	fmt.Fprintf(&sb, "Average cost per result: %s\n", money(cpr, opts.Currency))
	fmt.Fprintf(&sb, "Average CPC: %s\n", money(cpc, opts.Currency))
	return sb.String()
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func metricValue(m campaign.Metric) float64 {
	if !m.Valid {
		return math.NaN()
	}
	return m.Value
}

// money formats v with two decimals and the currency prefix.
func money(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return currency + strconv.FormatFloat(v, 'f', 2, 64)
}

// number formats v without trailing zeros.
func number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cell(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
