// =============================================================================
// Campaign Ranker - Analyzer
// =============================================================================
//
// The Analyzer runs the full pipeline for one report:
//   1. Load the report and check the required columns
//   2. Coerce the numeric columns (bad cells become missing)
//   3. Compute spend and results thresholds
//   4. Keep the campaigns meeting both thresholds
//   5. Sort by cost per result, then CPC
//   6. Score efficiency within the ranked set
//
// A run is self-contained: nothing is cached between calls, so analysing the
// same unchanged file twice gives the same result.
//
// =============================================================================

package campaign

import (
	"fmt"

	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/ginjaninja78/campaign-ranker/internal/validation"
	"go.uber.org/zap"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of analysing one report.
type Result struct {
	// Source is the report path.
	Source string

	// Headers are the report columns in file order.
	Headers []string

	// TotalRows is the number of campaigns in the report.
	TotalRows int

	// Thresholds are the volume limits used for filtering.
	Thresholds Thresholds

	// Coercion counts the numeric cells that were coerced to missing.
	Coercion *validation.NumericReport

	// Campaigns are the qualifying campaigns, best first. Empty is valid.
	Campaigns []*Campaign
}

// =============================================================================
// ANALYZER
// =============================================================================

// Options configures an Analyzer.
type Options struct {
	Input  Input
	Policy ThresholdPolicy
}

// DefaultOptions returns the built-in parser settings and threshold policy.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps the application configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Input: Input{
			CSV:  cfg.CSVSettings,
			XLSX: cfg.XLSXSettings,
		},
		Policy: ThresholdPolicy{
			MinPercentile:   cfg.Percentile(),
			SmallSampleRows: cfg.SampleRows(),
			FallbackFactor:  cfg.Factor(),
		},
	}
}

// Analyzer ranks campaign reports.
type Analyzer struct {
	options Options
	logger  *zap.Logger
}

// New creates an Analyzer. A nil logger discards all log output.
func New(options Options, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		options: options,
		logger:  logger,
	}
}

// Analyze runs the pipeline for the report at source.
//
// RETURNS:
//   - The Result. Zero qualifying campaigns is not an error.
//   - ErrInvalidPercentile, ErrFileNotFound, ErrParse or ErrMissingColumns.
func (a *Analyzer) Analyze(source string) (*Result, error) {
	policy := a.options.Policy
	if policy.MinPercentile < 0 || policy.MinPercentile > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPercentile, policy.MinPercentile)
	}

	log := a.logger.With(zap.String("source", source))
	log.Info("Analyzing campaign report")

	ds, err := Load(source, a.options.Input)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded report",
		zap.Int("rows", len(ds.Campaigns)),
		zap.Int("columns", len(ds.Headers)))

	coercion := CoerceNumeric(ds)
	for _, column := range NumericColumns {
		if n := coercion.InvalidCount(column); n > 0 {
			log.Debug("Coerced non-numeric cells to missing",
				zap.String("column", column),
				zap.Int("cells", n))
		}
	}

	thresholds := policy.Compute(ds.Campaigns)
	log.Info("Computed thresholds",
		zap.String("method", string(thresholds.Method)),
		zap.Float64("min_spend", thresholds.MinSpend),
		zap.Float64("min_results", thresholds.MinResults))

	qualified := FilterQualified(ds.Campaigns, thresholds)
	if len(qualified) == 0 {
		log.Warn("No campaigns meet the minimum threshold criteria",
			zap.Int("rows", len(ds.Campaigns)))
	}

	ranked := SortByEfficiency(qualified)
	ScoreEfficiency(ranked)

	log.Info("Ranked campaigns",
		zap.Int("rows", len(ds.Campaigns)),
		zap.Int("qualified", len(ranked)))

	return &Result{
		Source:     ds.Source,
		Headers:    ds.Headers,
		TotalRows:  len(ds.Campaigns),
		Thresholds: thresholds,
		Coercion:   coercion,
		Campaigns:  ranked,
	}, nil
}

// AnalyzeCampaigns ranks the report at source with default settings and the
// given minimum percentile.
func AnalyzeCampaigns(source string, minPercentile int) ([]*Campaign, error) {
	options := DefaultOptions()
	options.Policy.MinPercentile = minPercentile

	result, err := New(options, nil).Analyze(source)
	if err != nil {
		return nil, err
	}
	return result.Campaigns, nil
}
