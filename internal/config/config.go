// =============================================================================
// Campaign Ranker - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. All settings have built-in defaults, so the configuration
// file is optional.
//
// CONFIGURATION FILE (config.yaml):
//   input_file: "Historic Report CA.csv"
//   min_percentile: 20
//   small_sample_rows: 5
//   fallback_factor: 0.5
//   currency_symbol: "£"
//   log_level: info
//   csv_settings:
//     delimiter: ","
//     encoding: UTF-8
//   xlsx_settings:
//     sheet_name: ""
//   export:
//     enabled: false
//     dir: "."
//     file_name_format: "sorted_campaigns.csv"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultInputFile is the report read when no path is given.
	DefaultInputFile = "Historic Report CA.csv"

	// DefaultMinPercentile is the percentile used for both volume thresholds.
	DefaultMinPercentile = 20

	// DefaultSmallSampleRows is the row count below which the mean-based
	// fallback replaces percentile thresholds.
	DefaultSmallSampleRows = 5

	// DefaultFallbackFactor scales the column mean in the small-sample fallback.
	DefaultFallbackFactor = 0.5

	// DefaultCurrencySymbol prefixes monetary values in the report.
	DefaultCurrencySymbol = "£"

	// DefaultExportFileNameFormat matches the file name the report tooling has
	// always produced.
	DefaultExportFileNameFormat = "sorted_campaigns.csv"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// InputFile is the campaign report to analyse.
	// Default: "Historic Report CA.csv"
	InputFile string `yaml:"input_file"`

	// =========================================================================
	// THRESHOLD SETTINGS
	// =========================================================================

	// MinPercentile is the percentile (0-100) of spend and results a campaign
	// must reach to qualify. A nil value means "not set" so that an explicit 0
	// survives default application.
	// Default: 20
	MinPercentile *int `yaml:"min_percentile"`

	// SmallSampleRows is the minimum row count for percentile thresholds.
	// Smaller reports use FallbackFactor x mean instead. An explicit 0 means
	// percentiles are always used.
	// Default: 5
	SmallSampleRows *int `yaml:"small_sample_rows"`

	// FallbackFactor scales the mean in the small-sample fallback. An explicit
	// 0 lets every campaign with a spend and results value qualify.
	// Default: 0.5
	FallbackFactor *float64 `yaml:"fallback_factor"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// CurrencySymbol prefixes monetary values in the printed summary.
	// Default: "£"
	CurrencySymbol string `yaml:"currency_symbol"`

	// Export controls writing the ranked campaigns to a CSV file.
	Export ExportSettings `yaml:"export"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFile is an optional path for log output. Logs go to stderr when empty.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// INPUT PARSING SETTINGS
	// =========================================================================

	// CSVSettings contains settings for parsing delimited reports.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings contains settings for spreadsheet reports.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" (tab), ";" (semicolon)
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the CSV file.
	// Supported: "UTF-8", "UTF-16", "ISO-8859-1", "Windows-1252"
	// A UTF-8 byte order mark is always stripped.
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// LazyQuotes accepts quotes that do not follow strict CSV rules.
	// Default: false
	LazyQuotes bool `yaml:"lazy_quotes"`

	// Comment, if set, marks lines starting with this character as comments.
	Comment string `yaml:"comment"`
}

// XLSXSettings contains settings for reading spreadsheet reports.
type XLSXSettings struct {
	// SheetName selects the worksheet. The first sheet is used when empty.
	SheetName string `yaml:"sheet_name"`
}

// ExportSettings controls the CSV export of ranked campaigns.
type ExportSettings struct {
	// Enabled turns the export on.
	Enabled bool `yaml:"enabled"`

	// Dir is the directory the export is written to.
	// Default: "."
	Dir string `yaml:"dir"`

	// FileNameFormat defines the export file name.
	// Placeholders:
	//   {original}  - Input file name (without extension)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {uuid}      - A random UUID
	// Default: "sorted_campaigns.csv"
	FileNameFormat string `yaml:"file_name_format"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional behaves like Load but falls back to Default when the file does
// not exist. It is used for the implicit default config path.
func LoadOptional(configPath string) (*Config, error) {
	config, err := Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputFile == "" {
		config.InputFile = DefaultInputFile
	}
	if config.MinPercentile == nil {
		p := DefaultMinPercentile
		config.MinPercentile = &p
	}
	if config.SmallSampleRows == nil {
		n := DefaultSmallSampleRows
		config.SmallSampleRows = &n
	}
	if config.FallbackFactor == nil {
		f := DefaultFallbackFactor
		config.FallbackFactor = &f
	}
	if config.CurrencySymbol == "" {
		config.CurrencySymbol = DefaultCurrencySymbol
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	// CSV settings defaults.
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}

	// Export defaults.
	if config.Export.Dir == "" {
		config.Export.Dir = "."
	}
	if config.Export.FileNameFormat == "" {
		config.Export.FileNameFormat = DefaultExportFileNameFormat
	}
}

// validate checks value ranges that cannot be defaulted.
func validate(config *Config) error {
	if p := *config.MinPercentile; p < 0 || p > 100 {
		return fmt.Errorf("min_percentile must be between 0 and 100, got %d", p)
	}
	if n := *config.SmallSampleRows; n < 0 {
		return fmt.Errorf("small_sample_rows must not be negative, got %d", n)
	}
	if f := *config.FallbackFactor; f < 0 {
		return fmt.Errorf("fallback_factor must not be negative, got %g", f)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if !IsSupportedEncoding(config.CSVSettings.Encoding) {
		return fmt.Errorf("unsupported csv encoding %q", config.CSVSettings.Encoding)
	}

	return nil
}

// Percentile returns the configured minimum percentile.
func (c *Config) Percentile() int {
	if c.MinPercentile == nil {
		return DefaultMinPercentile
	}
	return *c.MinPercentile
}

// SampleRows returns the configured small-sample row count.
func (c *Config) SampleRows() int {
	if c.SmallSampleRows == nil {
		return DefaultSmallSampleRows
	}
	return *c.SmallSampleRows
}

// Factor returns the configured small-sample fallback factor.
func (c *Config) Factor() float64 {
	if c.FallbackFactor == nil {
		return DefaultFallbackFactor
	}
	return *c.FallbackFactor
}

// IsSupportedEncoding reports whether the CSV reader can decode the named
// encoding. Names are matched case-insensitively.
func IsSupportedEncoding(name string) bool {
	switch NormalizeEncoding(name) {
	case "utf-8", "utf-16", "iso-8859-1", "windows-1252":
		return true
	}
	return false
}

// NormalizeEncoding maps common spellings of an encoding name to one form.
func NormalizeEncoding(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "utf8", "utf-8", "utf-8-sig":
		return "utf-8"
	case "utf16", "utf-16":
		return "utf-16"
	case "latin1", "latin-1", "iso8859-1", "iso-8859-1":
		return "iso-8859-1"
	case "cp1252", "windows1252", "windows-1252":
		return "windows-1252"
	}
	return n
}
