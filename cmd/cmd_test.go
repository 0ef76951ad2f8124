package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/campaign-ranker/internal/campaign"
	"github.com/ginjaninja78/campaign-ranker/internal/config"
	"github.com/ginjaninja78/campaign-ranker/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const header = "Campaign name,Ad Set Name,Ad name,Results,Amount spent (GBP),Cost per result,CPC (cost per link click)\n"

// resetCommandState restores flag values and globals before and after a test.
func resetCommandState(t *testing.T) {
	t.Helper()

	reset := func() {
		for _, flags := range []*pflag.FlagSet{rootCmd.PersistentFlags(), rootCmd.Flags()} {
			flags.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		appConfig = nil
		logger = nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}

	reset()
	t.Cleanup(reset)
}

// useDefaults sets the globals PersistentPreRunE would set.
func useDefaults(t *testing.T) {
	resetCommandState(t)
	appConfig = config.Default()
	logger = zap.NewNop()
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// threeRowReport ranks Bravo, Charlie, Alpha under the half-mean thresholds.
func threeRowReport(t *testing.T) string {
	return writeFile(t, t.TempDir(), "report.csv", header+
		"Alpha,UK,Video,1,10,3.00,0.30\n"+
		"Bravo,UK,Video,2,20,1.00,0.10\n"+
		"Charlie,UK,Video,3,30,n/a,0.20\n")
}

func sixRowReport(t *testing.T) string {
	var sb strings.Builder
	sb.WriteString(header)
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&sb, "C%d,Set,Ad,%d,%d,%d,0.5\n", i, i, 10*i, 7-i)
	}
	return writeFile(t, t.TempDir(), "report.csv", sb.String())
}

func TestRunAnalyze(t *testing.T) {
	useDefaults(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runAnalyze(cmd, []string{threeRowReport(t)}))

	out := buf.String()
	assert.Contains(t, out, "Rows analysed:      3\n")
	assert.Contains(t, out, "Threshold method:   50% of mean\n")
	assert.Contains(t, out, report.Heading)
	assert.Contains(t, out, "Total campaigns meeting criteria: 3\n")
	assert.Contains(t, out, "Average cost per result: £2.00\n")
	assert.Contains(t, out, "Average CPC: £0.20\n")

	bravo := strings.Index(out, "Bravo")
	alpha := strings.Index(out, "Alpha")
	charlie := strings.Index(out, "Charlie")
	assert.True(t, bravo < alpha && alpha < charlie, "missing cost per result ranks last:\n%s", out)
}

func TestRunAnalyzeIsIdempotent(t *testing.T) {
	useDefaults(t)
	path := sixRowReport(t)

	run := func() string {
		var buf bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&buf)
		require.NoError(t, runAnalyze(cmd, []string{path}))
		return buf.String()
	}

	assert.Equal(t, run(), run())
}

func TestRunAnalyzeHeaderOnly(t *testing.T) {
	useDefaults(t)
	path := writeFile(t, t.TempDir(), "report.csv", header)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runAnalyze(cmd, []string{path}))
	assert.Contains(t, buf.String(), "Total campaigns meeting criteria: 0\n")
	assert.Contains(t, buf.String(), "Average cost per result: N/A\n")
}

func TestRunAnalyzeExport(t *testing.T) {
	useDefaults(t)
	exportPath = filepath.Join(t.TempDir(), "out", "ranked.csv")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runAnalyze(cmd, []string{threeRowReport(t)}))
	assert.Contains(t, buf.String(), "Exported 3 campaign(s) to "+exportPath)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Bravo,"))
}

func TestRunAnalyzeExportFromConfig(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	appConfig.Export = config.ExportSettings{Enabled: true, Dir: dir, FileNameFormat: "{original}_sorted.csv"}

	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)

	require.NoError(t, runAnalyze(cmd, []string{threeRowReport(t)}))
	assert.FileExists(t, filepath.Join(dir, "report_sorted.csv"))
}

func TestRunAnalyzeErrors(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()

	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)

	err := runAnalyze(cmd, []string{filepath.Join(dir, "missing.csv")})
	assert.ErrorIs(t, err, campaign.ErrFileNotFound)

	partial := writeFile(t, dir, "partial.csv", "Campaign name,Results\nA,1\n")
	err = runAnalyze(cmd, []string{partial})
	assert.ErrorIs(t, err, campaign.ErrMissingColumns)
}

func TestRunAnalyzeUsesConfiguredInput(t *testing.T) {
	useDefaults(t)
	appConfig.InputFile = threeRowReport(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runAnalyze(cmd, nil))
	assert.Contains(t, buf.String(), "Report:             "+appConfig.InputFile)
}

func TestRunValidate(t *testing.T) {
	useDefaults(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runValidate(cmd, []string{threeRowReport(t)}))

	out := buf.String()
	assert.Contains(t, out, "Rows:    3\n")
	assert.Contains(t, out, "Columns: 7\n")
	assert.Contains(t, out, "   1. Campaign name\n")
	assert.Contains(t, out, "1 of 3 cells not numeric")
	assert.Contains(t, out, `line 4: "n/a"`)
	assert.Contains(t, out, "Report is valid.")
}

func TestRunValidateMissingColumns(t *testing.T) {
	useDefaults(t)
	path := writeFile(t, t.TempDir(), "partial.csv", "Campaign name,Results\nA,1\n")

	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)

	err := runValidate(cmd, []string{path})
	assert.ErrorIs(t, err, campaign.ErrMissingColumns)
	assert.Contains(t, err.Error(), campaign.ColCostPerResult)
}

// =============================================================================
// FULL COMMAND EXECUTION
// =============================================================================

// quietConfig writes a config file that sends logs to a temp file.
func quietConfig(t *testing.T, extra string) string {
	dir := t.TempDir()
	body := fmt.Sprintf("log_file: %q\n%s", filepath.Join(dir, "run.log"), extra)
	return writeFile(t, dir, "config.yaml", body)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(io.Discard)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestExecutePercentileFlag(t *testing.T) {
	resetCommandState(t)

	out, err := execute(t, "--config", quietConfig(t, ""), "-p", "0", sixRowReport(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Threshold method:   0th percentile\n")
	assert.Contains(t, out, "Qualifying:         6\n")
	assert.Equal(t, 0, appConfig.Percentile())
}

func TestExecuteConfigPercentile(t *testing.T) {
	resetCommandState(t)

	out, err := execute(t, "--config", quietConfig(t, "min_percentile: 50\n"), sixRowReport(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Threshold method:   50th percentile\n")
}

func TestExecuteInvalidPercentile(t *testing.T) {
	resetCommandState(t)

	_, err := execute(t, "--config", quietConfig(t, ""), "-p", "101", sixRowReport(t))
	assert.ErrorIs(t, err, campaign.ErrInvalidPercentile)
}

func TestExecuteMissingConfig(t *testing.T) {
	resetCommandState(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), sixRowReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestExecuteValidate(t *testing.T) {
	resetCommandState(t)

	out, err := execute(t, "validate", "--config", quietConfig(t, ""), threeRowReport(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Report is valid.")
}

func TestExecuteTooManyArgs(t *testing.T) {
	resetCommandState(t)

	_, err := execute(t, "--config", quietConfig(t, ""), "a.csv", "b.csv")
	assert.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	resetCommandState(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Campaign Ranker\n")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := config.Default()
	cfg.LogLevel = "warn"
	cfg.LogFile = path

	l, err := newLogger(cfg, false)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")

	debug, err := newLogger(cfg, true)
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zap.DebugLevel))
}
