package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	tests := []struct {
		name   string
		format string
		params map[string]string
		want   string
	}{
		{"fixed", "sorted_campaigns.csv", nil, "sorted_campaigns.csv"},
		{"date", "ranked_{date}.csv", nil, "ranked_20240115.csv"},
		{"timestamp", "{timestamp}.csv", nil, "20240115_143022.csv"},
		{"time", "run_{time}", nil, "run_143022"},
		{"original", "{original}_sorted.csv", map[string]string{"original": "Historic Report CA"}, "Historic Report CA_sorted.csv"},
		{"override", "{date}.csv", map[string]string{"date": "today"}, "today.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generateOutputFileName(tt.format, tt.params, now))
		})
	}
}

func TestGenerateOutputFileNameDoesNotExpandValues(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	params := map[string]string{"original": "{date}", "dept": "{original}"}

	for i := 0; i < 50; i++ {
		got := generateOutputFileName("{original}_{dept}_{date}.csv", params, now)
		require.Equal(t, "{date}_{original}_20240115.csv", got)
	}
}

func TestGenerateOutputFileNameUUID(t *testing.T) {
	got := GenerateOutputFileName("ranked_{uuid}.csv", nil)

	pattern := regexp.MustCompile(`^ranked_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.csv$`)
	assert.Regexp(t, pattern, got)
	assert.NotEqual(t, got, GenerateOutputFileName("ranked_{uuid}.csv", nil))
}

func TestEnsureExtension(t *testing.T) {
	assert.Equal(t, "out.csv", EnsureExtension("out", ".csv"))
	assert.Equal(t, "out.csv", EnsureExtension("out.csv", ".csv"))
	assert.Equal(t, "OUT.CSV", EnsureExtension("OUT.CSV", ".csv"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Historic Report CA", BaseName(filepath.Join("reports", "Historic Report CA.csv")))
	assert.Equal(t, "report", BaseName("report"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(""))
	require.NoError(t, EnsureDir("."))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(dir, "f.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.Error(t, EnsureDir(filepath.Join(file, "sub")), "a file blocks the path")
}
