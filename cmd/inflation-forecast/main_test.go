package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a missing config file so only
// defaults and flags apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	cmd.SetArgs(append([]string{"--config", missing, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProjectPretty(t *testing.T) {
	out, err := execute(t, "project",
		"--start-year", "2024", "--end-year", "2026",
		"--inflation-rate", "10", "--monthly-income", "1000")
	require.NoError(t, err)

	assert.Contains(t, out, "--- Inflation-adjusted income, 2024-2026 at 10% per year ---")
	assert.Contains(t, out, "BDT 14,520")
	assert.Contains(t, out, "Total over 3 years")
}

func TestProjectFormatsAndCurrency(t *testing.T) {
	out, err := execute(t, "project",
		"--start-year", "2024", "--end-year", "2025",
		"--inflation-rate", "10", "--monthly-income", "1000",
		"--output-format", "csv", "--currency", "USD")
	require.NoError(t, err)
	assert.Equal(t, "year,current_income,adjusted_income,difference\n2024,12000,12000,0\n2025,12000,13200,1200\n", out)

	out, err = execute(t, "project",
		"--start-year", "2024", "--end-year", "2024",
		"--monthly-income", "1000", "-f", "json-pretty", "--currency", "USD")
	require.NoError(t, err)
	assert.Contains(t, out, `"currency": "USD"`)
	assert.Contains(t, out, `"currentDisplay": "USD 12,000"`)

	out, err = execute(t, "project",
		"--start-year", "2024", "--end-year", "2024", "-f", "web", "--theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, `<body class="light">`)
}

func TestProjectOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projection.csv")
	out, err := execute(t, "project",
		"--start-year", "2024", "--end-year", "2025",
		"--monthly-income", "100", "-f", "csv", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "year,current_income"))
	assert.Contains(t, string(data), "2025,1200,1230,30")
}

type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error {
	return errors.New("disk full")
}

func TestProjectOutputFileCloseError(t *testing.T) {
	orig := createOutputFile
	t.Cleanup(func() { createOutputFile = orig })
	fc := &failingCloser{}
	createOutputFile = func(string) (io.WriteCloser, error) {
		return fc, nil
	}

	_, err := execute(t, "project",
		"--start-year", "2024", "--end-year", "2025",
		"--monthly-income", "100", "-f", "csv", "-o", "projection.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close output file")
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, fc.String(), "2025,1200,1230,30")
}

func TestProjectDefaults(t *testing.T) {
	out, err := execute(t, "project", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[1], time.Now().Format("2006")+",60000,60000,0"))
}

func TestProjectErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"invalid year", []string{"project", "--start-year", "20x4"}, "startYear"},
		{"year out of range", []string{"project", "--end-year", "10000"}, "endYear"},
		{"non-finite income", []string{"project", "--monthly-income", "Inf"}, "monthlyIncome"},
		{"unknown format", []string{"project", "-f", "xml"}, "output format"},
		{"unknown theme", []string{"project", "--theme", "neon"}, "theme"},
		{"extra argument", []string{"project", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestProjectReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte(`currency: EUR
projection:
  startYear: 2030
  endYear: 2031
  inflationRate: 10
  monthlyIncome: 2000
output:
  format: csv
logging:
  level: error
`)
	require.NoError(t, os.WriteFile(path, contents, 0600))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "project"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "year,current_income,adjusted_income,difference\n2030,24000,24000,0\n2031,24000,26400,2400\n", out.String())
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "project"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestServeStopsOnCancel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	cmd.SetArgs([]string{"--config", missing, "--log-level", "error",
		"serve", "--server-config", missing, "--address", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
