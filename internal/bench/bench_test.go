package bench

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/exascience/oddsum"
	"github.com/exascience/oddsum/internal/config"
)

func smallConfig() *config.BenchConfig {
	return &config.BenchConfig{Size: 24, Threads: 4, Iterations: 3}
}

func TestRunAllVariants(t *testing.T) {
	report, err := Run(smallConfig(), nil)
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	require.NoError(t, err)
	require.Len(t, report.Results, len(oddsum.Variants(nil)))
	for _, res := range report.Results {
		require.Equal(t, 12*24, res.Count, res.Variant)
		require.Len(t, res.Durations, 3)
		require.LessOrEqual(t, res.MinNs, res.MeanNs)
		require.LessOrEqual(t, res.MeanNs, res.MaxNs)
	}
}

func TestRunSelected(t *testing.T) {
	cfg := smallConfig()
	cfg.Variants = []string{"flat", "serial"}
	report, err := Run(cfg, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	require.Equal(t, "flat", report.Results[0].Variant)
	require.Equal(t, "serial", report.Results[1].Variant)

	cfg.Variants = []string{"nope"}
	_, err = Run(cfg, nil)
	require.ErrorContains(t, err, `unknown variant "nope"`)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Threads = 5
	_, err := Run(cfg, nil)
	require.ErrorIs(t, err, oddsum.ErrInvalidPartition)
}

func TestSummarize(t *testing.T) {
	r := Result{Durations: []time.Duration{2, 4, 4, 4, 5, 5, 7, 9}}
	summarize(&r)
	require.InDelta(t, 5, r.MeanNs, 1e-9)
	require.InDelta(t, 2.138089935, r.StdDevNs, 1e-6)
	require.Equal(t, 2.0, r.MinNs)
	require.Equal(t, 9.0, r.MaxNs)

	single := Result{Durations: []time.Duration{10}}
	summarize(&single)
	require.Zero(t, single.StdDevNs)
}

type failingWriter struct {
	budget int
}

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		n := w.budget
		w.budget = 0
		return n, errDiskFull
	}
	w.budget -= len(p)
	return len(p), nil
}

func TestPrintWriteError(t *testing.T) {
	report := &Report{
		RunID:   "test-run",
		Results: []Result{{Variant: "serial", Count: 8}},
	}
	require.ErrorIs(t, report.Print(&failingWriter{}), errDiskFull)

	var buf bytes.Buffer
	require.NoError(t, report.Print(&buf))
	require.ErrorIs(t, report.Print(&failingWriter{budget: buf.Len() - 1}), errDiskFull)
}

func TestReportOutputs(t *testing.T) {
	report := &Report{
		RunID:      "test-run",
		Size:       4,
		Threads:    2,
		Iterations: 1,
		GOMAXPROCS: 1,
		Results: []Result{
			{Variant: "serial", Count: 8, Durations: []time.Duration{time.Millisecond}, MeanNs: 1e6, MinNs: 1e6, MaxNs: 1e6},
			{Variant: "flat", Count: 8, Durations: []time.Duration{2 * time.Millisecond}, MeanNs: 2e6, MinNs: 2e6, MaxNs: 2e6},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Print(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[2], "serial")
	require.Contains(t, lines[3], "2ms")

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "report.json")
	require.NoError(t, report.WriteJSON(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(report, &decoded); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	plotPath := filepath.Join(dir, "chart.png")
	require.NoError(t, report.Plot(plotPath))
	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}
