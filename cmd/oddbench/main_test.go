package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/oddsum"
	"github.com/exascience/oddsum/internal/config"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestParseFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"size": 100, "threads": 10, "iterations": 2}`), 0o644))

	cfg, err := parseFlags([]string{"-config", path, "-threads", "5", "-variants", "serial, pooled,,", "-v"})
	require.NoError(t, err)
	require.Equal(t, &config.BenchConfig{
		Size:       100,
		Threads:    5,
		Iterations: 2,
		Variants:   []string{"serial", "pooled"},
		Verbose:    true,
	}, cfg)
}

func TestParseFlagsInvalid(t *testing.T) {
	_, err := parseFlags([]string{"-threads", "3"})
	require.ErrorIs(t, err, oddsum.ErrInvalidPartition)

	_, err = parseFlags([]string{"-bogus"})
	require.Error(t, err)
}
