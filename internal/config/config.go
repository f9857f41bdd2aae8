// Package config holds the configuration of a benchmark run.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/exascience/oddsum"
)

// BenchConfig configures a benchmark run of the counting variants.
type BenchConfig struct {
	// Size is the number of rows and columns of the benchmark grid.
	Size int `json:"size"`
	// Threads is the number of chunks for the chunked variants, and the
	// number of workers of the pool.
	Threads int `json:"threads"`
	// Iterations is the number of timed runs per variant.
	Iterations int `json:"iterations"`
	// Variants selects variants by name. Empty means all.
	Variants []string `json:"variants,omitempty"`
	// JSONOut and PlotOut are optional report and chart paths.
	JSONOut string `json:"json_out,omitempty"`
	PlotOut string `json:"plot_out,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`
}

// Default returns the configuration used by the Go benchmarks: a
// 1000×1000 grid, 4 threads, 10 iterations, all variants.
func Default() *BenchConfig {
	return &BenchConfig{
		Size:       1000,
		Threads:    4,
		Iterations: 10,
	}
}

const maxFileSize = 1 << 20

// Load reads a configuration from a JSON file. Fields omitted from the
// file keep their default values. Unknown fields are rejected.
func Load(path string) (*BenchConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable benchmark.
// The grid must split evenly into Threads chunks only if a chunked variant
// is selected.
func (c *BenchConfig) Validate() error {
	var errs []error
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %d", c.Size))
	}
	if c.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Iterations))
	}
	chunked, err := c.selectsChunked()
	if err != nil {
		errs = append(errs, err)
	}
	switch {
	case chunked && c.Size > 0:
		if _, err := oddsum.ChunkSize(c.Size, c.Threads); err != nil {
			errs = append(errs, err)
		}
	case c.Threads <= 0:
		errs = append(errs, fmt.Errorf("threads must be positive, got %d", c.Threads))
	}
	return errors.Join(errs...)
}

// selectsChunked reports whether any selected variant splits the grid into
// chunks. No selection means all variants.
func (c *BenchConfig) selectsChunked() (bool, error) {
	variants := oddsum.Variants(nil)
	if len(c.Variants) == 0 {
		for _, v := range variants {
			if v.Chunked {
				return true, nil
			}
		}
		return false, nil
	}
	var errs []error
	chunked := false
	for _, name := range c.Variants {
		v, err := oddsum.Lookup(variants, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		chunked = chunked || v.Chunked
	}
	return chunked, errors.Join(errs...)
}
