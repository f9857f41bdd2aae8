// Package bench times the counting variants against each other and
// reports the results as a table, a JSON document, or a bar chart.
package bench

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/oddsum"
	"github.com/exascience/oddsum/internal/config"
	"github.com/exascience/oddsum/pool"
)

// ErrMismatch is returned when two runs disagree on the number of odd
// elements.
var ErrMismatch = errors.New("bench: variants disagree")

// Result holds the timings of one variant.
type Result struct {
	Variant   string          `json:"variant"`
	Count     int             `json:"count"`
	Durations []time.Duration `json:"durations_ns"`
	MeanNs    float64         `json:"mean_ns"`
	StdDevNs  float64         `json:"stddev_ns"`
	MinNs     float64         `json:"min_ns"`
	MaxNs     float64         `json:"max_ns"`
}

// Report holds the results of a benchmark run.
type Report struct {
	RunID      string    `json:"run_id"`
	Started    time.Time `json:"started"`
	Size       int       `json:"size"`
	Threads    int       `json:"threads"`
	Iterations int       `json:"iterations"`
	GOMAXPROCS int       `json:"gomaxprocs"`
	Results    []Result  `json:"results"`
}

// Select returns the variants named in names, in that order, or all
// variants if names is empty.
func Select(variants []oddsum.Variant, names []string) ([]oddsum.Variant, error) {
	if len(names) == 0 {
		return variants, nil
	}
	selected := make([]oddsum.Variant, 0, len(names))
	for _, name := range names {
		v, err := oddsum.Lookup(variants, name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, v)
	}
	return selected, nil
}

// Run validates cfg, builds the benchmark grid, and times every selected
// variant cfg.Iterations times. Progress is written to logger when
// cfg.Verbose is set; logger may be nil.
func Run(cfg *config.BenchConfig, logger *log.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil || !cfg.Verbose {
		logger = log.New(io.Discard, "", 0)
	}

	p := pool.New(cfg.Threads)
	defer p.Close()
	variants, err := Select(oddsum.Variants(p), cfg.Variants)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:      uuid.NewString(),
		Started:    time.Now(),
		Size:       cfg.Size,
		Threads:    cfg.Threads,
		Iterations: cfg.Iterations,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
	g := oddsum.Giant(cfg.Size)
	logger.Printf("run %s: %d×%d grid, %d threads, %d iterations", report.RunID, cfg.Size, cfg.Size, cfg.Threads, cfg.Iterations)

	for _, v := range variants {
		result, err := measure(v, g, cfg.Threads, cfg.Iterations, logger)
		if err != nil {
			return nil, err
		}
		if len(report.Results) > 0 && report.Results[0].Count != result.Count {
			return nil, fmt.Errorf("%w: %s counted %d, %s counted %d",
				ErrMismatch, report.Results[0].Variant, report.Results[0].Count, result.Variant, result.Count)
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}

func measure(v oddsum.Variant, g oddsum.Grid, threads, iterations int, logger *log.Logger) (Result, error) {
	result := Result{Variant: v.Name, Durations: make([]time.Duration, 0, iterations)}
	for i := range iterations {
		start := time.Now()
		count, err := v.Count(g, threads)
		elapsed := time.Since(start)
		if err != nil {
			return result, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		if i > 0 && count != result.Count {
			return result, fmt.Errorf("%w: %s counted %d, then %d", ErrMismatch, v.Name, result.Count, count)
		}
		result.Count = count
		result.Durations = append(result.Durations, elapsed)
		logger.Printf("%s #%d: %d odd in %v", v.Name, i+1, count, elapsed)
	}
	summarize(&result)
	return result, nil
}

func summarize(r *Result) {
	if len(r.Durations) == 0 {
		return
	}
	ns := make([]float64, len(r.Durations))
	for i, d := range r.Durations {
		ns[i] = float64(d.Nanoseconds())
	}
	r.MeanNs, r.StdDevNs = stat.MeanStdDev(ns, nil)
	if len(ns) == 1 {
		r.StdDevNs = 0
	}
	r.MinNs = floats.Min(ns)
	r.MaxNs = floats.Max(ns)
}
