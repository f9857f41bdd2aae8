// Command oddbench times the odd-counting variants of package oddsum
// against each other on a synthetic grid.
//
// Usage:
//
//	oddbench [-config bench.json] [-size N] [-threads T] [-iterations K]
//	         [-variants serial,flat] [-json out.json] [-plot out.png] [-v]
//
// Flags override the values of the configuration file, which override the
// defaults.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/exascience/oddsum/internal/bench"
	"github.com/exascience/oddsum/internal/config"
)

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("oddbench: ")

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	report, err := bench.Run(cfg, log.Default())
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}
	if err := report.Print(os.Stdout); err != nil {
		log.Fatalf("Failed to print results: %v", err)
	}
	if cfg.JSONOut != "" {
		if err := report.WriteJSON(cfg.JSONOut); err != nil {
			log.Fatalf("Failed to export JSON: %v", err)
		}
		log.Printf("Wrote report to %s", cfg.JSONOut)
	}
	if cfg.PlotOut != "" {
		if err := report.Plot(cfg.PlotOut); err != nil {
			log.Fatalf("Failed to plot: %v", err)
		}
		log.Printf("Wrote chart to %s", cfg.PlotOut)
	}
}

func parseFlags(args []string) (*config.BenchConfig, error) {
	fs := flag.NewFlagSet("oddbench", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON configuration file")
	size := fs.Int("size", 0, "rows and columns of the benchmark grid")
	threads := fs.Int("threads", 0, "chunks for the chunked variants and pool workers")
	iterations := fs.Int("iterations", 0, "timed runs per variant")
	variants := fs.String("variants", "", "comma-separated variant names (default all)")
	jsonOut := fs.String("json", "", "write a JSON report to this path")
	plotOut := fs.String("plot", "", "write a bar chart to this path")
	verbose := fs.Bool("v", false, "log every iteration")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	// only flags given explicitly override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Size = *size
		case "threads":
			cfg.Threads = *threads
		case "iterations":
			cfg.Iterations = *iterations
		case "variants":
			cfg.Variants = splitList(*variants)
		case "json":
			cfg.JSONOut = *jsonOut
		case "plot":
			cfg.PlotOut = *plotOut
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) (list []string) {
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return
}
