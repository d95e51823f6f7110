package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iafilius/PlacementBoxPlots/src/analysis"
	"github.com/iafilius/PlacementBoxPlots/src/experiment"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

func main() {
	var config, dataDir, variant, solver, metric string
	flag.StringVar(&config, "config", "", "Optional YAML variants file")
	flag.StringVar(&dataDir, "data-dir", ".", "Directory holding one sub-directory per variant")
	flag.StringVar(&variant, "variant", "exp1", "Variant tag")
	flag.StringVar(&solver, "solver", types.SolverSB, "Solver name")
	flag.StringVar(&metric, "metric", types.MetricSuccess, "Metric name")
	flag.Parse()

	cfg, err := experiment.Load(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	v, err := cfg.Variant(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if _, err := v.ChartSpec(solver, metric); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	ex, err := v.Extractor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	inputs, err := v.Inputs(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	obs, err := ex.Extract(inputs, solver, metric)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Total observations: %d (%d files)\n", len(obs), len(inputs))
	sums := analysis.Summarize(obs, v.Models)
	for _, s := range sums {
		fmt.Printf("x=%g %s: n=%d median=%g mean=%.2f\n", s.X, s.Model, s.Count, s.Median, s.Mean)
	}
}
