package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/iafilius/PlacementBoxPlots/src/types"
)

// GroupSummary captures the distribution of one box: all observations sharing
// an independent value and a model.
type GroupSummary struct {
	X      float64 `json:"x"`
	Model  string  `json:"model"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// XValues returns the distinct independent values in ascending order.
func XValues(obs types.ObservationSet) []float64 {
	seen := map[float64]bool{}
	var xs []float64
	for _, o := range obs {
		if !seen[o.X] {
			seen[o.X] = true
			xs = append(xs, o.X)
		}
	}
	sort.Float64s(xs)
	return xs
}

// Summarize groups obs by (X, model) and returns one summary per non-empty group,
// ordered by X then by the position of the model in models. Observations of
// models outside the list are ignored.
func Summarize(obs types.ObservationSet, models []string) []GroupSummary {
	type key struct {
		x     float64
		model string
	}
	groups := map[key][]float64{}
	for _, o := range obs {
		k := key{o.X, o.Model}
		groups[k] = append(groups[k], o.Value)
	}
	var out []GroupSummary
	for _, x := range XValues(obs) {
		for _, m := range models {
			vals := groups[key{x, m}]
			if len(vals) == 0 {
				continue
			}
			out = append(out, summarize(x, m, vals))
		}
	}
	return out
}

func summarize(x float64, model string, vals []float64) GroupSummary {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return GroupSummary{
		X:      x,
		Model:  model,
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}

// MeanSeries is the sequence of group means of one model, in ascending X.
type MeanSeries struct {
	X    []float64
	Mean []float64
}

// MeansByModel splits summaries into one mean series per model. Groups without
// data have no point.
func MeansByModel(sums []GroupSummary) map[string]MeanSeries {
	out := map[string]MeanSeries{}
	for _, s := range sums {
		e := out[s.Model]
		e.X = append(e.X, s.X)
		e.Mean = append(e.Mean, s.Mean)
		out[s.Model] = e
	}
	return out
}
