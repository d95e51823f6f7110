package experiment

import (
	"github.com/iafilius/PlacementBoxPlots/src/extract"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

func limits(min, max float64) *types.Limits { return &types.Limits{Min: min, Max: max} }

// commonRules builds the rule table shared by all variants; only the limits differ.
// The exact solver's execution time spans orders of magnitude, so it gets a log
// axis, no mean markers and the legend moved above the plot.
func commonRules(success, migrations, sbTime, ilpTime *types.Limits) []Rule {
	return []Rule{
		{Metric: types.MetricSuccess, YLimits: success},
		{Metric: types.MetricMigrations, YLimits: migrations},
		{Solver: types.SolverILP, Metric: types.MetricTimeMs, YLimits: ilpTime, YScale: string(types.ScaleLog), HideMeans: true, Legend: string(types.LegendAbove)},
		{Solver: types.SolverSB, Metric: types.MetricTimeMs, YLimits: sbTime},
	}
}

func totals(values []int, dirSuffix string, transform extract.Affine) *extract.Conditions {
	return &extract.Conditions{
		Values:     values,
		DirSuffix:  dirSuffix,
		FilePrefix: "results_total_",
		Extension:  ".csv",
		Runs:       10,
		Transform:  transform,
	}
}

// DefaultVariants returns the four experiments of the study.
func DefaultVariants() []Variant {
	vs := []Variant{
		{
			Tag:      "exp1",
			XLabel:   "Phase",
			Mode:     "wide",
			Sequence: &extract.Sequence{Prefix: "results_detail_", Extension: ".csv", Min: 0, Max: 9},
			Rules:    commonRules(limits(0, 5), limits(0, 10), limits(0, 20), limits(100, 500000)),
		},
		{
			Tag:    "exp2",
			XLabel: "Nodes per region",
			Mode:   "filter",
			// Plotted as 2 + 5*n; kept as the experiment defines its x axis.
			Conditions: totals([]int{12, 24, 36, 48, 60}, "nodes", extract.Affine{Offset: 2, Scale: 5}),
			Rules:      commonRules(limits(0, 25), limits(0, 160), limits(0, 200), limits(1000, 5000000)),
		},
		{
			Tag:        "exp3",
			XLabel:     "Number of regions",
			Mode:       "filter",
			Conditions: totals([]int{5, 10, 15}, "regions", extract.Affine{}),
			Rules:      commonRules(limits(0, 75), limits(0, 180), limits(0, 300), limits(1000, 5000000)),
		},
		{
			Tag:        "exp4",
			XLabel:     "Components per application",
			Mode:       "filter",
			Conditions: totals([]int{12, 24, 36, 48}, "components", extract.Affine{}),
			Rules:      commonRules(limits(0, 25), limits(0, 100), limits(0, 1000), limits(1000, 5000000)),
		},
	}
	for i := range vs {
		vs[i].applyDefaults()
	}
	return vs
}
