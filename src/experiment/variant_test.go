package experiment

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/PlacementBoxPlots/src/extract"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

func TestChartSpec_TotalOverDefaults(t *testing.T) {
	for _, v := range DefaultVariants() {
		require.NoError(t, v.Validate(), v.Tag)
		for _, s := range types.Solvers {
			for _, m := range types.Metrics {
				spec, err := v.ChartSpec(s, m)
				require.NoError(t, err, "%s %s/%s", v.Tag, s, m)
				assert.NotEmpty(t, spec.YLabel, "%s %s/%s", v.Tag, s, m)
				assert.Equal(t, v.XLabel, spec.XLabel)
			}
		}
	}
}

func TestChartSpec_Exp1Table(t *testing.T) {
	cfg := DefaultConfig()
	v, err := cfg.Variant("exp1")
	require.NoError(t, err)

	ilp, err := v.ChartSpec(types.SolverILP, types.MetricTimeMs)
	require.NoError(t, err)
	assert.Equal(t, types.ChartSpec{
		XLabel:  "Phase",
		YLabel:  "Execution time [ms]",
		YLimits: &types.Limits{Min: 100, Max: 500000},
		YScale:  types.ScaleLog,
		Legend:  types.LegendAbove,
	}, ilp)

	sb, err := v.ChartSpec(types.SolverSB, types.MetricTimeMs)
	require.NoError(t, err)
	assert.Equal(t, &types.Limits{Min: 0, Max: 20}, sb.YLimits)
	assert.Equal(t, types.ScaleLinear, sb.YScale)
	assert.True(t, sb.ShowMeans)
	assert.Equal(t, types.LegendDefault, sb.Legend)

	succ, err := v.ChartSpec(types.SolverILP, types.MetricSuccess)
	require.NoError(t, err)
	assert.Equal(t, "Applications successfully placed", succ.YLabel)
	assert.Equal(t, &types.Limits{Min: 0, Max: 5}, succ.YLimits)
	assert.True(t, succ.ShowMeans)
}

func TestChartSpec_PerVariantLimits(t *testing.T) {
	cfg := DefaultConfig()
	want := map[string]types.Limits{"exp2": {Min: 0, Max: 160}, "exp3": {Min: 0, Max: 180}, "exp4": {Min: 0, Max: 100}}
	for tag, l := range want {
		v, err := cfg.Variant(tag)
		require.NoError(t, err)
		spec, err := v.ChartSpec(types.SolverSB, types.MetricMigrations)
		require.NoError(t, err)
		assert.Equal(t, l, *spec.YLimits, tag)
	}
}

func TestChartSpec_Errors(t *testing.T) {
	v := DefaultVariants()[0]
	_, err := v.ChartSpec(types.SolverSB, "Energy")
	assert.ErrorIs(t, err, ErrUnknownPair)
	_, err = v.ChartSpec("SolverGreedy", types.MetricSuccess)
	assert.ErrorIs(t, err, ErrUnknownPair)

	delete(v.YLabels, types.MetricMigrations)
	_, err = v.ChartSpec(types.SolverSB, types.MetricMigrations)
	assert.ErrorIs(t, err, ErrNoLabel)
	assert.Error(t, v.Validate())
}

func TestChartSpec_RulesDoNotAlias(t *testing.T) {
	v := DefaultVariants()[0]
	spec, err := v.ChartSpec(types.SolverSB, types.MetricSuccess)
	require.NoError(t, err)
	spec.YLimits.Max = 99
	again, err := v.ChartSpec(types.SolverSB, types.MetricSuccess)
	require.NoError(t, err)
	assert.Equal(t, 5.0, again.YLimits.Max)
}

func TestInputs_Exp2AffineNodes(t *testing.T) {
	v, err := DefaultConfig().Variant("exp2")
	require.NoError(t, err)
	in, err := v.Inputs("data")
	require.NoError(t, err)
	require.Len(t, in, 50)
	assert.Equal(t, extract.Input{Path: filepath.Join("data", "exp2", "12nodes", "results_total_0.csv"), Run: 0, X: 62}, in[0])
	assert.Equal(t, 302.0, in[49].X)
	assert.Equal(t, 9, in[49].Run)
}

func TestValidate_Rejects(t *testing.T) {
	base := func() Variant {
		v := Variant{Tag: "x", Mode: "wide", Sequence: &extract.Sequence{Prefix: "r_", Max: 1}}
		v.applyDefaults()
		return v
	}
	v := base()
	require.NoError(t, v.Validate())

	v = base()
	v.Mode = "long"
	assert.Error(t, v.Validate())

	v = base()
	v.Sequence = nil
	assert.Error(t, v.Validate())

	v = base()
	v.Mode = "filter"
	assert.Error(t, v.Validate(), "filter mode needs per-condition directories")

	v = base()
	v.Rules = []Rule{{YScale: "sqrt"}}
	assert.Error(t, v.Validate())

	v = base()
	v.Rules = []Rule{{Legend: "middle"}}
	assert.Error(t, v.Validate())

	v = base()
	v.Rules = []Rule{{YLimits: &types.Limits{Min: 3, Max: 1}}}
	assert.Error(t, v.Validate())
}

func TestOutputNames(t *testing.T) {
	v := DefaultVariants()[2]
	assert.Equal(t, "exp3_SolverILP_TimeMs.pdf", v.OutputName(types.SolverILP, types.MetricTimeMs))
	assert.Equal(t, "exp3_SolverSB_Success_trend.png", v.TrendName(types.SolverSB, types.MetricSuccess))
	v.Format = ".svg"
	assert.Equal(t, "exp3_SolverSB_Success.svg", v.OutputName(types.SolverSB, types.MetricSuccess))
}
