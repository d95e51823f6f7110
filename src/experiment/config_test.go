package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/PlacementBoxPlots/src/extract"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"exp1", "exp2", "exp3", "exp4"}, cfg.Tags())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Len(t, cfg.Variants, 4)
}

func TestLoad_OverrideAndAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variants.yaml")
	doc := `
variants:
  - tag: exp3
    x_label: Regions
    mode: filter
    format: png
    conditions:
      values: [5, 10]
      dir_suffix: regions
      file_prefix: results_total_
      extension: .csv
      runs: 2
    rules:
      - metric: Success
        y_limits: {min: 0, max: 40}
  - tag: exp5
    dir: sweep
    x_label: Links per node
    mode: filter
    conditions:
      values: [1, 2]
      dir_suffix: links
      file_prefix: results_total_
      extension: .csv
      runs: 3
      transform: {offset: 1, scale: 2}
    y_labels:
      Success: Placed
      TimeMs: Time
      Migrations: Moves
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"exp1", "exp2", "exp3", "exp4", "exp5"}, cfg.Tags())

	v3, err := cfg.Variant("exp3")
	require.NoError(t, err)
	assert.Equal(t, "Regions", v3.XLabel)
	assert.Equal(t, "png", v3.Format)
	assert.Equal(t, "exp3", v3.Dir)
	assert.Equal(t, types.Models, v3.Models)
	spec, err := v3.ChartSpec(types.SolverSB, types.MetricSuccess)
	require.NoError(t, err)
	assert.Equal(t, 40.0, spec.YLimits.Max)
	spec, err = v3.ChartSpec(types.SolverILP, types.MetricTimeMs)
	require.NoError(t, err)
	assert.Nil(t, spec.YLimits, "a replaced variant does not inherit built-in rules")

	v5, err := cfg.Variant("exp5")
	require.NoError(t, err)
	in, err := v5.Inputs("root")
	require.NoError(t, err)
	require.Len(t, in, 6)
	assert.Equal(t, extract.Input{Path: filepath.Join("root", "sweep", "1links", "results_total_0.csv"), X: 3}, in[0])
	spec, err = v5.ChartSpec(types.SolverSB, types.MetricMigrations)
	require.NoError(t, err)
	assert.Equal(t, "Moves", spec.YLabel)

	_, err = cfg.Variant("exp9")
	assert.Error(t, err)
}

func TestLoad_InvalidVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variants:\n  - tag: bad\n    mode: wide\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("variants: [\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}
