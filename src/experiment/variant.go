// Package experiment describes the experiment variants of the placement study and
// runs the extract → render pipeline over every (solver, metric) pair of a variant.
package experiment

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/iafilius/PlacementBoxPlots/src/extract"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

var (
	ErrUnknownPair = errors.New("solver/metric not configured")
	ErrNoLabel     = errors.New("metric has no y label")
)

// DefaultFormat is the image format written when a variant does not name one.
const DefaultFormat = "pdf"

// Variant is one experiment: where its result files live, how their rows are read
// and how each (solver, metric) chart is configured.
type Variant struct {
	Tag        string              `yaml:"tag"`
	Dir        string              `yaml:"dir"` // relative to the data dir; defaults to Tag
	XLabel     string              `yaml:"x_label"`
	Mode       string              `yaml:"mode"` // wide | filter
	Sequence   *extract.Sequence   `yaml:"sequence,omitempty"`
	Conditions *extract.Conditions `yaml:"conditions,omitempty"`
	Solvers    []string            `yaml:"solvers,omitempty"`
	Metrics    []string            `yaml:"metrics,omitempty"`
	Models     []string            `yaml:"models,omitempty"`
	YLabels    map[string]string   `yaml:"y_labels,omitempty"`
	Rules      []Rule              `yaml:"rules,omitempty"`
	Format     string              `yaml:"format,omitempty"`
}

// Rule adjusts the chart of every (solver, metric) pair it matches. An empty
// Solver or Metric matches any. Rules apply in order; later rules win.
type Rule struct {
	Solver    string        `yaml:"solver,omitempty"`
	Metric    string        `yaml:"metric,omitempty"`
	YLimits   *types.Limits `yaml:"y_limits,omitempty"`
	YScale    string        `yaml:"y_scale,omitempty"`
	HideMeans bool          `yaml:"hide_means,omitempty"`
	Legend    string        `yaml:"legend,omitempty"`
}

func (r Rule) matches(solver, metric string) bool {
	return (r.Solver == "" || r.Solver == solver) && (r.Metric == "" || r.Metric == metric)
}

// DefaultYLabels maps the canonical metrics to their axis labels.
func DefaultYLabels() map[string]string {
	return map[string]string{
		types.MetricSuccess:    "Applications successfully placed",
		types.MetricTimeMs:     "Execution time [ms]",
		types.MetricMigrations: "Migrations",
	}
}

// applyDefaults fills unset vocabularies and the output format.
func (v *Variant) applyDefaults() {
	if v.Dir == "" {
		v.Dir = v.Tag
	}
	if len(v.Solvers) == 0 {
		v.Solvers = slices.Clone(types.Solvers)
	}
	if len(v.Metrics) == 0 {
		v.Metrics = slices.Clone(types.Metrics)
	}
	if len(v.Models) == 0 {
		v.Models = slices.Clone(types.Models)
	}
	if v.YLabels == nil {
		v.YLabels = DefaultYLabels()
	}
	if v.Format == "" {
		v.Format = DefaultFormat
	}
}

// Validate checks that the variant can be run and that its chart table is total.
func (v *Variant) Validate() error {
	if strings.TrimSpace(v.Tag) == "" {
		return errors.New("variant: empty tag")
	}
	mode, err := extract.ParseMode(v.Mode)
	if err != nil {
		return fmt.Errorf("variant %s: %w", v.Tag, err)
	}
	d, err := v.discovery()
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("variant %s: %w", v.Tag, err)
	}
	if mode == extract.Filter && v.Conditions == nil {
		return fmt.Errorf("variant %s: filter mode needs conditions", v.Tag)
	}
	for _, r := range v.Rules {
		if _, err := types.ParseScale(r.YScale); err != nil {
			return fmt.Errorf("variant %s: %w", v.Tag, err)
		}
		if _, err := types.ParseLegendPosition(r.Legend); err != nil {
			return fmt.Errorf("variant %s: %w", v.Tag, err)
		}
		if r.YLimits != nil && r.YLimits.Min >= r.YLimits.Max {
			return fmt.Errorf("variant %s: y limits (%g, %g) are empty", v.Tag, r.YLimits.Min, r.YLimits.Max)
		}
	}
	for _, s := range v.Solvers {
		for _, m := range v.Metrics {
			if _, err := v.ChartSpec(s, m); err != nil {
				return fmt.Errorf("variant %s: %w", v.Tag, err)
			}
		}
	}
	return nil
}

func (v *Variant) discovery() (extract.Discovery, error) {
	switch {
	case v.Sequence != nil && v.Conditions != nil:
		return nil, fmt.Errorf("variant %s: both sequence and conditions set", v.Tag)
	case v.Sequence != nil:
		return *v.Sequence, nil
	case v.Conditions != nil:
		return *v.Conditions, nil
	}
	return nil, fmt.Errorf("variant %s: no file discovery rule", v.Tag)
}

// Inputs lists the result files of the variant under dataDir.
func (v *Variant) Inputs(dataDir string) ([]extract.Input, error) {
	d, err := v.discovery()
	if err != nil {
		return nil, err
	}
	return d.Inputs(filepath.Join(dataDir, v.Dir)), nil
}

// Extractor returns the extractor matching the variant's row layout.
func (v *Variant) Extractor() (*extract.Extractor, error) {
	mode, err := extract.ParseMode(v.Mode)
	if err != nil {
		return nil, err
	}
	e := extract.New(mode)
	e.Models = v.Models
	return e, nil
}

// ChartSpec resolves the chart configuration of one (solver, metric) pair.
func (v *Variant) ChartSpec(solver, metric string) (types.ChartSpec, error) {
	if !slices.Contains(v.Solvers, solver) || !slices.Contains(v.Metrics, metric) {
		return types.ChartSpec{}, fmt.Errorf("%w: %s/%s", ErrUnknownPair, solver, metric)
	}
	label := v.YLabels[metric]
	if strings.TrimSpace(label) == "" {
		return types.ChartSpec{}, fmt.Errorf("%w: %s", ErrNoLabel, metric)
	}
	spec := types.ChartSpec{XLabel: v.XLabel, YLabel: label, YScale: types.ScaleLinear, ShowMeans: true}
	for _, r := range v.Rules {
		if !r.matches(solver, metric) {
			continue
		}
		if r.YLimits != nil {
			l := *r.YLimits
			spec.YLimits = &l
		}
		if r.YScale != "" {
			s, err := types.ParseScale(r.YScale)
			if err != nil {
				return types.ChartSpec{}, err
			}
			spec.YScale = s
		}
		if r.HideMeans {
			spec.ShowMeans = false
		}
		if r.Legend != "" {
			p, err := types.ParseLegendPosition(r.Legend)
			if err != nil {
				return types.ChartSpec{}, err
			}
			spec.Legend = p
		}
	}
	return spec, nil
}

// OutputName is the chart file name of one pair: <tag>_<solver>_<metric>.<format>.
func (v *Variant) OutputName(solver, metric string) string {
	return v.Tag + "_" + solver + "_" + metric + "." + strings.TrimPrefix(v.Format, ".")
}

// TrendName is the trend chart file name of one pair.
func (v *Variant) TrendName(solver, metric string) string {
	return v.Tag + "_" + solver + "_" + metric + "_trend.png"
}
