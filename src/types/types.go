// Package types holds the value types shared by the extractor, the renderers and
// the experiment pipeline.
package types

import (
	"fmt"
	"strings"
)

// Canonical solver identifiers as written by the simulator.
const (
	SolverSB  = "SolverSB"
	SolverILP = "SolverILP"
)

// Canonical metric identifiers.
const (
	MetricSuccess    = "Success"
	MetricTimeMs     = "TimeMs"
	MetricMigrations = "Migrations"
)

// Models lists the architectural variants in canonical hue order. Box positions
// and colors follow this order on every chart.
var Models = []string{"centralized", "independent", "communicating", "overlapping"}

// Solvers and Metrics list the default iteration order of the pipeline.
var (
	Solvers = []string{SolverSB, SolverILP}
	Metrics = []string{MetricSuccess, MetricTimeMs, MetricMigrations}
)

// Observation is one (independent value, run, model, value) data point.
type Observation struct {
	X     float64 `json:"x"`
	Run   int     `json:"run"`
	Model string  `json:"model"`
	Value float64 `json:"value"`
}

// ObservationSet is the ordered sequence of observations for one (solver, metric) pair.
type ObservationSet []Observation

// Values returns the values of all observations matching x and model, in order.
func (s ObservationSet) Values(x float64, model string) []float64 {
	var out []float64
	for _, o := range s {
		if o.X == x && o.Model == model {
			out = append(out, o.Value)
		}
	}
	return out
}

// Scale selects the y-axis scale.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ParseScale accepts "", "linear" or "log".
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return ScaleLinear, nil
	case "log":
		return ScaleLog, nil
	}
	return "", fmt.Errorf("unknown y scale %q", s)
}

// LegendPosition relocates the legend. The zero value keeps the library default.
type LegendPosition string

const (
	LegendDefault     LegendPosition = ""
	LegendAbove       LegendPosition = "above"
	LegendUpperLeft   LegendPosition = "upper left"
	LegendUpperCenter LegendPosition = "upper center"
	LegendUpperRight  LegendPosition = "upper right"
	LegendLowerLeft   LegendPosition = "lower left"
	LegendLowerCenter LegendPosition = "lower center"
	LegendLowerRight  LegendPosition = "lower right"
)

// ParseLegendPosition validates a legend position name.
func ParseLegendPosition(s string) (LegendPosition, error) {
	p := LegendPosition(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case LegendDefault, LegendAbove, LegendUpperLeft, LegendUpperCenter, LegendUpperRight,
		LegendLowerLeft, LegendLowerCenter, LegendLowerRight:
		return p, nil
	}
	return "", fmt.Errorf("unknown legend position %q", s)
}

// Limits is an inclusive y-axis range.
type Limits struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// ChartSpec carries the per-chart axis and legend configuration.
type ChartSpec struct {
	XLabel    string
	YLabel    string
	YLimits   *Limits
	YScale    Scale
	ShowMeans bool
	Legend    LegendPosition
}
