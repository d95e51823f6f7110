package charts

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/PlacementBoxPlots/src/analysis"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

var trendColors = []drawing.Color{chart.ColorBlue, chart.ColorGreen, chart.ColorRed, chart.ColorOrange}

// TrendChart draws, for each model, the mean of every box-plot group as a line
// over the independent variable.
type TrendChart struct {
	Title   string
	Caption string   // stamped onto the image when non-empty
	Models  []string // series order; defaults to types.Models
	Width   int      // raw width, clamped by ChartDimensions
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Render writes the trend chart of sums as a PNG to path.
func (t TrendChart) Render(sums []analysis.GroupSummary, spec types.ChartSpec, path string) error {
	if len(sums) == 0 {
		return ErrNoObservations
	}
	models := t.Models
	if len(models) == 0 {
		models = types.Models
	}
	means := analysis.MeansByModel(sums)

	series := []chart.Series{}
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	for k, m := range models {
		s, ok := means[m]
		if !ok {
			continue
		}
		for i := range s.X {
			minX, maxX = math.Min(minX, s.X[i]), math.Max(maxX, s.X[i])
			minY, maxY = math.Min(minY, s.Mean[i]), math.Max(maxY, s.Mean[i])
		}
		xs, ys := s.X, s.Mean
		// go-chart needs at least two X values per series
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, chart.ContinuousSeries{Name: m, XValues: xs, YValues: ys, Style: lineStyle(trendColors[k%len(trendColors)])})
	}
	if len(series) == 0 {
		return ErrNoObservations
	}

	yMin, yMax := trendYRange(spec, minY, maxY)
	if maxX <= minX {
		maxX = minX + 1
	}
	var xTicks []chart.Tick
	for _, x := range distinctX(sums) {
		xTicks = append(xTicks, chart.Tick{Value: x, Label: strconv.FormatFloat(x, 'f', -1, 64)})
	}

	w, h := ChartDimensions(t.Width)
	ch := chart.Chart{
		Title:      t.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 40}},
		XAxis:      chart.XAxis{Name: spec.XLabel, Ticks: xTicks, Range: &chart.ContinuousRange{Min: minX, Max: maxX}},
		YAxis:      chart.YAxis{Name: spec.YLabel, Range: &chart.ContinuousRange{Min: yMin, Max: yMax}, Ticks: niceTicks(yMin, yMax, 6)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render trend %s: %w", path, err)
	}
	if t.Caption != "" {
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decode trend %s: %w", path, err)
		}
		buf.Reset()
		if err := png.Encode(&buf, drawCaption(img, t.Caption, trendColors[0])); err != nil {
			return fmt.Errorf("png encode %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// trendYRange picks the y range of a trend chart. Limits made for a log axis
// would flatten the means on this linear one, so those are replaced by bounds
// fitted to the means.
func trendYRange(spec types.ChartSpec, minY, maxY float64) (float64, float64) {
	if l := spec.YLimits; l != nil && spec.YScale != types.ScaleLog {
		return l.Min, l.Max
	}
	return niceAxisBounds(minY, maxY)
}

func distinctX(sums []analysis.GroupSummary) []float64 {
	var xs []float64
	for _, s := range sums {
		if len(xs) == 0 || xs[len(xs)-1] != s.X {
			xs = append(xs, s.X)
		}
	}
	return xs
}
