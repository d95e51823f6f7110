// Package charts renders observation sets: grouped box plots through gonum/plot
// and per-model mean trend charts through go-chart.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/PlacementBoxPlots/src/analysis"
	"github.com/iafilius/PlacementBoxPlots/src/logging"
	"github.com/iafilius/PlacementBoxPlots/src/types"
)

var (
	ErrNoObservations = errors.New("no observations")
	ErrUnknownModel   = errors.New("unknown model")
	ErrLogScale       = errors.New("log scale needs positive axis bounds")
	ErrLimits         = errors.New("y limits: min must be below max")
	ErrFormat         = errors.New("unsupported output format")
)

// Default figure size, 6.4x4.8in.
const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
)

// Renderer draws one grouped box plot per call. It holds no state between calls.
type Renderer struct {
	Width   vg.Length
	Height  vg.Length
	Models  []string      // hue order; defaults to types.Models
	Palette []color.Color // one fill per model; defaults to DefaultPalette
}

// NewRenderer returns a Renderer with the default size, models and palette.
func NewRenderer() *Renderer {
	return &Renderer{Width: DefaultWidth, Height: DefaultHeight, Models: types.Models}
}

// DefaultPalette returns n light-to-dark greys from the ColorBrewer "Greys" scheme.
func DefaultPalette(n int) []color.Color {
	k := n
	if k < 3 {
		k = 3
	}
	if p, err := brewer.GetPalette(brewer.TypeSequential, "Greys", k); err == nil {
		return p.Colors()[:n]
	}
	// More hues than the scheme offers: evenly spaced grey ramp.
	out := make([]color.Color, n)
	for i := range out {
		y := 235 - uint8(i*200/max(n-1, 1))
		out[i] = color.Gray{Y: y}
	}
	return out
}

// figure is a built plot plus what has to be drawn around it.
type figure struct {
	plot   *plot.Plot
	boxes  []*plotter.BoxPlot
	means  *meanMarks
	legend *rowLegend // nil keeps the plot's own legend
}

// Render draws obs according to spec and writes the figure to path. The format
// follows the extension of path (pdf, png, svg, eps, jpg, tif).
func (r *Renderer) Render(obs types.ObservationSet, spec types.ChartSpec, path string) error {
	f, err := r.build(obs, spec)
	if err != nil {
		return err
	}
	return r.save(f, path)
}

// Plot builds the gonum plot for obs without writing it.
func (r *Renderer) Plot(obs types.ObservationSet, spec types.ChartSpec) (*plot.Plot, error) {
	f, err := r.build(obs, spec)
	if err != nil {
		return nil, err
	}
	return f.plot, nil
}

func (r *Renderer) models() []string {
	if len(r.Models) == 0 {
		return types.Models
	}
	return r.Models
}

func (r *Renderer) size() (vg.Length, vg.Length) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (r *Renderer) build(obs types.ObservationSet, spec types.ChartSpec) (*figure, error) {
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}
	if spec.YScale == types.ScaleLog {
		var dropped int
		obs, dropped = positiveOnly(obs)
		if dropped > 0 {
			logging.Warnf("log y axis: dropped %d non-positive observations", dropped)
		}
		if len(obs) == 0 {
			return nil, fmt.Errorf("%w: no positive values", ErrLogScale)
		}
	}
	models := r.models()
	known := make(map[string]bool, len(models))
	for _, m := range models {
		known[m] = true
	}
	present := map[string]bool{}
	for _, o := range obs {
		if !known[o.Model] {
			return nil, fmt.Errorf("%w %q", ErrUnknownModel, o.Model)
		}
		present[o.Model] = true
	}
	colors := r.Palette
	if len(colors) < len(models) {
		colors = DefaultPalette(len(models))
	}

	xs := analysis.XValues(obs)
	slot := make(map[float64]int, len(xs))
	labels := make([]string, len(xs))
	for i, x := range xs {
		slot[x] = i
		labels[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}

	p := plot.New()
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	// Boxes of one group share 80% of the slot width, split evenly across models.
	w, _ := r.size()
	boxW := (w - vg.Inch) * 0.8 / vg.Length(len(xs)*len(models))
	groupW := boxW * vg.Length(len(models))
	offset := func(k int) vg.Length { return boxW*vg.Length(k) - groupW/2 + boxW/2 }

	f := &figure{plot: p}
	for k, m := range models {
		for g, x := range xs {
			vals := obs.Values(x, m)
			if len(vals) == 0 {
				continue
			}
			b, err := plotter.NewBoxPlot(boxW, float64(g), plotter.Values(vals))
			if err != nil {
				return nil, fmt.Errorf("box %s x=%s: %w", m, labels[g], err)
			}
			b.Offset = offset(k)
			b.FillColor = colors[k]
			p.Add(b)
			f.boxes = append(f.boxes, b)
		}
	}

	if spec.ShowMeans {
		f.means = newMeanMarks()
		idx := make(map[string]int, len(models))
		for k, m := range models {
			idx[m] = k
		}
		for _, s := range analysis.Summarize(obs, models) {
			f.means.add(float64(slot[s.X]), offset(idx[s.Model]), s.Mean)
		}
		p.Add(f.means)
	}

	p.NominalX(labels...)
	p.X.Min = -0.5
	p.X.Max = float64(len(xs)) - 0.5

	if spec.YScale == types.ScaleLog {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if l := spec.YLimits; l != nil {
		if l.Min >= l.Max {
			return nil, fmt.Errorf("%w (%g, %g)", ErrLimits, l.Min, l.Max)
		}
		p.Y.Min, p.Y.Max = l.Min, l.Max
	}
	if spec.YScale == types.ScaleLog && (p.Y.Min <= 0 || p.Y.Max <= 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrLogScale, p.Y.Min, p.Y.Max)
	}

	var entries []legendEntry
	for k, m := range models {
		if present[m] {
			entries = append(entries, legendEntry{name: m, fill: colors[k]})
		}
	}
	if spec.Legend == types.LegendDefault {
		for _, e := range entries {
			p.Legend.Add(e.name, e.swatch())
		}
	} else {
		f.legend = newRowLegend(spec.Legend, entries, p.Legend.TextStyle)
	}
	return f, nil
}

// positiveOnly returns the observations with a value above zero and how many
// were left out. A log axis cannot place the others.
func positiveOnly(obs types.ObservationSet) (types.ObservationSet, int) {
	out := make(types.ObservationSet, 0, len(obs))
	for _, o := range obs {
		if o.Value > 0 {
			out = append(out, o)
		}
	}
	return out, len(obs) - len(out)
}

func (r *Renderer) save(f *figure, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("%s: %w", path, ErrFormat)
	}
	w, h := r.size()
	cw, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrFormat, err)
	}
	f.draw(draw.New(cw))

	var buf bytes.Buffer
	if _, err := cw.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (f *figure) draw(dc draw.Canvas) {
	if f.legend == nil {
		f.plot.Draw(dc)
		return
	}
	if f.legend.pos == types.LegendAbove {
		_, h := f.legend.size()
		strip := h + 2*f.legend.pad
		area := draw.Crop(dc, 0, 0, 0, -strip)
		f.plot.Draw(area)
		da := f.plot.DataCanvas(area)
		w, _ := f.legend.size()
		x := (da.Min.X+da.Max.X)/2 - w/2
		y := area.Max.Y + (strip-h)/2
		f.legend.drawAt(dc, vg.Point{X: x, Y: y})
		return
	}
	f.plot.Draw(dc)
	f.legend.drawAt(dc, f.legend.inside(f.plot.DataCanvas(dc)))
}
