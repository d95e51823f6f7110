package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// meanMarks overlays a white dot with a black ring at the mean of each box.
// Points carry the same canvas offset as their box so they stay centred on it.
type meanMarks struct {
	points []meanPoint
	fill   draw.GlyphStyle
	ring   draw.GlyphStyle
}

type meanPoint struct {
	x   float64
	off vg.Length
	y   float64
}

func newMeanMarks() *meanMarks {
	r := vg.Points(4)
	return &meanMarks{
		fill: draw.GlyphStyle{Color: color.White, Radius: r, Shape: draw.CircleGlyph{}},
		ring: draw.GlyphStyle{Color: color.Black, Radius: r, Shape: draw.RingGlyph{}},
	}
}

func (m *meanMarks) add(x float64, off vg.Length, y float64) {
	m.points = append(m.points, meanPoint{x: x, off: off, y: y})
}

// Plot implements plot.Plotter.
func (m *meanMarks) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, p := range m.points {
		pt := vg.Point{X: trX(p.x) + p.off, Y: trY(p.y)}
		if !c.Contains(pt) {
			continue
		}
		c.DrawGlyph(m.fill, pt)
		c.DrawGlyph(m.ring, pt)
	}
}
