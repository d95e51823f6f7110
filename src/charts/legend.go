package charts

import (
	"image/color"

	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/PlacementBoxPlots/src/types"
)

var (
	outline = draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}
	frame   = draw.LineStyle{Color: color.Gray{Y: 200}, Width: vg.Points(0.8)}
)

type legendEntry struct {
	name string
	fill color.Color
}

// swatch is the legend thumbnail of a box: a filled, outlined rectangle.
type swatch struct {
	fill color.Color
}

func (e legendEntry) swatch() swatch { return swatch{fill: e.fill} }

func (s swatch) Thumbnail(c *draw.Canvas) {
	fillRect(*c, c.Min, c.Max, s.fill, outline)
}

func fillRect(c draw.Canvas, min, max vg.Point, fill color.Color, line draw.LineStyle) {
	pts := []vg.Point{min, {X: min.X, Y: max.Y}, max, {X: max.X, Y: min.Y}}
	c.FillPolygon(fill, pts)
	c.StrokeLines(line, append(pts, min))
}

// rowLegend lays all entries out on one row (one column per model), without a title.
type rowLegend struct {
	pos     types.LegendPosition
	entries []legendEntry
	style   text.Style
	pad     vg.Length
}

func newRowLegend(pos types.LegendPosition, entries []legendEntry, style text.Style) *rowLegend {
	style.XAlign = text.XLeft
	style.YAlign = text.YCenter
	return &rowLegend{pos: pos, entries: entries, style: style, pad: vg.Points(4)}
}

func (l *rowLegend) swatchSize() vg.Length { return l.style.Font.Size }

// size returns the framed legend's width and height.
func (l *rowLegend) size() (vg.Length, vg.Length) {
	sw := l.swatchSize()
	w := l.pad
	for _, e := range l.entries {
		w += sw + l.pad/2 + l.style.Width(e.name) + l.pad
	}
	h := sw
	if th := l.style.Height("M"); th > h {
		h = th
	}
	return w, h + 2*l.pad
}

// inside returns the lower left corner of the legend placed in the data area.
func (l *rowLegend) inside(da draw.Canvas) vg.Point {
	w, h := l.size()
	x := da.Min.X + l.pad
	y := da.Max.Y - l.pad - h
	switch l.pos {
	case types.LegendUpperCenter, types.LegendLowerCenter:
		x = (da.Min.X+da.Max.X)/2 - w/2
	case types.LegendUpperRight, types.LegendLowerRight:
		x = da.Max.X - l.pad - w
	}
	switch l.pos {
	case types.LegendLowerLeft, types.LegendLowerCenter, types.LegendLowerRight:
		y = da.Min.Y + l.pad
	}
	return vg.Point{X: x, Y: y}
}

func (l *rowLegend) drawAt(c draw.Canvas, at vg.Point) {
	w, h := l.size()
	fillRect(c, at, vg.Point{X: at.X + w, Y: at.Y + h}, color.White, frame)
	sw := l.swatchSize()
	x := at.X + l.pad
	mid := at.Y + h/2
	for _, e := range l.entries {
		fillRect(c, vg.Point{X: x, Y: mid - sw/2}, vg.Point{X: x + sw, Y: mid + sw/2}, e.fill, outline)
		x += sw + l.pad/2
		c.FillText(l.style, vg.Point{X: x, Y: mid}, e.name)
		x += l.style.Width(e.name) + l.pad
	}
}
