package charts

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	captionPad   = 4
	captionInset = 16 // lines up with the chart's left padding
	captionRule  = 2
)

var captionInk = color.Gray{Y: 60}

// drawCaption writes text into a white footer band along the bottom margin of
// img, below the plot area, topped by a thin rule in the accent color. Text
// wider than the image is cut and ends in "...".
func drawCaption(img image.Image, text string, accent color.Color) image.Image {
	text = strings.TrimSpace(text)
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	m := face.Metrics()
	band := image.Rect(b.Min.X, b.Max.Y-captionBandHeight(), b.Max.X, b.Max.Y)
	draw.Draw(out, band, image.White, image.Point{}, draw.Src)
	rule := image.Rect(band.Min.X, band.Min.Y, band.Max.X, band.Min.Y+captionRule)
	draw.Draw(out, rule, image.NewUniform(accent), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: out, Src: image.NewUniform(captionInk), Face: face}
	text = fitText(d, text, b.Dx()-2*captionInset)
	d.Dot = fixed.P(b.Min.X+captionInset, band.Max.Y-captionPad-m.Descent.Ceil())
	d.DrawString(text)
	return out
}

func captionBandHeight() int {
	return basicfont.Face7x13.Metrics().Height.Ceil() + 2*captionPad + captionRule
}

// fitText shortens s until it fits in width pixels.
func fitText(d *font.Drawer, s string, width int) string {
	if d.MeasureString(s).Ceil() <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if cut := strings.TrimRight(string(r), " ") + "..."; d.MeasureString(cut).Ceil() <= width {
			return cut
		}
	}
	return ""
}
