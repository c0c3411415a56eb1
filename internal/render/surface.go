// Package render draws game frames onto any Surface. Presenters only read
// the frames they are given.
package render

import (
	"image/color"

	"github.com/tomz197/spacepong/internal/effect"
	"github.com/tomz197/spacepong/internal/object"
)

// Surface is a drawing target in field coordinates. Implementations scale
// the field to whatever they actually draw on.
type Surface interface {
	// Size returns the logical size of the surface.
	Size() (w, h float64)
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r float64, c color.Color)
	Line(x1, y1, x2, y2 float64, c color.Color)
	// Text draws s with its top-left corner at (x, y). Each glyph occupies
	// a cell of GlyphWidth×scale by GlyphHeight×scale.
	Text(x, y float64, s string, scale float64, c color.Color)
}

// Glyph cell size at scale 1.
const (
	GlyphWidth  = 5
	GlyphHeight = 6
)

// TextWidth returns the width Text uses for s at scale.
func TextWidth(s string, scale float64) float64 {
	return float64(len(s)) * GlyphWidth * scale
}

// KindColor is the color a power-up of kind is drawn in.
func KindColor(k effect.Kind) color.RGBA {
	switch k {
	case effect.SpeedBoost:
		return object.Cyan
	case effect.PaddleGrow:
		return object.Green
	case effect.PaddleShrink:
		return object.Red
	case effect.MultiBall:
		return object.Purple
	case effect.Shield:
		return object.Gold
	case effect.Freeze:
		return object.Blue
	case effect.Laser:
		return object.Orange
	case effect.Magnet:
		return object.Pink
	}
	return object.White
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
