package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func loadFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// Raster is an in-memory Surface backed by a gg context. One logical unit
// maps to one pixel.
type Raster struct {
	dc    *gg.Context
	src   *text.FontSource
	faces map[float64]text.Face
}

// NewRaster creates a w×h raster.
func NewRaster(w, h int) (*Raster, error) {
	src, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	dc := gg.NewContext(w, h)
	dc.SetLineWidth(1)
	return &Raster{dc: dc, src: src, faces: make(map[float64]text.Face)}, nil
}

// Size implements Surface.
func (r *Raster) Size() (w, h float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

// Clear implements Surface.
func (r *Raster) Clear(c color.Color) {
	r.dc.ClearWithColor(gg.FromColor(c))
}

// FillRect implements Surface.
func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	_ = r.dc.Fill()
}

// StrokeRect implements Surface.
func (r *Raster) StrokeRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	_ = r.dc.Stroke()
}

// FillCircle implements Surface.
func (r *Raster) FillCircle(cx, cy, radius float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(cx, cy, radius)
	_ = r.dc.Fill()
}

// StrokeCircle implements Surface.
func (r *Raster) StrokeCircle(cx, cy, radius float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(cx, cy, radius)
	_ = r.dc.Stroke()
}

// Line implements Surface.
func (r *Raster) Line(x1, y1, x2, y2 float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawLine(x1, y1, x2, y2)
	_ = r.dc.Stroke()
}

// Text implements Surface.
func (r *Raster) Text(x, y float64, s string, scale float64, c color.Color) {
	face, ok := r.faces[scale]
	if !ok {
		face = r.src.Face(GlyphHeight * scale)
		r.faces[scale] = face
	}
	r.dc.SetFont(face)
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, x, y, 0, 1)
}

// Image returns the current pixels.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the current pixels to w as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}
