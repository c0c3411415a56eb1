package draw

import (
	"fmt"
	"image/color"
	"unicode/utf8"
)

// Glyph cell size at scale 1, matching the layout presenters assume.
const (
	glyphWidth  = 5
	glyphHeight = 6
)

type overlayText struct {
	x, y  float64 // Center of the text box in logical coordinates
	text  string
	color color.NRGBA
}

// TermSurface is a drawing surface over a Canvas. Shapes go to the canvas;
// text is collected and written as real characters on top of it, centered
// on the box the presenter laid it out in.
type TermSurface struct {
	canvas *Canvas
	texts  []overlayText
}

// NewTermSurface creates a surface drawing on c.
func NewTermSurface(c *Canvas) *TermSurface {
	return &TermSurface{canvas: c}
}

// Canvas returns the underlying canvas.
func (s *TermSurface) Canvas() *Canvas { return s.canvas }

// Size returns the logical size of the canvas.
func (s *TermSurface) Size() (w, h float64) {
	return s.canvas.LogicalWidth(), s.canvas.LogicalHeight()
}

// Clear empties the canvas and the text overlay. Black leaves the terminal
// background showing; any other color fills the canvas.
func (s *TermSurface) Clear(c color.Color) {
	s.canvas.Clear()
	s.texts = s.texts[:0]
	if n := toNRGBA(c); n.A != 0 && (n.R|n.G|n.B) != 0 {
		s.canvas.FillRect(0, 0, s.canvas.LogicalWidth(), s.canvas.LogicalHeight(), n)
	}
}

func (s *TermSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.canvas.FillRect(x, y, w, h, c)
}

func (s *TermSurface) StrokeRect(x, y, w, h float64, c color.Color) {
	s.canvas.DrawPolygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, false, c)
}

func (s *TermSurface) FillCircle(cx, cy, r float64, c color.Color) {
	s.canvas.FillCircle(cx, cy, r, c)
}

func (s *TermSurface) StrokeCircle(cx, cy, r float64, c color.Color) {
	s.canvas.StrokeCircle(cx, cy, r, c)
}

func (s *TermSurface) Line(x1, y1, x2, y2 float64, c color.Color) {
	s.canvas.DrawLine(Point{x1, y1}, Point{x2, y2}, c)
}

// Text queues s for the overlay.
func (s *TermSurface) Text(x, y float64, text string, scale float64, c color.Color) {
	n := utf8.RuneCountInString(text)
	s.texts = append(s.texts, overlayText{
		x:     x + float64(n)*glyphWidth*scale/2,
		y:     y + glyphHeight*scale/2,
		text:  text,
		color: toNRGBA(c),
	})
}

// EachText calls fn for every queued text, placed in 1-based terminal
// coordinates and cut to the canvas width. Texts that fall outside the
// canvas are skipped.
func (s *TermSurface) EachText(fn func(col, row int, text string, c color.NRGBA)) {
	for _, t := range s.texts {
		col, row := s.canvas.LogicalToTerminal(t.x, t.y)
		n := utf8.RuneCountInString(t.text)
		col = max(col-n/2, 1)
		if row < 1 || row > s.canvas.TerminalHeight() {
			continue
		}
		text := t.text
		if over := col + n - 1 - s.canvas.TerminalWidth(); over > 0 {
			if over >= n {
				continue
			}
			text = string([]rune(text)[:n-over])
		}
		fn(col, row, text, t.color)
	}
}

// Flush renders the canvas, border and text overlay to cw and writes it out.
func (s *TermSurface) Flush(cw *ChunkWriter) error {
	s.canvas.Render(cw)
	s.canvas.RenderBorder(cw)

	s.EachText(func(col, row int, text string, c color.NRGBA) {
		cw.MoveCursor(col, row)
		cw.WriteString(fmt.Sprintf("\033[0;1;38;2;%d;%d;%dm%s\033[0m", c.R, c.G, c.B, text))
		s.canvas.Invalidate(col, row, utf8.RuneCountInString(text))
	})
	return cw.Flush()
}
