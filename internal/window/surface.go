package window

import (
	"image/color"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tomz197/spacepong/internal/render"
)

// circleSegments is the number of edges used to stroke a circle.
const circleSegments = 32

var (
	fontOnce sync.Once
	goFont   *truetype.Font

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// face returns the Go Regular face sized to the presenter's glyph cell.
func face(scale float64) font.Face {
	fontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic(err) // Embedded font; cannot fail.
		}
		goFont = f
	})

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[scale]; ok {
		return f
	}
	f := truetype.NewFace(goFont, &truetype.Options{
		Size:    render.GlyphHeight * scale * 1.4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces[scale] = f
	return f
}

// Surface draws on an ebiten image in field coordinates.
type Surface struct {
	img *ebiten.Image
}

// NewSurface wraps img.
func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

func (s *Surface) Size() (w, h float64) {
	iw, ih := s.img.Size()
	return float64(iw), float64(ih)
}

func (s *Surface) Clear(c color.Color) {
	s.img.Fill(c)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	ebitenutil.DrawRect(s.img, x, y, w, h, c)
}

func (s *Surface) StrokeRect(x, y, w, h float64, c color.Color) {
	s.Line(x, y, x+w, y, c)
	s.Line(x+w, y, x+w, y+h, c)
	s.Line(x+w, y+h, x, y+h, c)
	s.Line(x, y+h, x, y, c)
}

// FillCircle draws the circle as one horizontal strip per pixel row.
func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	for _, sp := range circleSpans(cx, cy, r) {
		ebitenutil.DrawRect(s.img, sp.x, sp.y, sp.w, 1, c)
	}
}

func (s *Surface) StrokeCircle(cx, cy, r float64, c color.Color) {
	prevX, prevY := cx+r, cy
	for i := 1; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		s.Line(prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
}

func (s *Surface) Line(x1, y1, x2, y2 float64, c color.Color) {
	ebitenutil.DrawLine(s.img, x1, y1, x2, y2, c)
}

// Text draws str with its top-left corner at (x, y).
func (s *Surface) Text(x, y float64, str string, scale float64, c color.Color) {
	f := face(scale)
	ascent := f.Metrics().Ascent.Ceil()
	text.Draw(s.img, str, f, int(x), int(y)+ascent, c)
}

type span struct {
	x, y, w float64
}

// circleSpans returns the rows covering a filled circle. The center row
// is always present, even for radii below one pixel.
func circleSpans(cx, cy, r float64) []span {
	if r < 0.5 {
		return []span{{cx - 0.5, math.Floor(cy), 1}}
	}
	spans := make([]span, 0, int(2*r)+1)
	for dy := -math.Floor(r); dy <= math.Floor(r); dy++ {
		half := math.Sqrt(r*r - dy*dy)
		spans = append(spans, span{x: cx - half, y: math.Floor(cy + dy), w: 2 * half})
	}
	return spans
}
