package imageview

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"
)

// Default viewer window size.
const (
	WindowWidth  = 960
	WindowHeight = 540
)

var errQuit = errors.New("viewer closed")

// Viewer shows one image on a white background, scaled to fit the window.
// Esc closes it.
type Viewer struct {
	src     image.Image
	tex     *ebiten.Image
	winW    int
	winH    int
	escaped func() bool
}

// NewViewer creates a viewer for img.
func NewViewer(img image.Image) *Viewer {
	return &Viewer{
		src:  img,
		winW: WindowWidth,
		winH: WindowHeight,
		escaped: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
		},
	}
}

// Run opens the window and blocks until it is closed. It must be called
// from the main goroutine.
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowSize(v.winW, v.winH)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)

	err := ebiten.RunGame(v)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (v *Viewer) Update(screen *ebiten.Image) error {
	if v.escaped() {
		return errQuit
	}
	if v.tex == nil {
		tex, err := ebiten.NewImageFromImage(v.src, ebiten.FilterLinear)
		if err != nil {
			return err
		}
		v.tex = tex
	}
	if ebiten.IsDrawingSkipped() {
		return nil
	}

	screen.Fill(color.White)

	w, h := v.tex.Size()
	scale, offX, offY := Fit(w, h, v.winW, v.winH)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offX, offY)
	return screen.DrawImage(v.tex, op)
}

// Layout tracks the window size so the image is drawn at screen resolution.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.winW, v.winH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
