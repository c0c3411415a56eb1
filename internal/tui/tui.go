// Package tui is the local terminal frontend. tcell owns the terminal (raw
// mode, key decoding, resize events) while frames are drawn on the same
// half-block canvas the SSH client uses and copied cell by cell into the
// tcell screen.
package tui

import (
	"image/color"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/spacepong/internal/draw"
	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/render"
)

// Screen is a loop.Frontend[F] over a tcell screen.
type Screen[F any] struct {
	screen  tcell.Screen
	canvas  *draw.Canvas
	surface *draw.TermSurface
	present func(render.Surface, F)
	now     func() time.Time

	mu      sync.Mutex // Guards the fields below; events arrive on another goroutine
	tracker *input.Tracker
	resized bool
	closed  bool
}

// Open initializes the controlling terminal and returns a frontend on it.
func Open[F any](width, height float64, present func(render.Surface, F), hold time.Duration) (*Screen[F], error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return New(s, width, height, present, hold), nil
}

// New wraps an initialized tcell screen and starts reading its events.
// width and height are the logical field size present draws in.
func New[F any](s tcell.Screen, width, height float64, present func(render.Surface, F), hold time.Duration) *Screen[F] {
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()

	w, h := s.Size()
	rw, rh := clamp(w, h)
	canvas := draw.NewScaledCanvas(rw, rh, width, height)

	t := &Screen[F]{
		screen:  s,
		canvas:  canvas,
		surface: draw.NewTermSurface(canvas),
		present: present,
		now:     time.Now,
		tracker: input.NewTracker(hold),
	}
	go t.pollEvents()
	return t
}

// Close restores the terminal. Poll reports loop.ErrQuit afterwards.
func (t *Screen[F]) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.screen.Fini()
}

func (t *Screen[F]) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			k := keyFor(ev)
			if k == input.KeyNone {
				continue
			}
			t.mu.Lock()
			t.tracker.Observe(k, t.now())
			t.mu.Unlock()
		case *tcell.EventResize:
			t.mu.Lock()
			t.resized = true
			t.mu.Unlock()
		}
	}
}

func keyFor(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		if r := ev.Rune(); r < 0x80 {
			return input.KeyForByte(byte(r))
		}
	}
	return input.KeyNone
}

// Poll returns the keys seen since the previous tick.
func (t *Screen[F]) Poll() (input.Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return input.Frame{}, loop.ErrQuit
	}
	if t.resized {
		t.resized = false
		t.canvas.Resize(clamp(t.screen.Size()))
		t.screen.Clear()
		t.screen.Sync()
	}
	return t.tracker.Frame(t.now()), nil
}

// Present draws f and shows it.
func (t *Screen[F]) Present(f F) error {
	t.present(t.surface, f)

	w, h := t.screen.Size()
	cw, ch := t.canvas.TerminalWidth(), t.canvas.TerminalHeight()
	offX, offY := (w-cw)/2, (h-ch)/2

	for row := 0; row < ch; row++ {
		for col := 0; col < cw; col++ {
			top := t.canvas.Pixel(col, row*2)
			bottom := t.canvas.Pixel(col, row*2+1)
			r, style := cellFor(top, bottom)
			t.screen.SetContent(offX+col, offY+row, r, nil, style)
		}
	}
	if offX > 0 || offY > 0 {
		t.drawBorder(offX-1, offY-1, cw+1, ch+1)
	}

	t.surface.EachText(func(col, row int, text string, c color.NRGBA) {
		style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(rgb(c)).Bold(true)
		x := offX + col - 1
		for _, r := range text {
			t.screen.SetContent(x, offY+row-1, r, nil, style)
			x++
		}
	})

	t.screen.Show()
	return nil
}

// cellFor picks the rune and style showing two stacked sub-pixels.
func cellFor(top, bottom color.NRGBA) (rune, tcell.Style) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	switch {
	case top.A == 0 && bottom.A == 0:
		return ' ', base
	case bottom.A == 0:
		return draw.BlockUpperHalf, base.Foreground(rgb(top))
	case top.A == 0:
		return draw.BlockLowerHalf, base.Foreground(rgb(bottom))
	case top == bottom:
		return draw.BlockFull, base.Foreground(rgb(top))
	}
	return draw.BlockUpperHalf, base.Foreground(rgb(top)).Background(rgb(bottom))
}

// drawBorder frames the w×h box whose top-left corner is (x, y).
func (t *Screen[F]) drawBorder(x, y, w, h int) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	for i := x + 1; i < x+w; i++ {
		t.screen.SetContent(i, y, '─', nil, style)
		t.screen.SetContent(i, y+h, '─', nil, style)
	}
	for j := y + 1; j < y+h; j++ {
		t.screen.SetContent(x, j, '│', nil, style)
		t.screen.SetContent(x+w, j, '│', nil, style)
	}
	t.screen.SetContent(x, y, '┌', nil, style)
	t.screen.SetContent(x+w, y, '┐', nil, style)
	t.screen.SetContent(x, y+h, '└', nil, style)
	t.screen.SetContent(x+w, y+h, '┘', nil, style)
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp limits the drawing area to the maximum render resolution.
func clamp(w, h int) (int, int) {
	return min(w, config.MaxTermWidth), min(h, config.MaxTermHeight)
}
