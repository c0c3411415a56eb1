// Package window is the desktop frontend. Ebiten owns the window and its
// own update cadence, so the window keeps the latest frame handed to
// Present and redraws it on every ebiten tick while loop.Run drives the
// simulation from another goroutine.
package window

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/inpututil"

	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/render"
)

// errClosed ends ebiten's run loop once the simulation is done.
var errClosed = errors.New("window closed")

var keyMap = []struct {
	ebiten ebiten.Key
	key    input.Key
}{
	{ebiten.KeyUp, input.KeyUp},
	{ebiten.KeyDown, input.KeyDown},
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyEscape, input.KeyEscape},
	{ebiten.Key1, input.Key1},
	{ebiten.Key2, input.Key2},
	{ebiten.Key3, input.Key3},
	{ebiten.KeyE, input.KeyE},
	{ebiten.KeyM, input.KeyM},
	{ebiten.KeyH, input.KeyH},
	{ebiten.KeyQ, input.KeyQuit},
}

// keyState reports the keyboard for one ebiten tick.
type keyState struct {
	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
}

var ebitenKeys = keyState{
	pressed:     ebiten.IsKeyPressed,
	justPressed: inpututil.IsKeyJustPressed,
}

// Window is a loop.Frontend[F] and an ebiten game.
type Window[F any] struct {
	width, height int
	title         string
	present       func(render.Surface, F)
	keys          keyState

	mu       sync.Mutex
	pending  []input.Key
	held     input.KeySet
	frame    F
	hasFrame bool
	closed   bool // Window gone, Poll reports ErrQuit
	done     bool // Simulation over, ebiten loop should stop
}

// New creates a window of the given logical size. Nothing is shown until
// Run is called.
func New[F any](width, height int, title string, present func(render.Surface, F)) *Window[F] {
	return &Window[F]{
		width:   width,
		height:  height,
		title:   title,
		present: present,
		keys:    ebitenKeys,
	}
}

// Run opens the window and blocks until it is closed or Stop is called.
// It must be called from the main goroutine.
func (w *Window[F]) Run() error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGame(w)

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	if errors.Is(err, errClosed) {
		return nil
	}
	return err
}

// Stop asks the ebiten loop to exit on its next tick.
func (w *Window[F]) Stop() {
	w.mu.Lock()
	w.done = true
	w.mu.Unlock()
}

// Update is called by ebiten on every tick. It records the keyboard and
// draws the most recent frame.
func (w *Window[F]) Update(screen *ebiten.Image) error {
	w.captureInput()

	w.mu.Lock()
	done := w.done
	frame, ok := w.frame, w.hasFrame
	w.mu.Unlock()

	if done {
		return errClosed
	}
	if ok && !ebiten.IsDrawingSkipped() {
		w.present(NewSurface(screen), frame)
	}
	return nil
}

// Layout keeps the field at its logical size; ebiten scales it to the window.
func (w *Window[F]) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

func (w *Window[F]) captureInput() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.held = 0
	for _, m := range keyMap {
		if w.keys.justPressed(m.ebiten) {
			w.pending = append(w.pending, m.key)
		}
		if w.keys.pressed(m.ebiten) {
			w.held.Add(m.key)
		}
	}
}

// Poll returns the keys pressed since the previous poll.
func (w *Window[F]) Poll() (input.Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return input.Frame{}, loop.ErrQuit
	}
	in := input.Frame{Pressed: w.pending, Held: w.held}
	w.pending = nil
	return in, nil
}

// Present hands f to the window for drawing.
func (w *Window[F]) Present(f F) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frame = f
	w.hasFrame = true
	return nil
}
