package window

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten"

	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/render"
)

var (
	_ render.Surface     = (*Surface)(nil)
	_ loop.Frontend[int] = (*Window[int])(nil)
	_ ebiten.Game        = (*Window[int])(nil)
)

func fakeKeys(down, just map[ebiten.Key]bool) keyState {
	return keyState{
		pressed:     func(k ebiten.Key) bool { return down[k] },
		justPressed: func(k ebiten.Key) bool { return just[k] },
	}
}

func TestPollCollectsKeys(t *testing.T) {
	w := New(1200, 800, "test", func(render.Surface, int) {})

	w.keys = fakeKeys(
		map[ebiten.Key]bool{ebiten.KeyUp: true, ebiten.KeyW: true},
		map[ebiten.Key]bool{ebiten.KeyUp: true},
	)
	w.captureInput()
	w.keys = fakeKeys(
		map[ebiten.Key]bool{ebiten.KeyUp: true, ebiten.KeySpace: true},
		map[ebiten.Key]bool{ebiten.KeySpace: true},
	)
	w.captureInput()

	in, err := w.Poll()
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(in.Pressed) != 2 || in.Pressed[0] != input.KeyUp || in.Pressed[1] != input.KeySpace {
		t.Errorf("pressed = %v, want [up space]", in.Pressed)
	}
	if !in.Holding(input.KeyUp) || !in.Holding(input.KeySpace) || in.Holding(input.KeyW) {
		t.Errorf("held = %b, want the latest tick only", in.Held)
	}

	in, _ = w.Poll()
	if len(in.Pressed) != 0 {
		t.Errorf("pressed = %v on second poll", in.Pressed)
	}
}

func TestQuitKey(t *testing.T) {
	w := New(100, 100, "test", func(render.Surface, int) {})
	w.keys = fakeKeys(nil, map[ebiten.Key]bool{ebiten.KeyQ: true})
	w.captureInput()

	in, _ := w.Poll()
	if !in.Quit() {
		t.Error("Q did not produce a quit key")
	}
}

func TestPollAfterClose(t *testing.T) {
	w := New(100, 100, "test", func(render.Surface, int) {})
	if err := w.Present(3); err != nil {
		t.Fatal(err)
	}
	if !w.hasFrame || w.frame != 3 {
		t.Errorf("frame = %v/%v", w.frame, w.hasFrame)
	}

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	if _, err := w.Poll(); !errors.Is(err, loop.ErrQuit) {
		t.Errorf("Poll() = %v, want ErrQuit", err)
	}
}

func TestLayout(t *testing.T) {
	w := New(640, 480, "test", func(render.Surface, int) {})
	if gw, gh := w.Layout(1920, 1080); gw != 640 || gh != 480 {
		t.Errorf("Layout() = %dx%d", gw, gh)
	}
}

func TestCircleSpans(t *testing.T) {
	spans := circleSpans(50, 50, 10)
	if len(spans) != 21 {
		t.Fatalf("spans = %d, want 21", len(spans))
	}
	mid := spans[10]
	if mid.y != 50 || mid.x != 40 || mid.w != 20 {
		t.Errorf("middle span = %+v", mid)
	}
	for _, sp := range spans {
		if sp.w < 0 || sp.x < 40 || sp.x+sp.w > 60+1e-9 {
			t.Errorf("span %+v outside the circle", sp)
		}
		if math.Abs((sp.x+sp.w/2)-50) > 1e-9 {
			t.Errorf("span %+v not centered", sp)
		}
	}

	if tiny := circleSpans(5, 5, 0.2); len(tiny) != 1 || tiny[0].w != 1 {
		t.Errorf("tiny circle = %+v", tiny)
	}
}
