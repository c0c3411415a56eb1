package tui

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/object"
	"github.com/tomz197/spacepong/internal/render"
)

func drawLabel(s render.Surface, label string) {
	s.Clear(object.Black)
	s.FillRect(0, 0, 10, 100, object.White)
	s.Text(40, 40, label, 1, object.Gold)
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.SetSize(w, h)
	return s
}

// pollUntil polls until a frame with a key-down arrives or time runs out.
func pollUntil(t *testing.T, fe *Screen[string]) input.Frame {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		in, err := fe.Poll()
		if err != nil {
			t.Fatalf("Poll() error = %v", err)
		}
		if len(in.Pressed) > 0 {
			return in
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no key arrived")
	return input.Frame{}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want input.Key
	}{
		{tcell.KeyUp, 0, input.KeyUp},
		{tcell.KeyDown, 0, input.KeyDown},
		{tcell.KeyEscape, 0, input.KeyEscape},
		{tcell.KeyCtrlC, 0, input.KeyQuit},
		{tcell.KeyRune, 'w', input.KeyW},
		{tcell.KeyRune, 'S', input.KeyS},
		{tcell.KeyRune, ' ', input.KeySpace},
		{tcell.KeyRune, '2', input.Key2},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			s := newSimScreen(t, 40, 20)
			fe := New(s, 100, 100, drawLabel, time.Second)
			defer fe.Close()

			s.InjectKey(tt.key, tt.r, tcell.ModNone)
			in := pollUntil(t, fe)
			if in.Pressed[0] != tt.want {
				t.Errorf("pressed %v, want %v", in.Pressed, tt.want)
			}
			if !in.Holding(tt.want) {
				t.Errorf("%v not held", tt.want)
			}
		})
	}
}

func TestKeyForIgnoresUnknown(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone),
	} {
		if k := keyFor(ev); k != input.KeyNone {
			t.Errorf("keyFor(%s) = %v, want none", ev.Name(), k)
		}
	}
}

func TestPresent(t *testing.T) {
	s := newSimScreen(t, 40, 20)
	fe := New(s, 100, 100, drawLabel, 0)
	defer fe.Close()

	if err := fe.Present("PONG"); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	cells, w, _ := s.GetContents()
	at := func(x, y int) tcell.SimCell { return cells[y*w+x] }

	// The white bar covers the first four columns top to bottom.
	c := at(0, 5)
	if len(c.Runes) == 0 || c.Runes[0] != '█' {
		t.Errorf("bar cell = %q", c.Runes)
	}
	if fg, _, _ := c.Style.Decompose(); fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("bar color = %v", fg)
	}
	if c := at(20, 15); len(c.Runes) > 0 && c.Runes[0] != ' ' {
		t.Errorf("background cell = %q", c.Runes)
	}

	var text []rune
	for x := 10; x < w; x++ {
		if r := at(x, 8).Runes; len(r) > 0 && r[0] != ' ' {
			text = append(text, r[0])
		}
	}
	if string(text) != "PONG" {
		t.Errorf("text row = %q, want PONG", string(text))
	}
}

func TestPresentCentersLargeScreens(t *testing.T) {
	s := newSimScreen(t, 260, 80)
	fe := New(s, 100, 100, drawLabel, 0)
	defer fe.Close()

	if err := fe.Present(""); err != nil {
		t.Fatal(err)
	}
	cells, w, _ := s.GetContents()
	// 200×60 area centered at (30, 10), border one cell outside it.
	if r := cells[9*w+29].Runes; len(r) == 0 || r[0] != '┌' {
		t.Errorf("corner = %q", r)
	}
	if r := cells[20*w+30].Runes; len(r) == 0 || r[0] != '█' {
		t.Errorf("first canvas column = %q", r)
	}
}

func TestCellFor(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	tests := []struct {
		name        string
		top, bottom color.NRGBA
		want        rune
	}{
		{"empty", color.NRGBA{}, color.NRGBA{}, ' '},
		{"top only", red, color.NRGBA{}, '▀'},
		{"bottom only", color.NRGBA{}, blue, '▄'},
		{"same", red, red, '█'},
		{"split", red, blue, '▀'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, style := cellFor(tt.top, tt.bottom)
			if r != tt.want {
				t.Errorf("rune = %q, want %q", r, tt.want)
			}
			if tt.name == "split" {
				fg, bg, _ := style.Decompose()
				if fg != rgb(red) || bg != rgb(blue) {
					t.Errorf("colors = %v/%v", fg, bg)
				}
			}
		})
	}
}

func TestPollAfterClose(t *testing.T) {
	fe := New(newSimScreen(t, 40, 20), 100, 100, drawLabel, 0)
	fe.Close()
	if _, err := fe.Poll(); !errors.Is(err, loop.ErrQuit) {
		t.Errorf("Poll() after Close = %v, want ErrQuit", err)
	}
}
