package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/tomz197/spacepong/internal/render"
)

var _ render.Surface = (*TermSurface)(nil)

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func TestCanvasScaling(t *testing.T) {
	// 10 columns x 5 rows = 10x10 sub-pixels for a 20x20 field.
	c := NewScaledCanvas(10, 5, 20, 20)
	c.SetFloat(10, 10, white)
	if got := c.Pixel(5, 5); got != white {
		t.Errorf("Pixel(5,5) = %v, want white", got)
	}
	if col, row := c.LogicalToTerminal(10, 10); col != 6 || row != 3 {
		t.Errorf("LogicalToTerminal = (%d,%d), want (6,3)", col, row)
	}
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(2.1, 2.1, 0.1, 0.1, red)
	if got := c.Pixel(2, 2); got != red {
		t.Errorf("tiny rect not drawn: %v", got)
	}

	c.Clear()
	c.FillRect(0, 0, 5, 2, red)
	for x := 0; x < 5; x++ {
		for y := 0; y < 2; y++ {
			if c.Pixel(x, y) != red {
				t.Errorf("Pixel(%d,%d) not filled", x, y)
			}
		}
	}
	if c.Pixel(5, 0).A != 0 || c.Pixel(0, 2).A != 0 {
		t.Error("rect spilled past its edge")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(10, 10, 3, white)
	if c.Pixel(10, 10) != white {
		t.Error("center not filled")
	}
	if c.Pixel(10, 7).A == 0 || c.Pixel(12, 10).A == 0 {
		t.Error("interior not filled")
	}
	if c.Pixel(14, 14).A != 0 {
		t.Error("corner outside the circle was filled")
	}

	// A circle smaller than a pixel still shows up.
	c.Clear()
	c.FillCircle(4.2, 4.2, 0.1, white)
	if c.Pixel(4, 4) != white {
		t.Error("sub-pixel circle not drawn")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawLine(Point{2, 3}, Point{15, 11}, white)
	if c.Pixel(2, 3) != white || c.Pixel(15, 11) != white {
		t.Error("line endpoints not set")
	}
}

func TestTranslucentBlend(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(0, 0, 4, 4, white)
	c.FillRect(0, 0, 4, 4, color.NRGBA{0, 0, 0, 128})
	got := c.Pixel(1, 1)
	if got.A != 255 || got.R < 120 || got.R > 135 {
		t.Errorf("blended = %v, want mid gray", got)
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0, white)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.Contains(first.String(), string(BlockUpperHalf)) {
		t.Errorf("first render missing upper half block: %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged canvas wrote %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;1H\033[0m ") {
		t.Errorf("cleared cell not blanked: %q", third.String())
	}
}

func TestRenderCellColors(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetFloat(0, 0, white)
	c.SetFloat(0, 1, red)

	var buf bytes.Buffer
	c.Render(&buf)
	want := "38;2;255;255;255;48;2;255;0;0m" + string(BlockUpperHalf)
	if !strings.Contains(buf.String(), want) {
		t.Errorf("render = %q, want %q", buf.String(), want)
	}
}

func TestTermSurfaceText(t *testing.T) {
	c := NewScaledCanvas(40, 10, 320, 160)
	s := NewTermSurface(c)
	s.Clear(color.Black)
	// Box centered at logical (160, 80) -> column 21, row 6.
	s.Text(160-render.TextWidth("HI", 2)/2, 80-6, "HI", 2, white)

	var out bytes.Buffer
	if err := s.Flush(NewChunkWriter(&out, 0, 0)); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !strings.Contains(out.String(), "\033[6;20H") || !strings.Contains(out.String(), "HI") {
		t.Errorf("text not placed at row 6 col 20: %q", out.String())
	}

	// The cells under the text are redrawn on the next frame.
	s.Clear(color.Black)
	out.Reset()
	if err := s.Flush(NewChunkWriter(&out, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[6;20H") {
		t.Errorf("text cells not invalidated: %q", out.String())
	}
}
