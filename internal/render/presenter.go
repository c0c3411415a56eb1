package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/tomz197/spacepong/internal/loop"
	"github.com/tomz197/spacepong/internal/object"
)

// Title shown on the menu.
const Title = "SPACE PING PONG"

var rainbow = [...]color.RGBA{
	{255, 100, 100, 255},
	{255, 150, 0, 255},
	{255, 255, 0, 255},
	{100, 255, 100, 255},
	{100, 150, 255, 255},
	{150, 100, 255, 255},
	{255, 100, 255, 255},
}

type menuItem struct {
	text string
	clr  color.RGBA
}

// Presenter draws Space Pong frames.
type Presenter struct{}

// Draw renders f onto s.
func (Presenter) Draw(s Surface, f loop.Frame) {
	s.Clear(object.Black)
	drawStars(s, f.Stars)

	switch f.Mode {
	case loop.ModeMenu:
		drawMenu(s, f)
	case loop.ModePlaying:
		drawField(s, f)
	case loop.ModePaused:
		drawField(s, f)
		drawPaused(s, f)
	case loop.ModeGameOver:
		drawField(s, f)
		drawGameOver(s, f)
	case loop.ModeHighScores:
		drawHighScores(s, f)
	}
}

func drawStars(s Surface, stars []object.Star) {
	for _, st := range stars {
		b := st.Brightness
		s.FillCircle(st.Pos.X, st.Pos.Y, st.Size, color.RGBA{b, b, b, 255})
	}
}

func drawMenu(s Surface, f loop.Frame) {
	// Gradient in 4-pixel bands
	for y := 0.0; y < f.Height; y += 4 {
		g := y / f.Height
		s.FillRect(0, y, f.Width, 4, color.RGBA{
			R: uint8(20 + 30*g*f.MenuPulse),
			G: uint8(10 + 50*g),
			B: uint8(40 + 60*g),
			A: 255,
		})
	}

	const titleScale = 4
	x := f.Width/2 - TextWidth(Title, titleScale)/2
	for i, ch := range Title {
		if ch == ' ' {
			continue
		}
		c := rainbow[(i+f.MenuTime/10)%len(rainbow)]
		c.R = uint8(float64(c.R) * f.MenuPulse)
		c.G = uint8(float64(c.G) * f.MenuPulse)
		c.B = uint8(float64(c.B) * f.MenuPulse)
		s.Text(x+float64(i)*GlyphWidth*titleScale, 100, string(ch), titleScale, c)
	}

	items := []menuItem{
		{"1. PLAY VS COMPUTER", object.Cyan},
		{"2. PLAY VS HUMAN", object.Purple},
		{"3. HIGH SCORES", object.Gold},
		{"", object.White},
		{"DIFFICULTY: " + strings.ToUpper(f.Difficulty), object.Green},
		{"(PRESS E/M/H TO CHANGE)", object.White},
		{"", object.White},
		{"SPACE: PAUSE GAME", object.Gold},
		{"ESC: QUIT", object.Red},
	}
	y := 300.0
	for _, it := range items {
		if it.text != "" {
			centerText(s, f.Width, y, it.text, 2, it.clr)
		}
		y += 40
	}

	drawParticles(s, f.Particles)
}

func drawField(s Surface, f loop.Frame) {
	for y := 0.0; y < f.Height; y += 20 {
		s.FillRect(f.Width/2-2+f.ShakeX, y+f.ShakeY, 4, 10, object.White)
	}

	drawPaddle(s, f.Left)
	drawPaddle(s, f.Right)

	for _, b := range f.Balls {
		drawBall(s, b)
	}
	for _, p := range f.PowerUps {
		c := KindColor(p.Kind)
		s.StrokeCircle(p.Pos.X, p.Pos.Y, p.Pulse, c)
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Size/2, c)
	}
	drawParticles(s, f.Particles)

	// Player 1 (right paddle) is shown right of center.
	s.FillRect(f.Width/2+20, 40, 50, 40, withAlpha(object.Cyan, 100))
	s.FillRect(f.Width/2-70, 40, 50, 40, withAlpha(object.Pink, 100))
	s.Text(f.Width/2+35, 50, fmt.Sprint(f.ScoreRight), 3, object.White)
	s.Text(f.Width/2-55, 50, fmt.Sprint(f.ScoreLeft), 3, object.White)

	if f.FreezeTicks > 0 {
		s.FillRect(0, 0, f.Width, f.Height, color.NRGBA{0, 0, 255, 50})
		s.Text(f.Width/2-70, f.Height/2-10, "FROZEN!", 4, object.Blue)
	}
}

func drawPaddle(s Surface, p loop.PaddleView) {
	c := object.White
	switch {
	case p.Grown:
		c = object.Green
	case p.Shrunk:
		c = object.Red
	}
	s.FillRect(p.X, p.Y, p.Width, p.Height, c)

	if p.Shield {
		s.StrokeRect(p.X-5, p.Y-5, p.Width+10, p.Height+10, object.Gold)
	}
	if p.Laser {
		s.Line(p.X, p.LaserY, p.X-200, p.LaserY, object.Orange)
	}
}

func drawBall(s Surface, b loop.BallView) {
	for i, t := range b.Trail {
		a := float64(i) / float64(len(b.Trail)) * 0.3
		s.FillCircle(t.X, t.Y, b.Radius, withAlpha(object.Cyan, uint8(255*a)))
	}
	c := object.White
	if b.Magnetic {
		c = object.Pink
	}
	s.FillCircle(b.Pos.X, b.Pos.Y, b.Radius, c)
	s.StrokeCircle(b.Pos.X, b.Pos.Y, b.Radius, object.Cyan)
}

func drawParticles(s Surface, ps []loop.ParticleView) {
	for _, p := range ps {
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Size, withAlpha(p.Color, p.Color.A))
	}
}

func drawPaused(s Surface, f loop.Frame) {
	s.FillRect(0, 0, f.Width, f.Height, color.NRGBA{0, 0, 0, 128})
	s.Text(f.Width/2-60, f.Height/2-20, "PAUSED", 5, object.White)
}

func drawGameOver(s Surface, f loop.Frame) {
	s.FillRect(0, 0, f.Width, f.Height, color.NRGBA{0, 0, 0, 128})

	winner := f.Winner
	if winner == "" {
		winner = "PLAYER 2"
		if f.ScoreRight > f.ScoreLeft {
			winner = "PLAYER 1"
		}
	}
	centerText(s, f.Width, f.Height/2-50, winner+" WINS!", 3, object.Gold)
	centerText(s, f.Width, f.Height/2, fmt.Sprintf("%d - %d", f.ScoreRight, f.ScoreLeft), 2, object.White)
	s.Text(f.Width/2-120, f.Height/2+50, "SPACE: PLAY AGAIN", 2, object.Cyan)
	s.Text(f.Width/2-60, f.Height/2+80, "ESC: MENU", 2, object.Cyan)
}

func drawHighScores(s Surface, f loop.Frame) {
	s.Text(f.Width/2-80, 150, "HIGH SCORES", 4, object.Cyan)

	y := 250.0
	if len(f.HighScores) == 0 {
		s.Text(f.Width/2-120, y, "NO MATCHES YET", 2, object.White)
	}
	for i, r := range f.HighScores {
		line := fmt.Sprintf("%d. %s - %d:%d", i+1, r.Winner, r.Right, r.Left)
		s.Text(f.Width/2-120, y, line, 2, object.White)
		y += 40
	}

	s.Text(f.Width/2-100, f.Height-100, "ESC: BACK TO MENU", 2, object.Gold)
}

func centerText(s Surface, width, y float64, text string, scale float64, c color.Color) {
	s.Text(width/2-TextWidth(text, scale)/2, y, text, scale, c)
}
