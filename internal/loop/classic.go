package loop

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/object"
	"github.com/tomz197/spacepong/internal/physics"
)

// Classic is the bare two-player variant: two paddles, a square ball and an
// endless score. There are no menus; Esc or Quit ends it.
type Classic struct {
	screen  object.Screen
	left    *object.Paddle // W/S
	right   *object.Paddle // Up/Down
	ball    physics.Rect
	vel     physics.Vec2
	scoreL  int
	scoreR  int
	running bool
	tick    uint64
	log     *logrus.Entry
}

// ClassicFrame is the presenter snapshot of a Classic game.
type ClassicFrame struct {
	Width      float64
	Height     float64
	Left       PaddleView
	Right      PaddleView
	Ball       physics.Rect
	ScoreLeft  int
	ScoreRight int
}

// NewClassic creates a classic game with the ball in the middle heading
// down and to the right.
func NewClassic(log *logrus.Entry) *Classic {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &Classic{
		screen:  object.Screen{Width: config.ClassicWidth, Height: config.ClassicHeight},
		running: true,
		log:     log,
	}
	y := c.screen.Height/2 - config.ClassicPaddleHeight/2
	c.left = object.NewPaddle(config.ClassicPaddleInset, y,
		config.ClassicPaddleWidth, config.ClassicPaddleHeight, config.ClassicPaddleSpeed, object.Human)
	c.right = object.NewPaddle(c.screen.Width-config.ClassicPaddleInset-config.ClassicPaddleWidth, y,
		config.ClassicPaddleWidth, config.ClassicPaddleHeight, config.ClassicPaddleSpeed, object.Human)
	c.serve(1)
	return c
}

// Running reports whether the game wants more ticks.
func (c *Classic) Running() bool { return c.running }

// Scores returns the left and right scores.
func (c *Classic) Scores() (left, right int) { return c.scoreL, c.scoreR }

// Update advances the game by one tick.
func (c *Classic) Update(in input.Frame) {
	c.tick++
	for _, k := range in.Pressed {
		if k == input.KeyEscape || k == input.KeyQuit {
			c.running = false
			return
		}
	}

	c.left.Update(object.PaddleInput{Up: in.Holding(input.KeyW), Down: in.Holding(input.KeyS)}, c.screen)
	c.right.Update(object.PaddleInput{Up: in.Holding(input.KeyUp), Down: in.Holding(input.KeyDown)}, c.screen)

	c.ball.X += c.vel.X
	c.ball.Y += c.vel.Y

	switch {
	case c.ball.Y < 0:
		c.vel.Y = math.Abs(c.vel.Y)
	case c.ball.Y > c.screen.Height-c.ball.H:
		c.vel.Y = -math.Abs(c.vel.Y)
	}

	c.bounce()

	switch {
	case c.ball.X < 0:
		c.scoreR++
		c.logScore()
		c.serve(1)
	case c.ball.X > c.screen.Width-c.ball.W:
		c.scoreL++
		c.logScore()
		c.serve(-1)
	}
}

// bounce reflects the ball off a paddle it has reached while moving toward
// it and pushes it back out so it cannot stick.
func (c *Classic) bounce() {
	l, r := c.left.Rect(), c.right.Rect()
	overlapsY := func(p physics.Rect) bool {
		return c.ball.Bottom() > p.Y && c.ball.Y < p.Bottom()
	}

	if c.vel.X < 0 && c.ball.X <= l.Right() && overlapsY(l) {
		c.vel.X = -c.vel.X
		c.ball.X = l.Right()
	}
	if c.vel.X > 0 && c.ball.Right() >= r.X && overlapsY(r) {
		c.vel.X = -c.vel.X
		c.ball.X = r.X - c.ball.W
	}
}

// serve recenters the ball, moving diagonally down in horizontal
// direction dir.
func (c *Classic) serve(dir float64) {
	size := float64(config.ClassicBallSize)
	c.ball = physics.Rect{
		X: c.screen.Width/2 - size/2,
		Y: c.screen.Height/2 - size/2,
		W: size,
		H: size,
	}
	c.vel = physics.Vec2{X: dir * config.ClassicBallSpeed, Y: config.ClassicBallSpeed}
}

func (c *Classic) logScore() {
	c.log.WithFields(logrus.Fields{
		"left":  c.scoreL,
		"right": c.scoreR,
	}).Info("score")
}

// Frame snapshots the current game state.
func (c *Classic) Frame() ClassicFrame {
	return ClassicFrame{
		Width:      c.screen.Width,
		Height:     c.screen.Height,
		Left:       viewPaddle(c.left),
		Right:      viewPaddle(c.right),
		Ball:       c.ball,
		ScoreLeft:  c.scoreL,
		ScoreRight: c.scoreR,
	}
}
