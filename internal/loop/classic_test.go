package loop

import (
	"testing"

	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/physics"
)

func TestNewClassic(t *testing.T) {
	c := NewClassic(logging.Discard())
	f := c.Frame()
	if f.Width != 640 || f.Height != 480 {
		t.Errorf("field = %vx%v", f.Width, f.Height)
	}
	if f.Ball != (physics.Rect{X: 314, Y: 234, W: 12, H: 12}) {
		t.Errorf("ball = %+v", f.Ball)
	}
	if c.vel != (physics.Vec2{X: 5, Y: 5}) {
		t.Errorf("vel = %v", c.vel)
	}
	if f.Left.X != 30 || f.Right.X != 600 || f.Left.Height != 80 {
		t.Errorf("paddles = %+v %+v", f.Left, f.Right)
	}
	if !c.Running() {
		t.Error("not running")
	}
}

func TestClassicScoring(t *testing.T) {
	tests := []struct {
		name          string
		x             float64
		vel           physics.Vec2
		wantL, wantR  int
		wantServeDirX float64
	}{
		{"left wall", 2, physics.Vec2{X: -5, Y: 5}, 0, 1, 5},
		{"right wall", 626, physics.Vec2{X: 5, Y: 5}, 1, 0, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassic(logging.Discard())
			c.ball.X, c.ball.Y = tt.x, 10
			c.vel = tt.vel

			c.Update(input.Frame{})

			if l, r := c.Scores(); l != tt.wantL || r != tt.wantR {
				t.Errorf("scores = %d-%d, want %d-%d", l, r, tt.wantL, tt.wantR)
			}
			if c.ball.X != 314 || c.ball.Y != 234 {
				t.Errorf("ball not recentered: %+v", c.ball)
			}
			if c.vel.X != tt.wantServeDirX || c.vel.Y != 5 {
				t.Errorf("serve vel = %v", c.vel)
			}
		})
	}
}

func TestClassicBounce(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		vel   physics.Vec2
		wantX float64
		wantV float64
	}{
		{"left paddle", 44, physics.Vec2{X: -5}, 40, 5},
		{"right paddle", 584, physics.Vec2{X: 5}, 588, -5},
		{"moving away from left paddle", 30, physics.Vec2{X: 5}, 35, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassic(logging.Discard())
			c.ball.X, c.ball.Y = tt.x, 230
			c.vel = tt.vel

			c.Update(input.Frame{})

			if c.ball.X != tt.wantX || c.vel.X != tt.wantV {
				t.Errorf("ball x = %v vx = %v, want %v %v", c.ball.X, c.vel.X, tt.wantX, tt.wantV)
			}
		})
	}
}

func TestClassicWalls(t *testing.T) {
	c := NewClassic(logging.Discard())
	c.ball.X, c.ball.Y = 300, 2
	c.vel = physics.Vec2{X: 5, Y: -5}
	c.Update(input.Frame{})
	if c.vel.Y != 5 {
		t.Errorf("vy = %v after top wall", c.vel.Y)
	}

	c.ball.Y = 470
	c.vel.Y = 5
	c.Update(input.Frame{})
	if c.vel.Y != -5 {
		t.Errorf("vy = %v after bottom wall", c.vel.Y)
	}
}

func TestClassicControls(t *testing.T) {
	c := NewClassic(logging.Discard())
	var held input.KeySet
	held.Add(input.KeyW)
	held.Add(input.KeyDown)

	c.Update(input.Frame{Held: held})

	if c.left.Y != 194 || c.right.Y != 206 {
		t.Errorf("left y = %v right y = %v", c.left.Y, c.right.Y)
	}

	ballX := c.ball.X
	c.Update(input.Frame{Pressed: []input.Key{input.KeyEscape}})
	if c.Running() {
		t.Error("Esc did not stop the game")
	}
	if c.ball.X != ballX {
		t.Error("ball moved on the stopping tick")
	}
}
