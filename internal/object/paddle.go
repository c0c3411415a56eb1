package object

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/spacepong/internal/effect"
	"github.com/tomz197/spacepong/internal/physics"
)

// Paddle height limits applied by grow and shrink effects.
const (
	MinPaddleHeight = 50
	MaxPaddleHeight = 150
)

// aiDeadband is the distance below which a computer paddle holds still.
const aiDeadband = 5

// Control selects who moves a paddle.
type Control int

const (
	Human Control = iota
	Computer
)

func (c Control) String() string {
	if c == Computer {
		return "computer"
	}
	return "human"
}

// Difficulty tunes the computer opponent.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseDifficulty maps a case-insensitive name to a difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, nil
	case "", "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", name)
}

// PredictionError is the half-width of the random aim error.
func (d Difficulty) PredictionError() float64 {
	switch d {
	case Easy:
		return 30
	case Hard:
		return 5
	default:
		return 15
	}
}

// SpeedFactor is the fraction of full paddle speed the computer moves at.
func (d Difficulty) SpeedFactor() float64 {
	switch d {
	case Easy:
		return 0.2
	case Hard:
		return 1.0
	default:
		return 0.5
	}
}

// Paddle is one player's bat.
type Paddle struct {
	X, Y       float64
	Width      float64
	BaseHeight float64
	Height     float64
	Speed      float64
	Control    Control
	Difficulty Difficulty
	Effects    effect.List

	// Shield and laser only carry state for presenters; no rule reads them.
	ShieldActive bool
	LaserActive  bool
	LaserY       float64 // Paddle center when the laser was picked up
}

// NewPaddle creates a paddle with its top-left corner at (x, y).
func NewPaddle(x, y, width, height, speed float64, control Control) *Paddle {
	return &Paddle{
		X:          x,
		Y:          y,
		Width:      width,
		BaseHeight: height,
		Height:     height,
		Speed:      speed,
		Control:    control,
		Difficulty: Medium,
	}
}

// PaddleInput is everything a paddle needs to move for one tick.
type PaddleInput struct {
	Up, Down bool    // Held keys, used by human paddles
	BallY    float64 // Ball tracked by computer paddles
	Rand     Rand
}

// Update expires finished effects, then moves the paddle and keeps it on
// screen.
func (p *Paddle) Update(in PaddleInput, screen Screen) {
	p.Effects.Tick()

	switch p.Control {
	case Human:
		if in.Up && p.Y > 0 {
			p.Y -= p.Speed
		}
		if in.Down && p.Y < screen.Height-p.Height {
			p.Y += p.Speed
		}
	case Computer:
		if in.Rand != nil {
			p.aiMove(in.BallY, in.Rand)
		}
	}

	p.Y = physics.Clamp(p.Y, 0, screen.Height-p.Height)
}

// aiMove steers toward the ball with a random aim error.
func (p *Paddle) aiMove(ballY float64, rng Rand) {
	spread := p.Difficulty.PredictionError()
	target := ballY - p.Height/2 + RandRange(rng, -spread, spread)

	if math.Abs(target-p.Y) <= aiDeadband {
		return
	}
	step := p.Speed * p.Difficulty.SpeedFactor()
	if target > p.Y {
		p.Y += step
	} else {
		p.Y -= step
	}
}

// ApplyEffect starts a paddle-scoped effect for duration ticks.
// Kinds that do not act on paddles are ignored.
func (p *Paddle) ApplyEffect(kind effect.Kind, duration int) {
	switch kind {
	case effect.PaddleGrow:
		p.Effects.Apply(kind, duration, func() {
			p.Height = math.Min(p.BaseHeight*1.5, MaxPaddleHeight)
		}, p.resetHeight)
	case effect.PaddleShrink:
		p.Effects.Apply(kind, duration, func() {
			p.Height = math.Max(p.BaseHeight*0.5, MinPaddleHeight)
		}, p.resetHeight)
	case effect.Shield:
		p.Effects.Apply(kind, duration, func() {
			p.ShieldActive = true
		}, func() {
			p.ShieldActive = false
		})
	case effect.Laser:
		p.Effects.Apply(kind, duration, func() {
			p.LaserActive = true
			p.LaserY = p.CenterY()
		}, func() {
			p.LaserActive = false
		})
	}
}

func (p *Paddle) resetHeight() {
	p.Height = p.BaseHeight
}

// ShieldDuration returns the ticks left on the shield.
func (p *Paddle) ShieldDuration() int {
	return p.Effects.Remaining(effect.Shield)
}

// LaserDuration returns the ticks left on the laser.
func (p *Paddle) LaserDuration() int {
	return p.Effects.Remaining(effect.Laser)
}

// Rect returns the paddle's bounding box.
func (p *Paddle) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// CenterY returns the vertical center of the paddle.
func (p *Paddle) CenterY() float64 {
	return p.Y + p.Height/2
}
