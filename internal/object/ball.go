package object

import (
	"math"

	"github.com/tomz197/spacepong/internal/physics"
)

// TrailLength is the number of past positions a ball remembers.
const TrailLength = 10

// Ball is a moving ball. Vel is the per-tick displacement before the speed
// multiplier is applied.
type Ball struct {
	ID              uint64
	Pos             physics.Vec2
	Vel             physics.Vec2
	Radius          float64
	BaseSpeed       float64
	SpeedMultiplier float64        // Always > 0
	Trail           []physics.Vec2 // Oldest first, at most TrailLength entries
	Magnetic        bool
	MagneticForce   float64
	destroyed       bool
}

// NewBall creates a ball at rest at (x, y).
func NewBall(id uint64, x, y, radius, baseSpeed float64) *Ball {
	return &Ball{
		ID:              id,
		Pos:             physics.Vec2{X: x, Y: y},
		Radius:          radius,
		BaseSpeed:       baseSpeed,
		SpeedMultiplier: 1,
		Trail:           make([]physics.Vec2, 0, TrailLength),
	}
}

// Serve places the ball at pos and launches it at base speed with a random
// angle in [-0.5, 0.5] radians. dir is the horizontal sign (+1 right, -1 left).
// Multiplier, trail and magnet state are reset.
func (b *Ball) Serve(pos physics.Vec2, dir float64, rng Rand) {
	angle := RandRange(rng, -0.5, 0.5)
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}

	b.Pos = pos
	b.Vel = physics.Vec2{
		X: b.BaseSpeed * math.Cos(angle) * dir,
		Y: b.BaseSpeed * math.Sin(angle),
	}
	b.SpeedMultiplier = 1
	b.Trail = b.Trail[:0]
	b.Magnetic = false
	b.MagneticForce = 0
}

// Update advances the ball one tick and bounces it off the top and bottom
// edges. The position is clamped into [Radius, height-Radius] after the
// velocity has been reflected.
func (b *Ball) Update(screen Screen) {
	b.Pos = b.Pos.Add(b.Vel.Scale(b.SpeedMultiplier))

	if len(b.Trail) == TrailLength {
		copy(b.Trail, b.Trail[1:])
		b.Trail = b.Trail[:TrailLength-1]
	}
	b.Trail = append(b.Trail, b.Pos)

	top, bottom := b.Radius, screen.Height-b.Radius
	switch {
	case b.Pos.Y <= top:
		b.Vel.Y = math.Abs(b.Vel.Y)
	case b.Pos.Y >= bottom:
		b.Vel.Y = -math.Abs(b.Vel.Y)
	}
	b.Pos.Y = physics.Clamp(b.Pos.Y, top, bottom)
}

// Rect returns the ball's bounding box.
func (b *Ball) Rect() physics.Rect {
	return physics.Square(b.Pos.X, b.Pos.Y, b.Radius)
}

// PaddleCollision bounces the ball off p if their boxes intersect.
//
// The vertical velocity is set from where the ball struck the paddle
// relative to its center, the horizontal velocity is pointed away from the
// paddle, and the ball speeds up by 5% while below twice its base speed.
// Finally the ball is moved flush against the paddle face so it no longer
// overlaps. Returns true on a hit.
func (b *Ball) PaddleCollision(p *Paddle, screen Screen) bool {
	pr := p.Rect()
	if !b.Rect().Intersects(pr) {
		return false
	}

	offset := physics.Clamp((b.Pos.Y-p.CenterY())/(pr.H/2), -1, 1)
	leftSide := pr.X < screen.Width/2

	if leftSide {
		b.Vel.X = math.Abs(b.Vel.X)
	} else {
		b.Vel.X = -math.Abs(b.Vel.X)
	}
	b.Vel.Y = offset * b.BaseSpeed * 0.75

	if b.Vel.Len() < b.BaseSpeed*2 {
		b.Vel = b.Vel.Scale(1.05)
	}

	if leftSide {
		b.Pos.X = pr.Right() + b.Radius
	} else {
		b.Pos.X = pr.X - b.Radius
	}
	return true
}

// Split returns a new ball at b's position moving with b's velocity
// mirrored vertically.
func (b *Ball) Split(id uint64) *Ball {
	nb := NewBall(id, b.Pos.X, b.Pos.Y, b.Radius, b.BaseSpeed)
	nb.Vel = physics.Vec2{X: b.Vel.X, Y: -b.Vel.Y}
	return nb
}

// SetMagnetic attaches a magnetic charge to the ball. Nothing pulls on it yet;
// presenters only use it to tint the ball.
func (b *Ball) SetMagnetic(force float64) {
	b.Magnetic = true
	b.MagneticForce = force
}

// OffField reports whether the ball has left the field horizontally and
// which side it left through (-1 left, +1 right).
func (b *Ball) OffField(screen Screen) (side int, out bool) {
	switch {
	case b.Pos.X < 0:
		return -1, true
	case b.Pos.X > screen.Width:
		return 1, true
	}
	return 0, false
}

// MarkDestroyed marks the ball for removal.
func (b *Ball) MarkDestroyed() { b.destroyed = true }

// IsDestroyed returns true if the ball is marked for removal.
func (b *Ball) IsDestroyed() bool { return b.destroyed }
