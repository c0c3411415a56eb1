package object

import (
	"math"

	"github.com/tomz197/spacepong/internal/effect"
	"github.com/tomz197/spacepong/internal/physics"
)

// Power-up defaults.
const (
	PowerUpSize     = 30
	PowerUpLifetime = 300 // Ticks
)

// PowerUp is a collectible floating on the field.
type PowerUp struct {
	ID       uint64
	Pos      physics.Vec2
	Kind     effect.Kind
	Size     float64 // Half-width of the pickup box
	Lifetime int     // Ticks remaining
	Phase    float64 // Float animation phase
	picked   bool
}

// NewPowerUp creates a power-up of the given kind at (x, y).
func NewPowerUp(id uint64, x, y float64, kind effect.Kind) *PowerUp {
	return &PowerUp{
		ID:       id,
		Pos:      physics.Vec2{X: x, Y: y},
		Kind:     kind,
		Size:     PowerUpSize,
		Lifetime: PowerUpLifetime,
	}
}

// Update ages the power-up and bobs it up and down.
func (p *PowerUp) Update() {
	p.Lifetime--
	p.Phase += 0.1
	p.Pos.Y += math.Sin(p.Phase) * 0.5
}

// Rect returns the pickup box.
func (p *PowerUp) Rect() physics.Rect {
	return physics.Square(p.Pos.X, p.Pos.Y, p.Size)
}

// Pulse returns the radius of the animated outer ring.
func (p *PowerUp) Pulse() float64 {
	return math.Abs(math.Sin(p.Phase*2))*5 + p.Size
}

// Alive reports whether the power-up is still on the field.
func (p *PowerUp) Alive() bool {
	return p.Lifetime > 0 && !p.picked
}

// MarkDestroyed marks the power-up as collected.
func (p *PowerUp) MarkDestroyed() { p.picked = true }

// IsDestroyed returns true once the power-up expired or was collected.
func (p *PowerUp) IsDestroyed() bool { return !p.Alive() }
