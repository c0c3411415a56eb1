package object

import (
	"image/color"
	"sync"

	"github.com/tomz197/spacepong/internal/physics"
)

// DefaultParticleLifetime is the lifetime of burst particles in ticks.
const DefaultParticleLifetime = 60

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	Pos         physics.Vec2
	Vel         physics.Vec2
	Color       color.RGBA
	Lifetime    int     // Ticks remaining
	MaxLifetime int     // Initial lifetime (for fade calculation)
	Size        float64 // Radius, 2 to 5
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec2, clr color.RGBA, lifetime int, rng Rand) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Color = clr
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Size = float64(2 + rng.IntN(4))
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	*p = Particle{}
	particlePool.Put(p)
}

// SpawnBurst creates count particles at (x, y) with velocity components
// drawn uniformly from [-spread, spread].
func SpawnBurst(x, y float64, count int, spread float64, clr color.RGBA, rng Rand) []*Particle {
	out := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		vel := physics.Vec2{
			X: RandRange(rng, -spread, spread),
			Y: RandRange(rng, -spread, spread),
		}
		out = append(out, NewParticle(physics.Vec2{X: x, Y: y}, vel, clr, DefaultParticleLifetime, rng))
	}
	return out
}

// Update moves the particle and ages it by one tick.
func (p *Particle) Update() {
	p.Pos = p.Pos.Add(p.Vel)
	p.Lifetime--
}

// Alpha returns the fade-out opacity, 255 at birth down to 0 at expiry.
func (p *Particle) Alpha() uint8 {
	if p.MaxLifetime <= 0 || p.Lifetime <= 0 {
		return 0
	}
	return uint8(255 * p.Lifetime / p.MaxLifetime)
}

// Alive reports whether the particle still has lifetime left.
func (p *Particle) Alive() bool {
	return p.Lifetime > 0
}

// MarkDestroyed expires the particle immediately.
func (p *Particle) MarkDestroyed() { p.Lifetime = 0 }

// IsDestroyed returns true once the particle has expired.
func (p *Particle) IsDestroyed() bool { return !p.Alive() }
