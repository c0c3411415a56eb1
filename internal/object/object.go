// Package object defines the entities simulated by the game: balls, paddles,
// power-ups, particles and background stars.
package object

import "github.com/tomz197/spacepong/internal/physics"

// Rand is the random source consumed by entities.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// RandRange returns a uniform value in [lo, hi).
func RandRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Screen represents the play field dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the field.
func (s Screen) Center() physics.Vec2 {
	return physics.Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current scan.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// Compact drops destroyed objects in place, preserving order, and releases
// pooled ones. Call it after a scan has finished, never during one.
func Compact[T Destructible](objs []T) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if !obj.IsDestroyed() {
			kept = append(kept, obj)
			continue
		}
		if r, ok := any(obj).(Releasable); ok {
			r.Release()
		}
	}
	clear(objs[len(kept):])
	return kept
}
