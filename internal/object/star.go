package object

import "github.com/tomz197/spacepong/internal/physics"

// Star is a background star drifting down the screen.
type Star struct {
	Pos        physics.Vec2
	Speed      float64 // Pixels per tick, 0.1 to 1
	Size       float64 // Radius, 1 to 3
	Brightness uint8   // Gray level, 100 to 255
}

// NewStarfield creates n stars scattered over the screen.
func NewStarfield(n int, screen Screen, rng Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			Pos: physics.Vec2{
				X: RandRange(rng, 0, screen.Width),
				Y: RandRange(rng, 0, screen.Height),
			},
			Speed:      RandRange(rng, 0.1, 1),
			Size:       float64(1 + rng.IntN(3)),
			Brightness: uint8(100 + rng.IntN(156)),
		}
	}
	return stars
}

// Update moves the star down; past the bottom edge it restarts at the top
// with a new random x.
func (s *Star) Update(screen Screen, rng Rand) {
	s.Pos.Y += s.Speed
	if s.Pos.Y > screen.Height {
		s.Pos.Y = 0
		s.Pos.X = RandRange(rng, 0, screen.Width)
	}
}
