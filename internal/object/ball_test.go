package object

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/spacepong/internal/physics"
)

var field = Screen{Width: 1200, Height: 800}

// fixedRand always returns the same values, making random draws predictable.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBallPaddleCollisionCenterHit(t *testing.T) {
	b := NewBall(1, 1150, 400, 8, 8)
	b.Vel = physics.Vec2{X: 8, Y: 0}
	p := NewPaddle(1155, 350, 15, 100, 8, Human)

	if !b.PaddleCollision(p, field) {
		t.Fatal("expected a hit")
	}
	if !approx(b.Vel.X, -8.4) || !approx(b.Vel.Y, 0) {
		t.Errorf("velocity = %+v, want (-8.4, 0)", b.Vel)
	}
	if b.Pos.X != 1147 {
		t.Errorf("x = %v, want 1147", b.Pos.X)
	}
	if b.Rect().Intersects(p.Rect()) {
		t.Error("ball still overlaps paddle after resolution")
	}
}

func TestBallPaddleCollisionLeftPaddle(t *testing.T) {
	p := NewPaddle(30, 350, 15, 100, 8, Computer)
	b := NewBall(1, 50, 450, 8, 8) // hits the bottom half
	b.Vel = physics.Vec2{X: -8, Y: 2}

	if !b.PaddleCollision(p, field) {
		t.Fatal("expected a hit")
	}
	if b.Vel.X <= 0 {
		t.Errorf("vx = %v, want positive", b.Vel.X)
	}
	// offset 1 -> vy = 8*0.75 = 6 before the 5% boost
	if !approx(b.Vel.Y, 6*1.05) {
		t.Errorf("vy = %v, want %v", b.Vel.Y, 6*1.05)
	}
	if b.Pos.X != 30+15+8 {
		t.Errorf("x = %v, want %v", b.Pos.X, 30+15+8)
	}
	if b.Rect().Intersects(p.Rect()) {
		t.Error("ball still overlaps paddle after resolution")
	}
}

func TestBallPaddleCollisionSpeedCap(t *testing.T) {
	b := NewBall(1, 1150, 400, 8, 8)
	b.Vel = physics.Vec2{X: 17, Y: 0}
	p := NewPaddle(1155, 350, 15, 100, 8, Human)

	b.PaddleCollision(p, field)
	if !approx(b.Vel.X, -17) {
		t.Errorf("vx = %v, want -17 (no boost above 2x base)", b.Vel.X)
	}
}

func TestBallPaddleCollisionMiss(t *testing.T) {
	b := NewBall(1, 600, 400, 8, 8)
	b.Vel = physics.Vec2{X: 8, Y: 0}
	p := NewPaddle(1155, 350, 15, 100, 8, Human)

	if b.PaddleCollision(p, field) {
		t.Fatal("unexpected hit")
	}
	if b.Vel.X != 8 || b.Pos.X != 600 {
		t.Errorf("ball changed on a miss: %+v %+v", b.Pos, b.Vel)
	}
}

func TestBallWallBounceStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	b := NewBall(1, 600, 400, 8, 8)

	for i := 0; i < 2000; i++ {
		if i%50 == 0 {
			b.Vel = physics.Vec2{X: 0, Y: RandRange(rng, -40, 40)}
		}
		b.Update(field)
		if b.Pos.Y < b.Radius || b.Pos.Y > field.Height-b.Radius {
			t.Fatalf("tick %d: y = %v out of bounds", i, b.Pos.Y)
		}
		if len(b.Trail) > TrailLength {
			t.Fatalf("tick %d: trail length %d", i, len(b.Trail))
		}
	}
}

func TestBallWallBounceReflects(t *testing.T) {
	b := NewBall(1, 600, 12, 8, 8)
	b.Vel = physics.Vec2{X: 0, Y: -10}
	b.Update(field)

	if b.Pos.Y != 8 {
		t.Errorf("y = %v, want clamped to 8", b.Pos.Y)
	}
	if b.Vel.Y != 10 {
		t.Errorf("vy = %v, want 10", b.Vel.Y)
	}
}

func TestBallTrailEvictsOldest(t *testing.T) {
	b := NewBall(1, 0, 400, 8, 8)
	b.Vel = physics.Vec2{X: 1}
	for i := 0; i < 15; i++ {
		b.Update(field)
	}
	if len(b.Trail) != TrailLength {
		t.Fatalf("trail length = %d", len(b.Trail))
	}
	if b.Trail[0].X != 6 || b.Trail[TrailLength-1].X != 15 {
		t.Errorf("trail = %v..%v, want 6..15", b.Trail[0].X, b.Trail[TrailLength-1].X)
	}
}

func TestBallSpeedMultiplier(t *testing.T) {
	b := NewBall(1, 100, 400, 8, 8)
	b.Vel = physics.Vec2{X: 8}
	b.SpeedMultiplier = 1.5
	b.Update(field)
	if b.Pos.X != 112 {
		t.Errorf("x = %v, want 112", b.Pos.X)
	}
}

func TestBallServe(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	b := NewBall(1, 10, 10, 8, 8)
	b.SpeedMultiplier = 1.5
	b.Trail = append(b.Trail, physics.Vec2{})
	b.SetMagnetic(0.5)

	for _, dir := range []float64{-1, 1} {
		b.Serve(field.Center(), dir, rng)
		if b.Pos != (physics.Vec2{X: 600, Y: 400}) {
			t.Errorf("pos = %+v", b.Pos)
		}
		if !approx(b.Vel.Len(), 8) {
			t.Errorf("speed = %v, want 8", b.Vel.Len())
		}
		if math.Signbit(b.Vel.X) != (dir < 0) {
			t.Errorf("dir %v: vx = %v", dir, b.Vel.X)
		}
		if b.SpeedMultiplier != 1 || len(b.Trail) != 0 || b.Magnetic {
			t.Errorf("serve did not reset state: %+v", b)
		}
	}
}

func TestBallSplit(t *testing.T) {
	b := NewBall(1, 300, 200, 8, 8)
	b.Vel = physics.Vec2{X: 5, Y: 3}
	b.SpeedMultiplier = 1.5

	nb := b.Split(2)
	if nb.ID != 2 || nb.Pos != b.Pos {
		t.Errorf("split ball = %+v", nb)
	}
	if nb.Vel != (physics.Vec2{X: 5, Y: -3}) {
		t.Errorf("split velocity = %+v", nb.Vel)
	}
	if nb.SpeedMultiplier != 1 {
		t.Errorf("split multiplier = %v", nb.SpeedMultiplier)
	}
}

func TestBallOffField(t *testing.T) {
	tests := []struct {
		x    float64
		side int
		out  bool
	}{
		{-1, -1, true},
		{0, 0, false},
		{1200, 0, false},
		{1201, 1, true},
	}
	for _, tt := range tests {
		b := NewBall(1, tt.x, 400, 8, 8)
		side, out := b.OffField(field)
		if side != tt.side || out != tt.out {
			t.Errorf("x=%v: OffField() = %d, %v", tt.x, side, out)
		}
	}
}

func TestCompact(t *testing.T) {
	balls := []*Ball{NewBall(1, 0, 0, 8, 8), NewBall(2, 0, 0, 8, 8), NewBall(3, 0, 0, 8, 8)}
	balls[1].MarkDestroyed()

	balls = Compact(balls)
	if len(balls) != 2 || balls[0].ID != 1 || balls[1].ID != 3 {
		t.Errorf("Compact kept wrong balls: %d", len(balls))
	}
}
