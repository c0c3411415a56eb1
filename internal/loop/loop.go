package loop

import (
	"context"
	"errors"
	"time"

	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop/config"
)

// Simulation is a game that advances in fixed ticks and exposes a snapshot
// of type F after each one.
type Simulation[F any] interface {
	Update(in input.Frame)
	Running() bool
	Frame() F
}

// Frontend collects input and shows frames. Poll must not block.
type Frontend[F any] interface {
	Poll() (input.Frame, error)
	Present(frame F) error
}

// Run drives sim at fps ticks per second with the Input → Update → Draw
// cycle until the simulation stops or ctx is cancelled. A cancelled context
// and a frontend reporting ErrQuit are normal exits.
func Run[F any](ctx context.Context, sim Simulation[F], fe Frontend[F], fps int) error {
	frameTime := config.TargetFrameTime
	if fps > 0 {
		frameTime = time.Second / time.Duration(fps)
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for sim.Running() {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		in, err := fe.Poll()
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		// ===== UPDATE PHASE =====
		sim.Update(in)

		// ===== DRAW PHASE =====
		if err := fe.Present(sim.Frame()); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed >= frameTime {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		timer.Reset(frameTime - elapsed)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
	return nil
}

// ErrQuit is returned by frontends whose window or terminal was closed.
var ErrQuit = errors.New("quit")
