package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomz197/spacepong/internal/input"
)

var (
	_ Simulation[Frame]        = (*Game)(nil)
	_ Simulation[ClassicFrame] = (*Classic)(nil)
)

type countingSim struct {
	ticks  int
	stopAt int // Zero runs forever
}

func (s *countingSim) Update(input.Frame) { s.ticks++ }
func (s *countingSim) Running() bool      { return s.stopAt == 0 || s.ticks < s.stopAt }
func (s *countingSim) Frame() int         { return s.ticks }

type recordingFrontend struct {
	polls      int
	presented  []int
	pollErrAt  int // Poll number that fails, zero never
	pollErr    error
	presentErr error
}

func (f *recordingFrontend) Poll() (input.Frame, error) {
	f.polls++
	if f.pollErrAt != 0 && f.polls == f.pollErrAt {
		return input.Frame{}, f.pollErr
	}
	return input.Frame{}, nil
}

func (f *recordingFrontend) Present(frame int) error {
	f.presented = append(f.presented, frame)
	return f.presentErr
}

func TestRunUntilSimulationStops(t *testing.T) {
	sim := &countingSim{stopAt: 5}
	fe := &recordingFrontend{}

	if err := Run(context.Background(), sim, fe, 1000); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []int{1, 2, 3, 4, 5}
	if len(fe.presented) != len(want) {
		t.Fatalf("presented %v, want %v", fe.presented, want)
	}
	for i := range want {
		if fe.presented[i] != want[i] {
			t.Errorf("presented[%d] = %d, want %d", i, fe.presented[i], want[i])
		}
	}
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name      string
		fe        *recordingFrontend
		wantErr   error
		wantTicks int
	}{
		{"quit is a clean exit", &recordingFrontend{pollErrAt: 3, pollErr: ErrQuit}, nil, 2},
		{"wrapped quit", &recordingFrontend{pollErrAt: 1, pollErr: errors.Join(ErrQuit, boom)}, nil, 0},
		{"poll failure", &recordingFrontend{pollErrAt: 2, pollErr: boom}, boom, 1},
		{"present failure", &recordingFrontend{presentErr: boom}, boom, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := &countingSim{stopAt: 100}
			err := Run(context.Background(), sim, tt.fe, 1000)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if sim.ticks != tt.wantTicks {
				t.Errorf("ticks = %d, want %d", sim.ticks, tt.wantTicks)
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	sim := &countingSim{}
	done := make(chan error, 1)
	go func() { done <- Run(ctx, sim, &recordingFrontend{}, 60) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() ignored the cancelled context")
	}
}

func TestRunPacesFrames(t *testing.T) {
	sim := &countingSim{stopAt: 5}
	start := time.Now()
	if err := Run(context.Background(), sim, &recordingFrontend{}, 50); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("5 ticks at 50 fps took %v", elapsed)
	}
}
