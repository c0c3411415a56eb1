package loop

import (
	"testing"
	"time"

	settings "github.com/tomz197/spacepong/internal/config"
	"github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/object"
)

func TestOptionsFrom(t *testing.T) {
	opts, err := OptionsFrom(settings.GameSettings{WinScore: 5, Difficulty: "hard", Seed: 42})
	if err != nil {
		t.Fatalf("OptionsFrom() error = %v", err)
	}
	if opts.WinScore != 5 || opts.Difficulty != object.Hard || opts.Rand == nil {
		t.Errorf("opts = %+v", opts)
	}

	if _, err := OptionsFrom(settings.GameSettings{Difficulty: "brutal"}); err == nil {
		t.Error("unknown difficulty accepted")
	}

	opts, _ = OptionsFrom(settings.GameSettings{Difficulty: "easy"})
	if opts.Rand != nil {
		t.Error("zero seed should leave the source to NewGame")
	}
}

func TestSeededMatchesRepeat(t *testing.T) {
	run := func() (int, int) {
		opts, err := OptionsFrom(settings.GameSettings{Difficulty: "medium", Seed: 7})
		if err != nil {
			t.Fatal(err)
		}
		opts.Autoplay = true
		opts.Log = logging.Discard()
		g := NewGame(opts)
		for i := 0; i < 3000; i++ {
			g.Update(press())
		}
		return g.Scores()
	}
	l1, r1 := run()
	l2, r2 := run()
	if l1 != l2 || r1 != r2 {
		t.Errorf("same seed gave %d-%d and %d-%d", l1, r1, l2, r2)
	}
}

func TestHoldDuration(t *testing.T) {
	if d := HoldDuration(settings.GameSettings{HoldMillis: 150}); d != 150*time.Millisecond {
		t.Errorf("HoldDuration() = %v", d)
	}
}
