package loop

import (
	"math/rand/v2"
	"time"

	settings "github.com/tomz197/spacepong/internal/config"
	"github.com/tomz197/spacepong/internal/object"
)

// OptionsFrom maps the game section of the runtime settings onto match
// options. A non-zero seed makes every match reproducible.
func OptionsFrom(s settings.GameSettings) (Options, error) {
	d, err := object.ParseDifficulty(s.Difficulty)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		WinScore:   s.WinScore,
		Difficulty: d,
	}
	if s.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(s.Seed, s.Seed))
	}
	return opts, nil
}

// HoldDuration returns the key hold window for terminal frontends.
func HoldDuration(s settings.GameSettings) time.Duration {
	return time.Duration(s.HoldMillis) * time.Millisecond
}
