package loop

import (
	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/object"
)

// Mode is the current screen of the game.
type Mode int

const (
	ModeMenu       Mode = iota // Title screen
	ModePlaying                // Active gameplay
	ModePaused                 // Gameplay frozen, overlay shown
	ModeGameOver               // Match finished, result shown
	ModeHighScores             // Result board
)

var modeNames = [...]string{
	ModeMenu:       "menu",
	ModePlaying:    "playing",
	ModePaused:     "paused",
	ModeGameOver:   "game_over",
	ModeHighScores: "high_scores",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// transition is one row of the state table: run action, then enter next.
type transition struct {
	action func(*Game)
	next   Mode
}

// transitions maps (mode, key-down) to what happens. Keys missing from a
// mode's row are ignored in that mode.
var transitions = map[Mode]map[input.Key]transition{
	ModeMenu: {
		input.Key1:      {(*Game).startVsComputer, ModePlaying},
		input.Key2:      {(*Game).startVsHuman, ModePlaying},
		input.Key3:      {nil, ModeHighScores},
		input.KeyE:      {setDifficulty(object.Easy), ModeMenu},
		input.KeyM:      {setDifficulty(object.Medium), ModeMenu},
		input.KeyH:      {setDifficulty(object.Hard), ModeMenu},
		input.KeyEscape: {(*Game).stop, ModeMenu},
	},
	ModePlaying: {
		input.KeySpace: {nil, ModePaused},
	},
	ModePaused: {
		input.KeySpace:  {nil, ModePlaying},
		input.KeyEscape: {nil, ModeMenu},
	},
	ModeGameOver: {
		input.KeySpace:  {(*Game).rematch, ModePlaying},
		input.KeyEscape: {nil, ModeMenu},
	},
	ModeHighScores: {
		input.KeyEscape: {nil, ModeMenu},
	},
}

func setDifficulty(d object.Difficulty) func(*Game) {
	return func(g *Game) {
		g.difficulty = d
	}
}

// handleKey applies one key-down event to the state machine.
func (g *Game) handleKey(k input.Key) {
	t, ok := transitions[g.mode][k]
	if !ok {
		return
	}
	if t.action != nil {
		t.action(g)
	}
	if t.next != g.mode {
		g.log.WithField("from", g.mode.String()).WithField("to", t.next.String()).Debug("mode change")
	}
	g.mode = t.next
}
