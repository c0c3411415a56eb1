package loop

import (
	"image/color"
	"slices"

	"github.com/tomz197/spacepong/internal/effect"
	"github.com/tomz197/spacepong/internal/highscore"
	"github.com/tomz197/spacepong/internal/object"
	"github.com/tomz197/spacepong/internal/physics"
)

// Frame is a read-only copy of everything a presenter needs for one tick.
// It shares no memory with the game, so it may be handed to another
// goroutine.
type Frame struct {
	Tick       uint64  `json:"tick"`
	Mode       Mode    `json:"mode"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Opponent   string  `json:"opponent"`
	Difficulty string  `json:"difficulty"`
	ScoreLeft  int     `json:"score_left"`
	ScoreRight int     `json:"score_right"`

	Left      PaddleView     `json:"left"`
	Right     PaddleView     `json:"right"`
	Balls     []BallView     `json:"balls"`
	PowerUps  []PowerUpView  `json:"power_ups"`
	Particles []ParticleView `json:"-"`
	Stars     []object.Star  `json:"-"`

	FreezeTicks int     `json:"freeze_ticks"`
	MenuTime    int     `json:"-"`
	MenuPulse   float64 `json:"-"`
	ShakeX      float64 `json:"-"`
	ShakeY      float64 `json:"-"`

	Winner     string             `json:"winner,omitempty"`
	HighScores []highscore.Result `json:"-"`
}

// BallView is a ball as seen by presenters.
type BallView struct {
	ID       uint64         `json:"id"`
	Pos      physics.Vec2   `json:"pos"`
	Radius   float64        `json:"radius"`
	Magnetic bool           `json:"magnetic"`
	Trail    []physics.Vec2 `json:"-"`
}

// PaddleView is a paddle as seen by presenters.
type PaddleView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Human  bool    `json:"human"`
	Shield bool    `json:"shield"`
	Laser  bool    `json:"laser"`
	LaserY float64 `json:"laser_y"`
	Grown  bool    `json:"grown"`
	Shrunk bool    `json:"shrunk"`
}

// PowerUpView is a power-up as seen by presenters.
type PowerUpView struct {
	ID    uint64       `json:"id"`
	Pos   physics.Vec2 `json:"pos"`
	Kind  effect.Kind  `json:"kind"`
	Size  float64      `json:"size"`
	Pulse float64      `json:"pulse"`
}

// ParticleView is a particle with its fade already applied to Color.A.
type ParticleView struct {
	Pos   physics.Vec2
	Size  float64
	Color color.RGBA
}

func viewPaddle(p *object.Paddle) PaddleView {
	return PaddleView{
		X:      p.X,
		Y:      p.Y,
		Width:  p.Width,
		Height: p.Height,
		Human:  p.Control == object.Human,
		Shield: p.ShieldActive,
		Laser:  p.LaserActive,
		LaserY: p.LaserY,
		Grown:  p.Effects.Has(effect.PaddleGrow),
		Shrunk: p.Effects.Has(effect.PaddleShrink),
	}
}

// Frame snapshots the current game state.
func (g *Game) Frame() Frame {
	f := Frame{
		Tick:        g.tick,
		Mode:        g.mode,
		Width:       g.screen.Width,
		Height:      g.screen.Height,
		Opponent:    g.opponent.String(),
		Difficulty:  g.difficulty.String(),
		ScoreLeft:   g.scoreLeft,
		ScoreRight:  g.scoreRight,
		Left:        viewPaddle(g.left),
		Right:       viewPaddle(g.right),
		Balls:       make([]BallView, 0, len(g.balls)),
		PowerUps:    make([]PowerUpView, 0, len(g.powerUps)),
		Particles:   make([]ParticleView, 0, len(g.particles)),
		Stars:       slices.Clone(g.stars),
		FreezeTicks: g.freezeTimer,
		MenuTime:    g.menuTime,
		MenuPulse:   g.menuPulse,
		ShakeX:      g.shakeX,
		ShakeY:      g.shakeY,
	}

	for _, b := range g.balls {
		f.Balls = append(f.Balls, BallView{
			ID:       b.ID,
			Pos:      b.Pos,
			Radius:   b.Radius,
			Magnetic: b.Magnetic,
			Trail:    slices.Clone(b.Trail),
		})
	}
	for _, p := range g.powerUps {
		f.PowerUps = append(f.PowerUps, PowerUpView{
			ID:    p.ID,
			Pos:   p.Pos,
			Kind:  p.Kind,
			Size:  p.Size,
			Pulse: p.Pulse(),
		})
	}
	for _, p := range g.particles {
		clr := p.Color
		clr.A = p.Alpha()
		f.Particles = append(f.Particles, ParticleView{Pos: p.Pos, Size: p.Size, Color: clr})
	}

	if g.result != nil {
		f.Winner = g.result.Winner
	}
	if g.mode == ModeHighScores {
		f.HighScores = g.board.Top()
	}
	return f
}
