// Package loop provides the main game loop and state management.
package loop

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/effect"
	"github.com/tomz197/spacepong/internal/highscore"
	"github.com/tomz197/spacepong/internal/input"
	"github.com/tomz197/spacepong/internal/loop/config"
	"github.com/tomz197/spacepong/internal/object"
	"github.com/tomz197/spacepong/internal/physics"
)

// Options configures a Game. Zero fields take defaults.
type Options struct {
	WinScore   int
	Difficulty object.Difficulty
	Rand       object.Rand      // Defaults to a randomly seeded PCG source
	Board      *highscore.Board // Finished matches are recorded here
	Log        *logrus.Entry    // Defaults to the standard logrus logger
	Now        func() time.Time // Clock for result timestamps

	// Autoplay hands both paddles to the computer, skips the menu and
	// starts a rematch as soon as a match ends.
	Autoplay bool
}

// Game is the Space Pong simulation. It owns every entity; presenters only
// see the copies returned by Frame.
type Game struct {
	screen   object.Screen
	winScore int
	rng      object.Rand
	board    *highscore.Board
	baseLog  *logrus.Entry
	log      *logrus.Entry
	now      func() time.Time
	autoplay bool

	mode       Mode
	running    bool
	opponent   object.Control
	difficulty object.Difficulty

	right     *object.Paddle // Player 1, arrow keys
	left      *object.Paddle // Player 2 (W/S) or computer
	balls     []*object.Ball
	powerUps  []*object.PowerUp
	particles []*object.Particle
	stars     []object.Star

	scoreRight   int
	scoreLeft    int
	serveDir     float64 // Horizontal direction of the next serve
	powerUpTimer int
	freezeTimer  int
	shake        int
	shakeX       float64
	shakeY       float64
	menuTime     int
	menuPulse    float64

	tick    uint64
	nextID  uint64
	matchID uuid.UUID
	result  *highscore.Result
}

// NewGame creates a game sitting on the menu with a fresh starfield.
func NewGame(opts Options) *Game {
	if opts.WinScore <= 0 {
		opts.WinScore = config.WinScore
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Board == nil {
		opts.Board = highscore.NewBoard(highscore.DefaultLimit)
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	g := &Game{
		screen:     object.Screen{Width: config.ScreenWidth, Height: config.ScreenHeight},
		winScore:   opts.WinScore,
		rng:        opts.Rand,
		board:      opts.Board,
		baseLog:    opts.Log,
		log:        opts.Log,
		now:        opts.Now,
		autoplay:   opts.Autoplay,
		mode:       ModeMenu,
		running:    true,
		opponent:   object.Computer,
		difficulty: opts.Difficulty,
		menuPulse:  0.7,
	}
	g.stars = object.NewStarfield(config.StarCount, g.screen, g.rng)
	g.reset()
	if g.autoplay {
		g.mode = ModePlaying
	}
	return g
}

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.mode }

// Running reports whether the game wants more ticks.
func (g *Game) Running() bool { return g.running }

// Scores returns the left and right scores.
func (g *Game) Scores() (left, right int) { return g.scoreLeft, g.scoreRight }

// Update advances the game by one tick.
func (g *Game) Update(in input.Frame) {
	g.tick++

	// ===== INPUT PHASE =====
	for _, k := range in.Pressed {
		if k == input.KeyQuit {
			g.stop()
			continue
		}
		g.handleKey(k)
	}

	// ===== UPDATE PHASE =====
	for i := range g.stars {
		g.stars[i].Update(g.screen, g.rng)
	}
	for _, p := range g.particles {
		p.Update()
	}
	g.particles = object.Compact(g.particles)

	switch g.mode {
	case ModeMenu:
		g.menuTime++
		g.menuPulse = math.Abs(math.Sin(float64(g.menuTime)*0.05))*0.3 + 0.7
		g.spawnMenuParticle()
	case ModePlaying:
		g.updateGameplay(in)
	case ModeGameOver:
		if g.autoplay {
			g.handleKey(input.KeySpace)
		}
	}

	if g.shake > 0 {
		g.shake--
	}
	g.shakeX, g.shakeY = 0, 0
	if g.shake > 0 {
		s := float64(g.shake)
		g.shakeX = object.RandRange(g.rng, -s, s)
		g.shakeY = object.RandRange(g.rng, -s, s)
	}
}

// updateGameplay runs one Playing tick: paddles, balls, scoring, power-ups
// and the end-of-match check.
func (g *Game) updateGameplay(in input.Frame) {
	if g.freezeTimer > 0 {
		g.freezeTimer--
		return
	}

	var ballY float64
	if len(g.balls) > 0 {
		ballY = g.balls[0].Pos.Y
	}
	g.right.Update(object.PaddleInput{
		Up:    in.Holding(input.KeyUp),
		Down:  in.Holding(input.KeyDown),
		BallY: ballY,
		Rand:  g.rng,
	}, g.screen)
	g.left.Update(object.PaddleInput{
		Up:    in.Holding(input.KeyW),
		Down:  in.Holding(input.KeyS),
		BallY: ballY,
		Rand:  g.rng,
	}, g.screen)

	g.updateBalls()
	g.updatePowerUps()

	if g.scoreRight >= g.winScore || g.scoreLeft >= g.winScore {
		g.finishMatch()
	}
}

func (g *Game) updateBalls() {
	for _, b := range g.balls {
		b.Update(g.screen)

		if b.PaddleCollision(g.right, g.screen) {
			g.addHitEffect(b.Pos)
		}
		if b.PaddleCollision(g.left, g.screen) {
			g.addHitEffect(b.Pos)
		}

		if side, out := b.OffField(g.screen); out {
			b.MarkDestroyed()
			g.awardPoint(side)
		}
	}
	g.balls = object.Compact(g.balls)

	if len(g.balls) == 0 {
		g.serve(g.serveDir)
	}
}

// awardPoint scores a ball that left through side (-1 left, +1 right).
// The next serve heads away from the player who scored.
func (g *Game) awardPoint(side int) {
	if side < 0 {
		g.scoreRight++
		g.serveDir = -1
	} else {
		g.scoreLeft++
		g.serveDir = 1
	}
	g.shake = config.ScoreShake
	g.log.WithFields(logrus.Fields{
		"left":  g.scoreLeft,
		"right": g.scoreRight,
	}).Debug("point scored")
}

func (g *Game) updatePowerUps() {
	g.powerUpTimer++
	if g.powerUpTimer >= config.PowerUpSpawnInterval {
		g.spawnPowerUp()
		g.powerUpTimer = 0
	}

	for _, p := range g.powerUps {
		p.Update()
		if !p.Alive() {
			continue
		}
		for _, b := range g.balls {
			if p.Rect().Intersects(b.Rect()) {
				g.applyPowerUp(p.Kind, b)
				p.MarkDestroyed()
				g.addPowerUpEffect(p.Pos)
				break
			}
		}
	}
	g.powerUps = object.Compact(g.powerUps)
}

func (g *Game) spawnPowerUp() {
	x := object.RandRange(g.rng, g.screen.Width/4, 3*g.screen.Width/4)
	y := object.RandRange(g.rng, config.PowerUpMarginY, g.screen.Height-config.PowerUpMarginY)
	kind := effect.Kinds[g.rng.IntN(len(effect.Kinds))]
	g.powerUps = append(g.powerUps, object.NewPowerUp(g.newID(), x, y, kind))
}

// applyPowerUp applies kind as collected by ball b. Paddle effects go to
// the paddle on the ball's half of the field.
func (g *Game) applyPowerUp(kind effect.Kind, b *object.Ball) {
	switch kind {
	case effect.SpeedBoost:
		b.SpeedMultiplier = config.SpeedBoostMultiplier
	case effect.MultiBall:
		if len(g.balls) < config.MaxBalls {
			g.balls = append(g.balls, b.Split(g.newID()))
		}
	case effect.Freeze:
		g.freezeTimer = config.FreezeTicks
	case effect.Magnet:
		b.SetMagnetic(config.MagnetForce)
	default:
		target := g.left
		if b.Pos.X > g.screen.Width/2 {
			target = g.right
		}
		target.ApplyEffect(kind, config.EffectDuration)
	}
	g.log.WithField("effect", kind.String()).Debug("power-up collected")
}

func (g *Game) addHitEffect(pos physics.Vec2) {
	burst := object.SpawnBurst(pos.X, pos.Y, config.HitParticles, config.HitParticleSpread, object.Cyan, g.rng)
	g.particles = append(g.particles, burst...)
	g.shake = config.HitShake
}

func (g *Game) addPowerUpEffect(pos physics.Vec2) {
	burst := object.SpawnBurst(pos.X, pos.Y, config.PowerUpParticles, config.PowerUpSpread, object.Gold, g.rng)
	g.particles = append(g.particles, burst...)
}

var menuParticleColors = [...]color.RGBA{object.Cyan, object.Purple, object.Gold, object.Pink}

// spawnMenuParticle sometimes releases a slow particle drifting upward
// behind the menu.
func (g *Game) spawnMenuParticle() {
	if g.rng.IntN(100) >= config.MenuParticleChance {
		return
	}
	pos := physics.Vec2{
		X: float64(g.rng.IntN(int(g.screen.Width))),
		Y: float64(g.rng.IntN(int(g.screen.Height))),
	}
	vel := physics.Vec2{
		X: float64(g.rng.IntN(200)-100) / 100,
		Y: float64(g.rng.IntN(150)-200) / 100,
	}
	clr := menuParticleColors[g.rng.IntN(len(menuParticleColors))]
	g.particles = append(g.particles, object.NewParticle(pos, vel, clr, config.MenuParticleLifetime, g.rng))
}

// finishMatch ends the match and records the result.
func (g *Game) finishMatch() {
	g.mode = ModeGameOver

	winner := "PLAYER 2"
	if g.scoreRight > g.scoreLeft {
		winner = "PLAYER 1"
	}
	r := highscore.Result{
		MatchID:    g.matchID,
		Winner:     winner,
		Left:       g.scoreLeft,
		Right:      g.scoreRight,
		Opponent:   g.opponent.String(),
		Difficulty: g.difficulty.String(),
		At:         g.now(),
	}
	g.result = &r
	g.board.Record(r)

	g.log.WithFields(logrus.Fields{
		"winner": winner,
		"left":   g.scoreLeft,
		"right":  g.scoreRight,
	}).Info("match finished")
}

func (g *Game) startVsComputer() {
	g.opponent = object.Computer
	g.reset()
}

func (g *Game) startVsHuman() {
	g.opponent = object.Human
	g.reset()
}

func (g *Game) rematch() {
	g.reset()
}

func (g *Game) stop() {
	g.running = false
}

// reset starts a new match against the current opponent.
func (g *Game) reset() {
	g.matchID = uuid.New()
	g.log = g.baseLog.WithField("match", g.matchID.String())
	g.result = nil

	g.right = object.NewPaddle(config.RightPaddleX, g.screen.Height/2-config.PaddleHeight/2,
		config.PaddleWidth, config.PaddleHeight, config.PaddleSpeed, object.Human)
	g.left = object.NewPaddle(config.LeftPaddleX, g.screen.Height/2-config.PaddleHeight/2,
		config.PaddleWidth, config.PaddleHeight, config.PaddleSpeed, g.opponent)
	g.left.Difficulty = g.difficulty
	if g.autoplay {
		g.right.Control = object.Computer
		g.right.Difficulty = g.difficulty
	}

	g.balls = g.balls[:0]
	dir := 1.0
	if g.rng.IntN(2) == 0 {
		dir = -1
	}
	g.serve(dir)

	clear(g.powerUps)
	g.powerUps = g.powerUps[:0]
	for _, p := range g.particles {
		p.MarkDestroyed()
	}
	g.particles = object.Compact(g.particles)

	g.scoreLeft, g.scoreRight = 0, 0
	g.powerUpTimer = 0
	g.freezeTimer = 0
	g.shake = 0

	g.log.WithFields(logrus.Fields{
		"opponent":   g.opponent.String(),
		"difficulty": g.difficulty.String(),
	}).Info("match started")
}

// serve puts a new ball in the middle of the field heading in dir.
func (g *Game) serve(dir float64) {
	b := object.NewBall(g.newID(), 0, 0, config.BallRadius, config.BallSpeed)
	b.Serve(g.screen.Center(), dir, g.rng)
	g.balls = append(g.balls, b)
}

func (g *Game) newID() uint64 {
	g.nextID++
	return g.nextID
}
