// Package config centralizes all tunable game parameters.
package config

import "time"

// Field resolution - every entity uses these logical dimensions.
// Frontends scale the field to whatever surface they draw on.
const (
	ScreenWidth  = 1200
	ScreenHeight = 800
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Ball
const (
	BallRadius = 8
	BallSpeed  = 8 // Pixels per tick at multiplier 1
	MaxBalls   = 3
)

// Paddles
const (
	PaddleWidth  = 15
	PaddleHeight = 100
	PaddleSpeed  = 8
	LeftPaddleX  = 30                // Player 2 or computer
	RightPaddleX = ScreenWidth - 45 // Player 1
)

// Scoring
const (
	WinScore = 11
)

// Power-ups and effects
const (
	PowerUpSpawnInterval = 600 // Ticks between spawns
	PowerUpMarginY       = 100 // Spawn band keeps this far from top and bottom
	EffectDuration       = 300 // Ticks a paddle effect lasts
	FreezeTicks          = 120
	SpeedBoostMultiplier = 1.5
	MagnetForce          = 0.5
)

// Particles
const (
	HitParticles         = 10
	HitParticleSpread    = 5
	PowerUpParticles     = 15
	PowerUpSpread        = 8
	MenuParticleChance   = 30 // Percent per tick
	MenuParticleLifetime = 120
)

// Screen shake, in ticks and pixels
const (
	HitShake   = 5
	ScoreShake = 10
)

// Background
const (
	StarCount = 100
)

// Classic variant
const (
	ClassicWidth        = 640
	ClassicHeight       = 480
	ClassicPaddleWidth  = 10
	ClassicPaddleHeight = 80
	ClassicPaddleSpeed  = 6
	ClassicPaddleInset  = 30
	ClassicBallSize     = 12
	ClassicBallSpeed    = 5
)

// Terminal rendering. Larger terminals get a centered, bordered play area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Inactivity, for remote terminal sessions
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Shutdown
const (
	ShutdownDisplayTime = 5 * time.Second // Notice shown before a session is closed
)
