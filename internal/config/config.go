// Package config centralizes all tunable game parameters.
package config

import "time"

// Board dimensions in cells. The snake moves on this grid; apples travel
// through it in continuous coordinates.
const (
	BoardWidth  = 60
	BoardHeight = 40
)

// Simulation tick rate. All timed effects and difficulty ramps are expressed
// in seconds and advanced by the fixed per-tick delta.
const TickRate = 60

// Snake movement
const (
	InitialLength    = 3
	MaxLength        = 50   // Reaching this many segments ends the run in both modes
	MoveInterval     = 0.12 // Seconds per cell advance
	FastMoveInterval = 0.08 // Cell advance interval while the Speed effect is active
)

// Apples
const (
	// AppleSpeedScale converts the difficulty table's speed units into cells
	// per second, keeping the documented table values unchanged.
	AppleSpeedScale = 30.0
	// GhostAppleLifetime is how long an apple survives in Ghost mode before
	// despawning. In Normal mode apples never expire on their own.
	GhostAppleLifetime = 30.0
)

// Powerups
const (
	PowerupSpawnMin = 7.0  // Minimum seconds between pickup spawns
	PowerupSpawnMax = 12.0 // Maximum seconds between pickup spawns
	PickupLifetime  = 10.0 // Seconds before an uncollected pickup expires

	ScissorsCut      = 5 // Tail segments removed by Scissors, never below length 1
	SlowFactor       = 0.5
	SlowDuration     = 6.0
	FreezeDuration   = 4.0
	MultiplierFactor = 2
	MultiplierDur    = 8.0
	RainbowDuration  = 8.0
	SpeedDuration    = 6.0
)

// Leaderboard
const (
	LeaderboardRetain = 50     // Top entries kept per store
	MaxSubmitScore    = 100000 // Submission sanity cap
	SubmitTimeout     = 5 * time.Second
	DefaultQueryLimit = 50
	MaxQueryLimit     = 100
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
