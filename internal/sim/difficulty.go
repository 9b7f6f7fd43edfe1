// Package sim implements the Snake Survival simulation core: a fixed-step
// update loop advancing snake motion, apple pursuit, powerup effects, and
// time-based difficulty scaling.
package sim

import "fmt"

// Tier selects a difficulty profile. Values match the leaderboard API.
type Tier string

const (
	TierEasy       Tier = "easy"
	TierMedium     Tier = "medium"
	TierHard       Tier = "hard"
	TierImpossible Tier = "impossible"
	TierHacker     Tier = "hacker"
)

// Mode selects the run's collision rules. In Ghost mode wall and self
// collisions are survivable; apple hits and max length are not.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeGhost  Mode = "ghost"
)

// Rates are the difficulty outputs for a given tier and elapsed time.
type Rates struct {
	SpawnInterval float64 // Seconds between apple spawns
	AppleSpeed    float64 // Speed units, scaled to cells/sec by the caller
	Growth        int     // Segments gained per absorbed apple hit
}

// tierProfile defines a tier's ramp. Spawn interval interpolates linearly
// from spawnStart to spawnEnd over rampSeconds and clamps there. Growth
// steps from low to high once survival passes hardAfter.
type tierProfile struct {
	spawnStart  float64
	spawnEnd    float64
	rampSeconds float64
	appleSpeed  float64
	growthLow   int
	growthHigh  int
	hardAfter   float64
}

var tierProfiles = map[Tier]tierProfile{
	TierEasy:       {spawnStart: 4.0, spawnEnd: 2.0, rampSeconds: 120, appleSpeed: 0.10, growthLow: 1, growthHigh: 1, hardAfter: 60},
	TierMedium:     {spawnStart: 3.0, spawnEnd: 1.2, rampSeconds: 100, appleSpeed: 0.14, growthLow: 1, growthHigh: 2, hardAfter: 45},
	TierHard:       {spawnStart: 2.5, spawnEnd: 0.8, rampSeconds: 90, appleSpeed: 0.18, growthLow: 1, growthHigh: 3, hardAfter: 30},
	TierImpossible: {spawnStart: 1.5, spawnEnd: 0.5, rampSeconds: 60, appleSpeed: 0.24, growthLow: 2, growthHigh: 4, hardAfter: 20},
	TierHacker:     {spawnStart: 1.0, spawnEnd: 0.3, rampSeconds: 45, appleSpeed: 0.30, growthLow: 3, growthHigh: 5, hardAfter: 15},
}

// Tiers returns all known tiers in ascending order of difficulty.
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard, TierImpossible, TierHacker}
}

// ValidTier reports whether t names a known difficulty profile.
func ValidTier(t Tier) bool {
	_, ok := tierProfiles[t]
	return ok
}

// ValidMode reports whether m is a known game mode.
func ValidMode(m Mode) bool {
	return m == ModeNormal || m == ModeGhost
}

// TierRates returns the difficulty outputs for tier t after elapsed seconds
// of survival. The tier must have been validated at game construction; an
// unknown tier here is a programming error.
func TierRates(t Tier, elapsed float64) Rates {
	p, ok := tierProfiles[t]
	if !ok {
		panic(fmt.Sprintf("sim: unknown tier %q", t))
	}

	interval := p.spawnEnd
	if elapsed < p.rampSeconds {
		frac := elapsed / p.rampSeconds
		interval = p.spawnStart + (p.spawnEnd-p.spawnStart)*frac
	}

	growth := p.growthLow
	if elapsed >= p.hardAfter {
		growth = p.growthHigh
	}

	return Rates{
		SpawnInterval: interval,
		AppleSpeed:    p.appleSpeed,
		Growth:        growth,
	}
}
