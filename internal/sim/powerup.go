package sim

import (
	"math/rand"

	"snake-survival/internal/config"
)

// PowerupKind enumerates the eight pickup kinds.
type PowerupKind int

const (
	PowerupScissors   PowerupKind = iota // Cut up to 5 tail segments
	PowerupSlow                          // Halve apple speed for a while
	PowerupFreeze                        // Stop apples entirely for a while
	PowerupShield                        // One-hit apple absorption charge
	PowerupMultiplier                    // Double score accrual for a while
	PowerupRainbow                       // Cosmetic trail, consumed by the renderer
	PowerupSpeed                         // Faster snake cell-advance cadence
	PowerupNuke                          // Clear all apples instantly
)

func (k PowerupKind) String() string {
	switch k {
	case PowerupScissors:
		return "scissors"
	case PowerupSlow:
		return "slow"
	case PowerupFreeze:
		return "freeze"
	case PowerupShield:
		return "shield"
	case PowerupMultiplier:
		return "2x"
	case PowerupRainbow:
		return "rainbow"
	case PowerupSpeed:
		return "speed"
	default:
		return "nuke"
	}
}

// Timed reports whether the kind applies a duration-based effect. Scissors
// and Nuke act instantly; Shield is charge-based.
func (k PowerupKind) Timed() bool {
	switch k {
	case PowerupSlow, PowerupFreeze, PowerupMultiplier, PowerupRainbow, PowerupSpeed:
		return true
	}
	return false
}

// duration returns the effect duration in seconds for timed kinds.
func (k PowerupKind) duration() float64 {
	switch k {
	case PowerupSlow:
		return config.SlowDuration
	case PowerupFreeze:
		return config.FreezeDuration
	case PowerupMultiplier:
		return config.MultiplierDur
	case PowerupRainbow:
		return config.RainbowDuration
	case PowerupSpeed:
		return config.SpeedDuration
	}
	return 0
}

// spawnWeights biases kind selection; Nuke is deliberately rare.
var spawnWeights = []struct {
	kind   PowerupKind
	weight int
}{
	{PowerupScissors, 14},
	{PowerupSlow, 14},
	{PowerupFreeze, 14},
	{PowerupShield, 14},
	{PowerupMultiplier, 14},
	{PowerupRainbow, 13},
	{PowerupSpeed, 13},
	{PowerupNuke, 4},
}

// Pickup is an uncollected powerup on the board.
type Pickup struct {
	Kind    PowerupKind
	Cell    Cell
	age     float64
	SpawnAt float64 // Elapsed run time when the pickup appeared
}

// Remaining returns seconds until the pickup expires uncollected.
func (p *Pickup) Remaining() float64 {
	left := config.PickupLifetime - p.age
	if left < 0 {
		return 0
	}
	return left
}

// Effect is an active timed modifier from a collected powerup.
type Effect struct {
	Kind      PowerupKind
	Remaining float64
}

// Manager spawns pickups, tracks active timed effects and Shield charges,
// and answers the modifier queries the rest of the pipeline reads.
type Manager struct {
	board      Board
	rng        *rand.Rand
	pickups    []*Pickup
	effects    []*Effect
	shield     int
	untilSpawn float64
}

// NewManager creates an empty powerup manager with a randomized first
// spawn delay.
func NewManager(board Board, rng *rand.Rand) *Manager {
	m := &Manager{board: board, rng: rng}
	m.untilSpawn = m.nextSpawnDelay()
	return m
}

func (m *Manager) nextSpawnDelay() float64 {
	return config.PowerupSpawnMin + m.rng.Float64()*(config.PowerupSpawnMax-config.PowerupSpawnMin)
}

// rollKind selects a random pickup kind by weight.
func (m *Manager) rollKind() PowerupKind {
	total := 0
	for _, w := range spawnWeights {
		total += w.weight
	}
	roll := m.rng.Intn(total)
	cumulative := 0
	for _, w := range spawnWeights {
		cumulative += w.weight
		if roll < cumulative {
			return w.kind
		}
	}
	return spawnWeights[0].kind
}

// MaybeSpawn places one pickup at a random unoccupied cell once the spawn
// timer fires. occupied reports cells the pickup must avoid (snake body,
// other pickups).
func (m *Manager) MaybeSpawn(elapsed float64, occupied func(Cell) bool) {
	if m.untilSpawn > 0 {
		return
	}
	m.untilSpawn = m.nextSpawnDelay()

	// Bounded retries; on a crowded board skipping a spawn is fine.
	for range 32 {
		c := Cell{X: m.rng.Intn(m.board.Width), Y: m.rng.Intn(m.board.Height)}
		if occupied(c) {
			continue
		}
		m.pickups = append(m.pickups, &Pickup{Kind: m.rollKind(), Cell: c, SpawnAt: elapsed})
		return
	}
}

// CollectAt removes all pickups at c and returns their kinds in collection
// order. The caller applies instant kinds (Scissors, Nuke) to the snake and
// apple pool; timed and charge kinds are handed back via Apply.
func (m *Manager) CollectAt(c Cell) []PowerupKind {
	var collected []PowerupKind
	kept := m.pickups[:0]
	for _, p := range m.pickups {
		if p.Cell == c {
			collected = append(collected, p.Kind)
			continue
		}
		kept = append(kept, p)
	}
	m.pickups = kept
	return collected
}

// Apply activates a collected powerup's lasting state: timed kinds set or
// refresh their duration, Shield adds a charge. Instant kinds are a no-op
// here; the controller applies them to the snake and apple pool directly.
func (m *Manager) Apply(kind PowerupKind) {
	if kind == PowerupShield {
		m.shield++
		return
	}
	if !kind.Timed() {
		return
	}
	for _, e := range m.effects {
		if e.Kind == kind {
			e.Remaining = kind.duration()
			return
		}
	}
	m.effects = append(m.effects, &Effect{Kind: kind, Remaining: kind.duration()})
}

// Tick advances durations and expires finished effects and stale pickups.
func (m *Manager) Tick(dt float64) {
	m.untilSpawn -= dt

	activeEffects := m.effects[:0]
	for _, e := range m.effects {
		e.Remaining -= dt
		if e.Remaining > 0 {
			activeEffects = append(activeEffects, e)
		}
	}
	m.effects = activeEffects

	freshPickups := m.pickups[:0]
	for _, p := range m.pickups {
		p.age += dt
		if p.age < config.PickupLifetime {
			freshPickups = append(freshPickups, p)
		}
	}
	m.pickups = freshPickups
}

// Has reports whether a timed effect of the given kind is active.
func (m *Manager) Has(kind PowerupKind) bool {
	for _, e := range m.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// AppleSpeedModifier composes Slow and Freeze with "most restrictive wins":
// Freeze forces 0 regardless of Slow; Slow alone multiplies by its factor.
func (m *Manager) AppleSpeedModifier() float64 {
	if m.Has(PowerupFreeze) {
		return 0
	}
	if m.Has(PowerupSlow) {
		return config.SlowFactor
	}
	return 1
}

// ScoreMultiplier returns the current score accrual factor.
func (m *Manager) ScoreMultiplier() float64 {
	if m.Has(PowerupMultiplier) {
		return config.MultiplierFactor
	}
	return 1
}

// MoveInterval returns the snake's seconds-per-cell cadence, honoring the
// Speed effect.
func (m *Manager) MoveInterval() float64 {
	if m.Has(PowerupSpeed) {
		return config.FastMoveInterval
	}
	return config.MoveInterval
}

// UseShield consumes one Shield charge if available.
func (m *Manager) UseShield() bool {
	if m.shield == 0 {
		return false
	}
	m.shield--
	return true
}

// ShieldCharges returns the remaining Shield charge count.
func (m *Manager) ShieldCharges() int {
	return m.shield
}

// Pickups returns the uncollected pickups. The slice is owned by the
// manager; callers must not retain it across ticks.
func (m *Manager) Pickups() []*Pickup {
	return m.pickups
}

// Effects returns the active timed effects, manager-owned like Pickups.
func (m *Manager) Effects() []*Effect {
	return m.effects
}

// PickupAt reports whether any pickup occupies c.
func (m *Manager) PickupAt(c Cell) bool {
	for _, p := range m.pickups {
		if p.Cell == c {
			return true
		}
	}
	return false
}
