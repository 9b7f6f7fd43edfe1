package sim

import (
	"math/rand"
	"testing"

	"snake-survival/internal/config"
)

func never(Cell) bool { return false }

func TestPickupSpawnDelayWindow(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	for i := 0; i < 50; i++ {
		d := m.nextSpawnDelay()
		if d < config.PowerupSpawnMin || d > config.PowerupSpawnMax {
			t.Fatalf("spawn delay %v outside [%v, %v]", d, config.PowerupSpawnMin, config.PowerupSpawnMax)
		}
	}
}

func TestMaybeSpawnAvoidsOccupiedCells(t *testing.T) {
	b := Board{Width: 8, Height: 8}
	m := NewManager(b, rand.New(rand.NewSource(9)))
	blocked := Cell{X: 3, Y: 3}
	var spawned []Cell
	for elapsed := 0.0; elapsed < 200; elapsed += 0.1 {
		m.Tick(0.1)
		m.MaybeSpawn(elapsed, func(c Cell) bool { return c == blocked })
		for _, p := range m.Pickups() {
			if p.age == 0 {
				spawned = append(spawned, p.Cell)
			}
		}
	}
	if len(spawned) == 0 {
		t.Fatal("no pickups spawned")
	}
	for _, c := range spawned {
		if c == blocked {
			t.Errorf("pickup spawned on occupied cell %v", blocked)
		}
	}
}

func TestPickupExpiresUncollected(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(4)))
	for elapsed := 0.0; elapsed < config.PowerupSpawnMax+1; elapsed += 0.1 {
		m.Tick(0.1)
		m.MaybeSpawn(elapsed, never)
	}
	if len(m.Pickups()) == 0 {
		t.Fatal("no pickup spawned within max delay")
	}
	for i := 0; i < int(config.PickupLifetime*10)+1; i++ {
		m.Tick(0.1)
	}
	if len(m.Pickups()) != 0 {
		t.Errorf("%d pickups survived past lifetime", len(m.Pickups()))
	}
}

func TestCollectAtRemovesPickup(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(4)))
	for elapsed := 0.0; len(m.Pickups()) == 0; elapsed += 0.1 {
		m.Tick(0.1)
		m.MaybeSpawn(elapsed, never)
	}
	cell := m.Pickups()[0].Cell
	kinds := m.CollectAt(cell)
	if len(kinds) != 1 {
		t.Fatalf("collected %d kinds, want 1", len(kinds))
	}
	if m.PickupAt(cell) {
		t.Error("pickup still present after collection")
	}
}

func TestTimedEffectExpiry(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	m.Apply(PowerupSlow)
	if !m.Has(PowerupSlow) {
		t.Fatal("slow not active after apply")
	}
	for i := 0; i < int(config.SlowDuration*60); i++ {
		m.Tick(1.0 / 60)
	}
	m.Tick(1.0 / 60)
	if m.Has(PowerupSlow) {
		t.Error("slow still active past its duration")
	}
}

func TestApplyRefreshesDuration(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	m.Apply(PowerupMultiplier)
	m.Tick(config.MultiplierDur - 1)
	m.Apply(PowerupMultiplier)
	m.Tick(config.MultiplierDur - 1)
	if !m.Has(PowerupMultiplier) {
		t.Error("refreshed multiplier expired early")
	}
	m.Tick(1.5)
	if m.Has(PowerupMultiplier) {
		t.Error("multiplier survived past refreshed duration")
	}
}

func TestFreezeDominatesSlow(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	m.Apply(PowerupSlow)
	if got := m.AppleSpeedModifier(); got != config.SlowFactor {
		t.Fatalf("modifier with slow = %v, want %v", got, config.SlowFactor)
	}
	m.Apply(PowerupFreeze)
	if got := m.AppleSpeedModifier(); got != 0 {
		t.Fatalf("modifier with freeze+slow = %v, want 0", got)
	}

	// Freeze runs out first; slow keeps going on its own clock.
	m.Apply(PowerupSlow) // refresh so slow outlives freeze
	m.Tick(config.FreezeDuration + 0.1)
	if m.Has(PowerupFreeze) {
		t.Fatal("freeze still active")
	}
	if !m.Has(PowerupSlow) {
		t.Fatal("slow expired with freeze")
	}
	if got := m.AppleSpeedModifier(); got != config.SlowFactor {
		t.Errorf("modifier after freeze = %v, want %v", got, config.SlowFactor)
	}
}

func TestShieldChargesStack(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	m.Apply(PowerupShield)
	m.Apply(PowerupShield)
	if m.ShieldCharges() != 2 {
		t.Fatalf("charges = %d, want 2", m.ShieldCharges())
	}
	if !m.UseShield() {
		t.Fatal("UseShield failed with charges available")
	}
	if m.ShieldCharges() != 1 {
		t.Fatalf("charges after use = %d, want 1", m.ShieldCharges())
	}
	m.UseShield()
	if m.UseShield() {
		t.Fatal("UseShield succeeded with no charges")
	}
}

func TestShieldSurvivesTicks(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	m.Apply(PowerupShield)
	for i := 0; i < 60*60; i++ {
		m.Tick(1.0 / 60)
	}
	if m.ShieldCharges() != 1 {
		t.Errorf("charges after a minute = %d, want 1", m.ShieldCharges())
	}
}

func TestSpeedShortensMoveInterval(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	if got := m.MoveInterval(); got != config.MoveInterval {
		t.Fatalf("base interval = %v, want %v", got, config.MoveInterval)
	}
	m.Apply(PowerupSpeed)
	if got := m.MoveInterval(); got != config.FastMoveInterval {
		t.Errorf("boosted interval = %v, want %v", got, config.FastMoveInterval)
	}
}

func TestScoreMultiplier(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(1)))
	if got := m.ScoreMultiplier(); got != 1 {
		t.Fatalf("base multiplier = %v, want 1", got)
	}
	m.Apply(PowerupMultiplier)
	if got := m.ScoreMultiplier(); got != float64(config.MultiplierFactor) {
		t.Errorf("multiplier = %v, want %v", got, config.MultiplierFactor)
	}
}

func TestKindDistributionCoversAll(t *testing.T) {
	m := NewManager(testBoard(), rand.New(rand.NewSource(11)))
	seen := make(map[PowerupKind]int)
	for i := 0; i < 5000; i++ {
		seen[m.rollKind()]++
	}
	for k := PowerupScissors; k <= PowerupNuke; k++ {
		if seen[k] == 0 {
			t.Errorf("kind %v never rolled", k)
		}
	}
	if seen[PowerupNuke] >= seen[PowerupScissors] {
		t.Errorf("nuke rolled %d times, scissors %d; nuke should be rare",
			seen[PowerupNuke], seen[PowerupScissors])
	}
}
