package sim

// AppleView is an apple's render-facing state.
type AppleView struct {
	X, Y   float64
	Cell   Cell
	Frozen bool
}

// PickupView is an uncollected powerup's render-facing state.
type PickupView struct {
	Kind      PowerupKind
	Cell      Cell
	Remaining float64
}

// EffectView is an active timed effect and its remaining duration.
type EffectView struct {
	Kind      PowerupKind
	Remaining float64
}

// SpawnPreview tells the renderer where and when the next apple appears so
// the edge marker can be drawn ahead of the spawn.
type SpawnPreview struct {
	Edge SpawnEdge
	X, Y float64
	In   float64
}

// Snapshot is a copied, read-only view of the game for rendering. Mutating a
// snapshot never affects the simulation.
type Snapshot struct {
	State State
	Mode  Mode
	Tier  Tier
	Board Board

	Segments []Cell
	Heading  Direction

	Apples    []AppleView
	NextSpawn *SpawnPreview

	Pickups       []PickupView
	Effects       []EffectView
	ShieldCharges int

	Elapsed float64
	Score   int
	Over    *GameOverRecord
}

// Snapshot copies the current game state. Safe to call in any phase; before
// the first run the entity fields are empty.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State: g.State(),
		Mode:  g.mode,
		Tier:  g.tier,
		Board: g.board,
	}
	if g.snake == nil {
		return snap
	}

	snap.Segments = append([]Cell(nil), g.snake.Segments()...)
	snap.Heading = g.snake.Heading()

	for _, a := range g.apples.Apples() {
		snap.Apples = append(snap.Apples, AppleView{X: a.X, Y: a.Y, Cell: a.Cell(), Frozen: a.Frozen})
	}
	rates := TierRates(g.tier, g.elapsed)
	if next, in := g.apples.NextSpawn(rates.SpawnInterval); in >= 0 {
		snap.NextSpawn = &SpawnPreview{Edge: next.Edge, X: next.X, Y: next.Y, In: in}
	}

	for _, p := range g.powerups.Pickups() {
		snap.Pickups = append(snap.Pickups, PickupView{Kind: p.Kind, Cell: p.Cell, Remaining: p.Remaining()})
	}
	for _, e := range g.powerups.Effects() {
		snap.Effects = append(snap.Effects, EffectView{Kind: e.Kind, Remaining: e.Remaining})
	}
	snap.ShieldCharges = g.powerups.ShieldCharges()

	snap.Elapsed = g.elapsed
	snap.Score = g.Score()
	if g.record != nil {
		rec := *g.record
		snap.Over = &rec
	}
	return snap
}
