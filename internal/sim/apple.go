package sim

import (
	"math"
	"math/rand"

	"snake-survival/internal/physics"
)

// SpawnEdge identifies which board edge an apple entered from.
type SpawnEdge int

const (
	EdgeTop SpawnEdge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e SpawnEdge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return "right"
	}
}

// Apple is a pursuer. It chases the snake head in continuous coordinates
// and never despawns by reaching an edge; only a hit, a Nuke, or the Ghost
// mode lifetime removes it.
type Apple struct {
	ID     uint64
	X, Y   float64
	Edge   SpawnEdge // Edge the apple entered from
	Frozen bool
	age    float64
}

// Cell returns the board cell the apple currently occupies.
func (a *Apple) Cell() Cell {
	return Cell{X: int(math.Floor(a.X)), Y: int(math.Floor(a.Y))}
}

// PlannedSpawn is the pre-computed origin of the next apple. It is fixed one
// spawn interval ahead so the display layer can telegraph it before the
// apple appears.
type PlannedSpawn struct {
	Edge SpawnEdge
	X, Y float64
}

// PursuitContext carries the per-tick inputs for ApplePool.Advance.
type PursuitContext struct {
	Delta         float64 // Seconds since last tick
	HeadX, HeadY  float64 // Snake head center in continuous coordinates
	Speed         float64 // Apple speed in cells/sec before modifiers
	SpeedModifier float64 // Global modifier from active effects (0 = frozen)
	SpawnInterval float64 // Current difficulty spawn interval
	MaxAge        float64 // Lifetime in seconds; 0 disables expiry
}

// ApplePool owns all in-flight apples: spawn scheduling, edge placement,
// pursuit movement, and removal.
type ApplePool struct {
	board      Board
	rng        *rand.Rand
	apples     []*Apple
	nextID     uint64
	sinceSpawn float64
	next       PlannedSpawn
}

// NewApplePool creates an empty pool and pre-computes the first spawn point.
func NewApplePool(board Board, rng *rand.Rand) *ApplePool {
	p := &ApplePool{board: board, rng: rng}
	p.next = p.planSpawn()
	return p
}

// planSpawn picks a random point on a random board edge.
func (p *ApplePool) planSpawn() PlannedSpawn {
	w := float64(p.board.Width)
	h := float64(p.board.Height)

	switch SpawnEdge(p.rng.Intn(4)) {
	case EdgeTop:
		return PlannedSpawn{Edge: EdgeTop, X: p.rng.Float64() * w, Y: 0}
	case EdgeBottom:
		return PlannedSpawn{Edge: EdgeBottom, X: p.rng.Float64() * w, Y: h - 1}
	case EdgeLeft:
		return PlannedSpawn{Edge: EdgeLeft, X: 0, Y: p.rng.Float64() * h}
	default:
		return PlannedSpawn{Edge: EdgeRight, X: w - 1, Y: p.rng.Float64() * h}
	}
}

// Advance moves every apple toward the snake head, retires expired apples,
// and spawns a new apple once the spawn interval has elapsed.
func (p *ApplePool) Advance(ctx PursuitContext) {
	frozen := ctx.SpeedModifier == 0
	step := ctx.Speed * ctx.SpeedModifier * ctx.Delta

	kept := p.apples[:0]
	for _, a := range p.apples {
		a.age += ctx.Delta
		if ctx.MaxAge > 0 && a.age >= ctx.MaxAge {
			continue
		}
		a.Frozen = frozen
		if !frozen {
			ux, uy := physics.UnitToward(a.X, a.Y, ctx.HeadX, ctx.HeadY)
			a.X += ux * step
			a.Y += uy * step
		}
		kept = append(kept, a)
	}
	p.apples = kept

	p.sinceSpawn += ctx.Delta
	if p.sinceSpawn >= ctx.SpawnInterval {
		p.sinceSpawn = 0
		p.spawn(frozen)
	}
}

// spawn places an apple at the planned point and pre-computes the next one.
func (p *ApplePool) spawn(frozen bool) {
	p.nextID++
	p.apples = append(p.apples, &Apple{
		ID:     p.nextID,
		X:      p.next.X,
		Y:      p.next.Y,
		Edge:   p.next.Edge,
		Frozen: frozen,
	})
	p.next = p.planSpawn()
}

// Nuke clears all apples immediately.
func (p *ApplePool) Nuke() {
	p.apples = p.apples[:0]
}

// AtCell returns all apples currently occupying c.
func (p *ApplePool) AtCell(c Cell) []*Apple {
	var hits []*Apple
	for _, a := range p.apples {
		if a.Cell() == c {
			hits = append(hits, a)
		}
	}
	return hits
}

// Remove deletes a single apple from the pool.
func (p *ApplePool) Remove(target *Apple) {
	kept := p.apples[:0]
	for _, a := range p.apples {
		if a != target {
			kept = append(kept, a)
		}
	}
	p.apples = kept
}

// Apples returns the live apples. The slice is owned by the pool; callers
// must not retain it across ticks.
func (p *ApplePool) Apples() []*Apple {
	return p.apples
}

// Count returns the number of in-flight apples.
func (p *ApplePool) Count() int {
	return len(p.apples)
}

// NextSpawn returns the pre-computed origin of the next apple and the time
// in seconds until it appears.
func (p *ApplePool) NextSpawn(spawnInterval float64) (PlannedSpawn, float64) {
	in := spawnInterval - p.sinceSpawn
	if in < 0 {
		in = 0
	}
	return p.next, in
}
