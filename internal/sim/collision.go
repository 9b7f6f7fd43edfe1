package sim

import "snake-survival/internal/config"

// DeathCause names the terminal condition that ended a run.
type DeathCause string

const (
	DeathWallCollision    DeathCause = "wall-collision"
	DeathSelfCollision    DeathCause = "self-collision"
	DeathAppleHit         DeathCause = "apple-hit"
	DeathMaxLengthReached DeathCause = "max-length"
)

// GameOverRecord is handed to the leaderboard collaborator when a run ends.
type GameOverRecord struct {
	Cause        DeathCause
	Mode         Mode
	Tier         Tier
	SurvivalTime float64 // Seconds survived
	Score        int
	Length       int // Final segment count
}

// resolveCollisions arbitrates this tick's wall, self, and apple contacts
// in fixed priority. It returns a non-nil record on any fatal outcome;
// otherwise it applies the tick's survivable consequences (Ghost wrap,
// Shield absorption, body-hit growth) and returns nil.
func (g *Game) resolveCollisions(rates Rates) *GameOverRecord {
	// Max length overrides everything, in both modes.
	if g.snake.Len() >= config.MaxLength {
		return g.gameOver(DeathMaxLengthReached)
	}

	// Walls: fatal in Normal mode; Ghost mode wraps to the opposite edge.
	head := g.snake.Head()
	if !g.board.Contains(head) {
		if g.mode == ModeNormal {
			return g.gameOver(DeathWallCollision)
		}
		head = g.board.Wrap(head)
		g.snake.SetHead(head)
	}

	// Self-intersection: fatal in Normal mode only.
	if g.mode == ModeNormal && g.snake.SelfIntersects() {
		return g.gameOver(DeathSelfCollision)
	}

	// Apples at the head cell. Simultaneous arrivals are all head hits;
	// order is irrelevant since the first unshielded one ends the run.
	for _, a := range g.apples.AtCell(head) {
		if g.powerups.UseShield() {
			// Absorbed: apple destroyed, no death, no growth credit.
			g.apples.Remove(a)
			continue
		}
		return g.gameOver(DeathAppleHit)
	}

	// Apples caught by the body are absorbed and grow the snake by the
	// tier's current growth-per-hit. This is what makes MaxLengthReached
	// reachable. Collect first: Remove compacts the pool slice in place.
	var absorbed []*Apple
	for _, a := range g.apples.Apples() {
		if g.snake.BodyContains(a.Cell()) {
			absorbed = append(absorbed, a)
		}
	}
	for _, a := range absorbed {
		g.apples.Remove(a)
		g.snake.Grow(rates.Growth)
	}

	return nil
}

// gameOver builds the terminal record for the current run.
func (g *Game) gameOver(cause DeathCause) *GameOverRecord {
	return &GameOverRecord{
		Cause:        cause,
		Mode:         g.mode,
		Tier:         g.tier,
		SurvivalTime: g.elapsed,
		Score:        g.Score(),
		Length:       g.snake.Len(),
	}
}
