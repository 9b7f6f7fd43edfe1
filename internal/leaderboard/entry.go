package leaderboard

import (
	"fmt"
	"time"

	"snake-survival/internal/config"
	"snake-survival/internal/sim"
)

// Entry is one finished run on the leaderboard.
type Entry struct {
	ID         int64     `json:"id"`
	Score      int       `json:"score"`
	Length     int       `json:"length"`
	Difficulty string    `json:"difficulty"`
	Mode       string    `json:"mode"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromRecord converts a finished run into a leaderboard entry.
func FromRecord(rec sim.GameOverRecord) Entry {
	return Entry{
		Score:      rec.Score,
		Length:     rec.Length,
		Difficulty: string(rec.Tier),
		Mode:       string(rec.Mode),
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate rejects entries that no legitimate run can produce.
func (e Entry) Validate() error {
	if e.Score < 0 || e.Score > config.MaxSubmitScore {
		return fmt.Errorf("leaderboard: score %d out of range [0, %d]", e.Score, config.MaxSubmitScore)
	}
	if e.Length < 1 || e.Length > config.MaxLength {
		return fmt.Errorf("leaderboard: length %d out of range [1, %d]", e.Length, config.MaxLength)
	}
	if !sim.ValidTier(sim.Tier(e.Difficulty)) {
		return fmt.Errorf("leaderboard: unknown difficulty %q", e.Difficulty)
	}
	if !sim.ValidMode(sim.Mode(e.Mode)) {
		return fmt.Errorf("leaderboard: unknown mode %q", e.Mode)
	}
	return nil
}

// Query filters ranked entries. Empty Mode or Difficulty matches everything;
// Limit is clamped to the configured maximum, with zero meaning the default.
type Query struct {
	Mode       string
	Difficulty string
	Limit      int
}

// Stats summarizes the stored leaderboard.
type Stats struct {
	TotalGames   int `json:"total_games"`
	GhostGames   int `json:"ghost_games"`
	NormalGames  int `json:"normal_games"`
	TopScore     int `json:"top_score"`
	AverageScore int `json:"average_score"`
}
