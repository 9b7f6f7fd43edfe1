package leaderboard

import (
	"testing"
	"time"

	"snake-survival/internal/config"
)

func entry(score int, difficulty, mode string, at time.Time) Entry {
	return Entry{
		Score:      score,
		Length:     10,
		Difficulty: difficulty,
		Mode:       mode,
		CreatedAt:  at,
	}
}

func openTestBoard(t *testing.T) (*Board, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	board, err := Open(storage)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return board, storage
}

func TestAddAssignsIDsAndPersists(t *testing.T) {
	board, storage := openTestBoard(t)
	now := time.Now()

	first, err := board.Add(entry(10, "easy", "normal", now))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := board.Add(entry(20, "easy", "normal", now))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.ID == second.ID || first.ID == 0 {
		t.Errorf("IDs not unique: %d, %d", first.ID, second.ID)
	}

	saved, _ := storage.LoadAll()
	if len(saved) != 2 {
		t.Errorf("persisted %d entries, want 2", len(saved))
	}
}

func TestAddRejectsInvalidEntries(t *testing.T) {
	board, _ := openTestBoard(t)
	now := time.Now()

	cases := []struct {
		name string
		e    Entry
	}{
		{"negative score", entry(-1, "easy", "normal", now)},
		{"absurd score", entry(config.MaxSubmitScore+1, "easy", "normal", now)},
		{"zero length", Entry{Score: 5, Length: 0, Difficulty: "easy", Mode: "normal", CreatedAt: now}},
		{"oversized length", Entry{Score: 5, Length: config.MaxLength + 1, Difficulty: "easy", Mode: "normal", CreatedAt: now}},
		{"unknown difficulty", entry(5, "brutal", "normal", now)},
		{"unknown mode", entry(5, "easy", "turbo", now)},
	}
	for _, tc := range cases {
		if _, err := board.Add(tc.e); err == nil {
			t.Errorf("%s: accepted", tc.name)
		}
	}
	if got := board.Stats().TotalGames; got != 0 {
		t.Errorf("invalid entries stored: %d", got)
	}
}

func TestTopRanksByScoreThenAge(t *testing.T) {
	board, _ := openTestBoard(t)
	base := time.Now()

	board.Add(entry(10, "easy", "normal", base.Add(2*time.Second)))
	board.Add(entry(30, "easy", "normal", base))
	board.Add(entry(10, "easy", "normal", base.Add(time.Second)))

	top := board.Top(Query{})
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3", len(top))
	}
	if top[0].Score != 30 {
		t.Errorf("top score = %d, want 30", top[0].Score)
	}
	if !top[1].CreatedAt.Before(top[2].CreatedAt) {
		t.Error("ties not broken by age")
	}
}

func TestTopFilters(t *testing.T) {
	board, _ := openTestBoard(t)
	now := time.Now()

	board.Add(entry(10, "easy", "normal", now))
	board.Add(entry(20, "hard", "normal", now))
	board.Add(entry(30, "hard", "ghost", now))

	hard := board.Top(Query{Difficulty: "hard"})
	if len(hard) != 2 {
		t.Fatalf("hard filter returned %d entries, want 2", len(hard))
	}
	ghostHard := board.Top(Query{Mode: "ghost", Difficulty: "hard"})
	if len(ghostHard) != 1 || ghostHard[0].Score != 30 {
		t.Fatalf("mode+difficulty filter returned %+v", ghostHard)
	}
}

func TestTopClampsLimit(t *testing.T) {
	board, _ := openTestBoard(t)
	now := time.Now()
	for i := 0; i < 5; i++ {
		board.Add(entry(i+1, "easy", "normal", now))
	}

	if got := len(board.Top(Query{Limit: 2})); got != 2 {
		t.Errorf("limit 2 returned %d entries", got)
	}
	if got := len(board.Top(Query{Limit: config.MaxQueryLimit + 50})); got != 5 {
		t.Errorf("oversized limit returned %d entries, want all 5", got)
	}
}

func TestRetentionPerBucket(t *testing.T) {
	board, _ := openTestBoard(t)
	now := time.Now()

	for i := 0; i < config.LeaderboardRetain+10; i++ {
		board.Add(entry(i+1, "easy", "normal", now))
	}
	board.Add(entry(1, "hard", "ghost", now))

	easy := board.Top(Query{Mode: "normal", Difficulty: "easy", Limit: config.MaxQueryLimit})
	if len(easy) != config.LeaderboardRetain {
		t.Errorf("retained %d easy entries, want %d", len(easy), config.LeaderboardRetain)
	}
	// The lowest scores were the ones dropped.
	last := easy[len(easy)-1]
	if last.Score != 11 {
		t.Errorf("weakest retained score = %d, want 11", last.Score)
	}
	// The other bucket is untouched.
	if got := len(board.Top(Query{Mode: "ghost", Difficulty: "hard"})); got != 1 {
		t.Errorf("ghost/hard bucket has %d entries, want 1", got)
	}
}

func TestStats(t *testing.T) {
	board, _ := openTestBoard(t)
	now := time.Now()

	board.Add(entry(10, "easy", "normal", now))
	board.Add(entry(40, "hard", "normal", now))
	board.Add(entry(25, "hard", "ghost", now))

	s := board.Stats()
	if s.TotalGames != 3 {
		t.Errorf("total games = %d, want 3", s.TotalGames)
	}
	if s.NormalGames != 2 || s.GhostGames != 1 {
		t.Errorf("mode counts = %d normal / %d ghost, want 2 / 1", s.NormalGames, s.GhostGames)
	}
	if s.TopScore != 40 {
		t.Errorf("top score = %d, want 40", s.TopScore)
	}
	if s.AverageScore != 25 {
		t.Errorf("average score = %d, want 25", s.AverageScore)
	}
}

func TestOpenRestoresState(t *testing.T) {
	storage := NewMemoryStorage()
	board, err := Open(storage)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	now := time.Now()
	board.Add(entry(10, "easy", "normal", now))
	board.Add(entry(20, "easy", "normal", now))

	reopened, err := Open(storage)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Stats().TotalGames; got != 2 {
		t.Fatalf("reopened with %d entries, want 2", got)
	}
	added, err := reopened.Add(entry(30, "easy", "normal", now))
	if err != nil {
		t.Fatalf("Add after reopen: %v", err)
	}
	if added.ID != 3 {
		t.Errorf("ID after reopen = %d, want 3", added.ID)
	}
}
