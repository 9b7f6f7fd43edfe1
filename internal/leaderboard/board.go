package leaderboard

import (
	"fmt"
	"sort"
	"sync"

	"snake-survival/internal/config"
)

// Board is the ranked leaderboard. It validates submissions, keeps the top
// entries per mode and difficulty bucket, and persists through a Storage.
// Safe for concurrent use.
type Board struct {
	mu      sync.Mutex
	storage Storage
	entries []Entry
	nextID  int64
}

// Open loads the persisted entries and returns a ready Board.
func Open(storage Storage) (*Board, error) {
	entries, err := storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load leaderboard: %w", err)
	}
	b := &Board{storage: storage, entries: entries}
	for _, e := range entries {
		if e.ID > b.nextID {
			b.nextID = e.ID
		}
	}
	b.rank()
	return b, nil
}

// rank orders entries by score descending, older first on ties. Callers hold
// the mutex.
func (b *Board) rank() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		if b.entries[i].Score != b.entries[j].Score {
			return b.entries[i].Score > b.entries[j].Score
		}
		return b.entries[i].CreatedAt.Before(b.entries[j].CreatedAt)
	})
}

// trim drops entries beyond the retained top count in their mode and
// difficulty bucket. Callers hold the mutex; entries must be ranked.
func (b *Board) trim() {
	type bucket struct{ mode, difficulty string }
	counts := make(map[bucket]int)
	kept := b.entries[:0]
	for _, e := range b.entries {
		k := bucket{e.Mode, e.Difficulty}
		if counts[k] >= config.LeaderboardRetain {
			continue
		}
		counts[k]++
		kept = append(kept, e)
	}
	b.entries = kept
}

// Add validates and stores a finished run, returning the entry with its
// assigned ID. Entries that fall outside the retained top are accepted but
// immediately dropped.
func (b *Board) Add(e Entry) (Entry, error) {
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	e.ID = b.nextID
	b.entries = append(b.entries, e)
	b.rank()
	b.trim()

	if err := b.storage.SaveAll(b.entries); err != nil {
		return Entry{}, fmt.Errorf("could not save leaderboard: %w", err)
	}
	return e, nil
}

// Top returns the ranked entries matching the query.
func (b *Board) Top(q Query) []Entry {
	limit := q.Limit
	if limit <= 0 {
		limit = config.DefaultQueryLimit
	}
	if limit > config.MaxQueryLimit {
		limit = config.MaxQueryLimit
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	matches := make([]Entry, 0, limit)
	for _, e := range b.entries {
		if q.Mode != "" && e.Mode != q.Mode {
			continue
		}
		if q.Difficulty != "" && e.Difficulty != q.Difficulty {
			continue
		}
		matches = append(matches, e)
		if len(matches) == limit {
			break
		}
	}
	return matches
}

// Stats summarizes the retained entries.
func (b *Board) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Stats{TotalGames: len(b.entries)}
	sum := 0
	for _, e := range b.entries {
		switch e.Mode {
		case "ghost":
			s.GhostGames++
		case "normal":
			s.NormalGames++
		}
		if e.Score > s.TopScore {
			s.TopScore = e.Score
		}
		sum += e.Score
	}
	if s.TotalGames > 0 {
		s.AverageScore = sum / s.TotalGames
	}
	return s
}
