package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"snake-survival/internal/config"
	"snake-survival/internal/leaderboard"
	"snake-survival/internal/loop"
)

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts, err := buildOptions()
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "failed to open leaderboard: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// buildOptions wires the local JSON-file leaderboard, or a remote one when
// LEADERBOARD_URL points at an API server.
func buildOptions() (loop.Options, error) {
	if url := config.GetEnv("LEADERBOARD_URL", ""); url != "" {
		return loop.Options{Submitter: leaderboard.NewClient(url)}, nil
	}

	storage, err := leaderboard.NewJSONFileStorage()
	if err != nil {
		return loop.Options{}, err
	}
	board, err := leaderboard.Open(storage)
	if err != nil {
		return loop.Options{}, err
	}
	return loop.Options{
		Submitter: &leaderboard.LocalSubmitter{Board: board},
		TopScores: func(mode, difficulty string, limit int) []leaderboard.Entry {
			return board.Top(leaderboard.Query{Mode: mode, Difficulty: difficulty, Limit: limit})
		},
	}, nil
}
