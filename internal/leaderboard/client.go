package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"snake-survival/internal/config"
	"snake-survival/internal/sim"
)

// Submitter records finished runs. The game loop does not care whether the
// destination is a local Board or a remote API.
type Submitter interface {
	Submit(rec sim.GameOverRecord)
}

// LocalSubmitter writes finished runs straight into a Board.
type LocalSubmitter struct {
	Board *Board
}

// Submit stores the run, logging failures. The game loop never blocks on or
// sees persistence errors.
func (s *LocalSubmitter) Submit(rec sim.GameOverRecord) {
	if _, err := s.Board.Add(FromRecord(rec)); err != nil {
		log.Error("failed to record score", "err", err)
	}
}

// Client submits finished runs to a remote leaderboard API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a submit client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: config.SubmitTimeout},
	}
}

// Submit posts the run in the background. Failures are logged and dropped;
// a dead leaderboard must never stall the game loop.
func (c *Client) Submit(rec sim.GameOverRecord) {
	entry := FromRecord(rec)
	go func() {
		if err := c.post(entry); err != nil {
			log.Error("failed to submit score", "err", err, "score", entry.Score)
		}
	}()
}

func (c *Client) post(entry Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not encode entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.SubmitTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/leaderboard/submit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leaderboard rejected submission: %s", resp.Status)
	}
	return nil
}
