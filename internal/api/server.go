// Package api exposes the leaderboard over HTTP: ranked queries, run
// submission, aggregate stats, and a websocket feed of new entries.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"snake-survival/internal/leaderboard"
	"snake-survival/internal/sim"
)

// Server routes leaderboard traffic to a Board and fans new entries out to
// live subscribers.
type Server struct {
	board *leaderboard.Board
	live  *LiveHub
	mux   *http.ServeMux
}

// NewServer wires the handlers. The caller owns the Board; the live hub is
// started here and runs until Close.
func NewServer(board *leaderboard.Board) *Server {
	s := &Server{
		board: board,
		live:  NewLiveHub(),
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/leaderboard/global", s.handleGlobal)
	s.mux.HandleFunc("POST /api/leaderboard/submit", s.handleSubmit)
	s.mux.HandleFunc("GET /api/leaderboard/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/leaderboard/live", s.live.handleSubscribe)
	go s.live.Run()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close shuts down the live hub and disconnects its subscribers.
func (s *Server) Close() {
	s.live.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseQuery validates the filter parameters shared by the ranked queries.
func parseQuery(r *http.Request) (leaderboard.Query, error) {
	q := leaderboard.Query{
		Mode:       r.URL.Query().Get("mode"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	if q.Mode != "" && !sim.ValidMode(sim.Mode(q.Mode)) {
		return q, fmt.Errorf("unknown mode %q", q.Mode)
	}
	if q.Difficulty != "" && !sim.ValidTier(sim.Tier(q.Difficulty)) {
		return q, fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return q, fmt.Errorf("invalid limit %q", raw)
		}
		q.Limit = limit
	}
	return q, nil
}

func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries := s.board.Top(q)
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var entry leaderboard.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "malformed entry")
		return
	}
	stored, err := s.board.Add(entry)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Info("score submitted",
		"score", stored.Score, "difficulty", stored.Difficulty, "mode", stored.Mode)
	s.live.Broadcast(stored)
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Stats())
}
