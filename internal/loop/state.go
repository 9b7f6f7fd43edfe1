package loop

import (
	"time"

	"snake-survival/internal/config"
	"snake-survival/internal/draw"
	"snake-survival/internal/leaderboard"
	"snake-survival/internal/sim"
)

// Screen represents the session's screen phase. The simulation has its own
// lifecycle; Screen adds the menu surface around it.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenPlaying
	ScreenGameOver
)

// Options configure a session loop.
type Options struct {
	// TermSizeFunc reports the terminal dimensions each frame; defaults to
	// the local terminal.
	TermSizeFunc draw.TermSizeFunc
	// Submitter receives finished runs; nil disables score submission.
	Submitter leaderboard.Submitter
	// TopScores supplies ranked entries for the game-over screen; nil hides
	// the list.
	TopScores func(mode, difficulty string, limit int) []leaderboard.Entry
	// Seed for the run's random source; zero seeds from the clock.
	Seed int64
}

// State holds one session's menu selections, the running simulation, and
// frame bookkeeping.
type State struct {
	Screen  Screen
	Game    *sim.Game
	Running bool

	// Menu selections carried across runs.
	TierIndex int
	Mode      sim.Mode

	// Set once per finished run.
	submitted bool

	lastInput  time.Time
	frameCount uint64

	opts Options
}

// NewState creates a session on the title screen with default selections.
func NewState(opts Options) (*State, error) {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	s := &State{
		Screen:    ScreenTitle,
		Running:   true,
		Mode:      sim.ModeNormal,
		lastInput: time.Now(),
		opts:      opts,
	}
	if err := s.rebuildGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// Tier returns the currently selected difficulty tier.
func (s *State) Tier() sim.Tier {
	return sim.Tiers()[s.TierIndex]
}

// rebuildGame replaces the simulation with a fresh idle one carrying the
// current selections. Used at session start and when abandoning a run.
func (s *State) rebuildGame() error {
	g, err := sim.NewGame(sim.Options{
		Mode: s.Mode,
		Tier: s.Tier(),
		Seed: s.opts.Seed + int64(s.frameCount),
	})
	if err != nil {
		return err
	}
	s.Game = g
	s.submitted = false
	return nil
}

// startRun applies the menu selections and starts the simulation.
func (s *State) startRun() {
	s.Game.Configure(s.Mode, s.Tier())
	s.Game.Start()
	s.submitted = false
	s.Screen = ScreenPlaying
}

// finishRun submits the record once and moves to the game-over screen.
func (s *State) finishRun(rec *sim.GameOverRecord) {
	if !s.submitted && s.opts.Submitter != nil {
		s.opts.Submitter.Submit(*rec)
	}
	s.submitted = true
	s.Screen = ScreenGameOver
}

// idleFor reports how long the session has gone without input.
func (s *State) idleFor() time.Duration {
	return time.Since(s.lastInput)
}

// idleDisconnect reports whether the session exceeded the inactivity limit.
func (s *State) idleDisconnect() bool {
	return s.idleFor() > config.InactivityDisconnectUser*time.Second
}

// idleWarn reports whether the inactivity warning should be shown.
func (s *State) idleWarn() bool {
	return s.idleFor() > config.InactivityWarnUser*time.Second
}
