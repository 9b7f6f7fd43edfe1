package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/looplab/fsm"

	"snake-survival/internal/config"
)

// State is the controller phase, mirroring the underlying state machine.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateGameOver State = "gameover"
)

// State machine event names.
const (
	eventStart  = "start"
	eventPause  = "pause"
	eventResume = "resume"
	eventFinish = "finish"
	eventReset  = "reset"
)

// CommandKind discriminates queued input commands.
type CommandKind int

const (
	CmdTurn CommandKind = iota
	CmdTogglePause
)

// Command is a discrete input event. Commands are queued as they arrive and
// drained once per tick, preserving order and keeping the tick itself pure
// with respect to its inputs.
type Command struct {
	Kind CommandKind
	Dir  Direction
}

// Options configure a Game. Invalid mode or tier is a configuration error
// surfaced at construction, never silently defaulted.
type Options struct {
	Mode Mode
	Tier Tier
	Seed int64 // Random source seed; runs with equal seeds and inputs replay identically
}

// Game is the top-level controller: it owns all run-scoped state, drives the
// fixed per-tick pipeline, and enforces the
// idle → running ⇄ paused → gameover → idle lifecycle.
type Game struct {
	mode  Mode
	tier  Tier
	board Board
	rng   *rand.Rand
	fsm   *fsm.FSM

	snake    *Snake
	apples   *ApplePool
	powerups *Manager

	elapsed   float64
	score     float64
	moveTimer float64
	tickCount uint64
	record    *GameOverRecord

	queue []Command
}

// NewGame validates the options and creates an idle game.
func NewGame(opts Options) (*Game, error) {
	if !ValidMode(opts.Mode) {
		return nil, fmt.Errorf("sim: invalid mode %q", opts.Mode)
	}
	if !ValidTier(opts.Tier) {
		return nil, fmt.Errorf("sim: invalid difficulty tier %q", opts.Tier)
	}

	g := &Game{
		mode:  opts.Mode,
		tier:  opts.Tier,
		board: Board{Width: config.BoardWidth, Height: config.BoardHeight},
		rng:   rand.New(rand.NewSource(opts.Seed)),
	}
	g.fsm = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventStart, Src: []string{string(StateIdle)}, Dst: string(StateRunning)},
			{Name: eventPause, Src: []string{string(StateRunning)}, Dst: string(StatePaused)},
			{Name: eventResume, Src: []string{string(StatePaused)}, Dst: string(StateRunning)},
			{Name: eventFinish, Src: []string{string(StateRunning)}, Dst: string(StateGameOver)},
			{Name: eventReset, Src: []string{string(StateGameOver)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{},
	)
	return g, nil
}

// State returns the current controller phase.
func (g *Game) State() State {
	return State(g.fsm.Current())
}

// Mode returns the run's collision mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Tier returns the run's difficulty tier.
func (g *Game) Tier() Tier {
	return g.tier
}

// Configure changes mode and tier for the next run. Only legal while idle;
// ignored otherwise, like any other input outside its state.
func (g *Game) Configure(mode Mode, tier Tier) error {
	if g.State() != StateIdle {
		return nil
	}
	if !ValidMode(mode) {
		return fmt.Errorf("sim: invalid mode %q", mode)
	}
	if !ValidTier(tier) {
		return fmt.Errorf("sim: invalid difficulty tier %q", tier)
	}
	g.mode = mode
	g.tier = tier
	return nil
}

// Start begins a run, constructing all run-scoped state fresh. No-op unless
// idle.
func (g *Game) Start() {
	if err := g.fsm.Event(context.Background(), eventStart); err != nil {
		return
	}
	g.snake = NewSnake(g.board.Center(), DirRight, config.InitialLength)
	g.apples = NewApplePool(g.board, g.rng)
	g.powerups = NewManager(g.board, g.rng)
	g.elapsed = 0
	g.score = 0
	g.moveTimer = 0
	g.tickCount = 0
	g.record = nil
	g.queue = g.queue[:0]
}

// Pause suspends ticking without mutating run state. No-op unless running.
func (g *Game) Pause() {
	_ = g.fsm.Event(context.Background(), eventPause)
}

// Resume continues a paused run. No-op unless paused.
func (g *Game) Resume() {
	_ = g.fsm.Event(context.Background(), eventResume)
}

// Reset discards all run-scoped state and returns to idle. Only legal from
// gameover.
func (g *Game) Reset() {
	if err := g.fsm.Event(context.Background(), eventReset); err != nil {
		return
	}
	g.snake = nil
	g.apples = nil
	g.powerups = nil
	g.record = nil
	g.queue = g.queue[:0]
}

// Enqueue adds an input command to the queue. Commands are drained at the
// next tick; commands that are illegal in the then-current state are
// silently dropped.
func (g *Game) Enqueue(cmd Command) {
	g.queue = append(g.queue, cmd)
}

// drainCommands applies queued input in arrival order.
func (g *Game) drainCommands() {
	for _, cmd := range g.queue {
		switch cmd.Kind {
		case CmdTurn:
			if g.State() == StateRunning {
				g.snake.Turn(cmd.Dir)
			}
		case CmdTogglePause:
			switch g.State() {
			case StateRunning:
				g.Pause()
			case StatePaused:
				g.Resume()
			}
		}
	}
	g.queue = g.queue[:0]
}

// Step advances the simulation by one fixed tick of dt seconds. Input is
// drained first; no simulation state mutates unless the game is running.
func (g *Game) Step(dt float64) {
	g.drainCommands()
	if g.State() != StateRunning {
		return
	}

	g.tickCount++
	g.elapsed += dt
	g.score += dt * g.powerups.ScoreMultiplier()

	rates := TierRates(g.tier, g.elapsed)

	// Apples pursue the head position as of the start of the tick.
	maxAge := 0.0
	if g.mode == ModeGhost {
		maxAge = config.GhostAppleLifetime
	}
	head := g.snake.Head()
	g.apples.Advance(PursuitContext{
		Delta:         dt,
		HeadX:         float64(head.X) + 0.5,
		HeadY:         float64(head.Y) + 0.5,
		Speed:         rates.AppleSpeed * config.AppleSpeedScale,
		SpeedModifier: g.powerups.AppleSpeedModifier(),
		SpawnInterval: rates.SpawnInterval,
		MaxAge:        maxAge,
	})

	// Snake advances on its own cadence within the fixed tick rate.
	g.moveTimer += dt
	for interval := g.powerups.MoveInterval(); g.moveTimer >= interval; interval = g.powerups.MoveInterval() {
		g.moveTimer -= interval
		g.snake.Advance()
	}

	// Powerups: expire, spawn, collect.
	g.powerups.Tick(dt)
	g.powerups.MaybeSpawn(g.elapsed, g.cellOccupied)
	for _, kind := range g.powerups.CollectAt(g.snake.Head()) {
		g.applyPowerup(kind)
	}

	if rec := g.resolveCollisions(rates); rec != nil {
		g.record = rec
		_ = g.fsm.Event(context.Background(), eventFinish)
	}
}

// applyPowerup routes a collected pickup: instant kinds act on the snake and
// apple pool here, lasting kinds are tracked by the manager.
func (g *Game) applyPowerup(kind PowerupKind) {
	switch kind {
	case PowerupScissors:
		g.snake.CutTail(config.ScissorsCut)
	case PowerupNuke:
		g.apples.Nuke()
	default:
		g.powerups.Apply(kind)
	}
}

// cellOccupied reports cells new pickups must avoid.
func (g *Game) cellOccupied(c Cell) bool {
	return g.snake.Occupies(c) || g.powerups.PickupAt(c)
}

// Elapsed returns seconds survived in the current run.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Score returns the current score: one point per second survived, doubled
// while the 2x effect is active. Monotonically non-decreasing while running.
func (g *Game) Score() int {
	return int(math.Floor(g.score))
}

// Over returns the terminal record, or nil while no run has ended.
func (g *Game) Over() *GameOverRecord {
	return g.record
}
