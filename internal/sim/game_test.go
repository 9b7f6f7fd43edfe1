package sim

import (
	"testing"

	"snake-survival/internal/config"
)

const dt = 1.0 / config.TickRate

func newTestGame(t *testing.T, mode Mode, tier Tier) *Game {
	t.Helper()
	g, err := NewGame(Options{Mode: mode, Tier: tier, Seed: 1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func stepFor(g *Game, seconds float64) {
	for i := 0; i < int(seconds*config.TickRate); i++ {
		g.Step(dt)
	}
}

func TestNewGameRejectsBadOptions(t *testing.T) {
	if _, err := NewGame(Options{Mode: "turbo", Tier: TierEasy}); err == nil {
		t.Error("invalid mode accepted")
	}
	if _, err := NewGame(Options{Mode: ModeNormal, Tier: "brutal"}); err == nil {
		t.Error("invalid tier accepted")
	}
}

func TestLifecycle(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	if g.State() != StateIdle {
		t.Fatalf("state = %v, want idle", g.State())
	}

	g.Pause() // illegal from idle, ignored
	if g.State() != StateIdle {
		t.Fatalf("pause from idle moved state to %v", g.State())
	}

	g.Start()
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running", g.State())
	}
	g.Start() // illegal from running, ignored
	if g.State() != StateRunning {
		t.Fatalf("double start moved state to %v", g.State())
	}

	g.Pause()
	if g.State() != StatePaused {
		t.Fatalf("state = %v, want paused", g.State())
	}
	g.Resume()
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running", g.State())
	}

	g.Reset() // illegal from running, ignored
	if g.State() != StateRunning {
		t.Fatalf("reset from running moved state to %v", g.State())
	}
}

func TestStepIdleIsNoop(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Step(dt)
	if g.Elapsed() != 0 || g.Score() != 0 {
		t.Errorf("idle step mutated state: elapsed %v score %d", g.Elapsed(), g.Score())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	stepFor(g, 1)
	elapsed := g.Elapsed()
	snap := g.Snapshot()

	g.Enqueue(Command{Kind: CmdTogglePause})
	stepFor(g, 2)
	if g.State() != StatePaused {
		t.Fatalf("state = %v, want paused", g.State())
	}
	if g.Elapsed() != elapsed {
		t.Errorf("elapsed moved while paused: %v -> %v", elapsed, g.Elapsed())
	}
	after := g.Snapshot()
	if len(after.Segments) != len(snap.Segments) || after.Segments[0] != snap.Segments[0] {
		t.Error("snake moved while paused")
	}

	g.Enqueue(Command{Kind: CmdTogglePause})
	g.Step(dt)
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running", g.State())
	}
	if g.Elapsed() <= elapsed {
		t.Error("elapsed did not resume")
	}
}

func TestTurnCommandSteersSnake(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	start := g.Snapshot().Segments[0]

	g.Enqueue(Command{Kind: CmdTurn, Dir: DirUp})
	stepFor(g, config.MoveInterval+dt)
	head := g.Snapshot().Segments[0]
	if head.Y >= start.Y {
		t.Errorf("head %v did not move up from %v", head, start)
	}
	if head.X != start.X {
		t.Errorf("head %v drifted horizontally from %v", head, start)
	}
}

func TestWallDeathNormalMode(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	stepFor(g, 5) // heading right from center reaches the wall well inside 5s
	if g.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", g.State())
	}
	rec := g.Over()
	if rec == nil {
		t.Fatal("no game-over record")
	}
	if rec.Cause != DeathWallCollision {
		t.Errorf("cause = %v, want %v", rec.Cause, DeathWallCollision)
	}
	if rec.Length != config.InitialLength {
		t.Errorf("length = %d, want %d", rec.Length, config.InitialLength)
	}
	if rec.Score != int(rec.SurvivalTime) {
		t.Errorf("score = %d, survival = %v; want one point per second", rec.Score, rec.SurvivalTime)
	}
}

func TestGhostModeWrapsWalls(t *testing.T) {
	g := newTestGame(t, ModeGhost, TierEasy)
	g.Start()
	stepFor(g, 3.8) // crosses the right wall around 3.6s
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running after wrap", g.State())
	}
	head := g.Snapshot().Segments[0]
	if !g.board.Contains(head) {
		t.Fatalf("head %v out of bounds after wrap", head)
	}
	if head.X >= g.board.Width/2 {
		t.Errorf("head %v did not wrap to the left edge", head)
	}
}

func TestSelfCollisionNormalMode(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	s := NewSnake(Cell{X: 10, Y: 5}, DirRight, 5)
	s.Turn(DirUp)
	s.Advance()
	s.Turn(DirLeft)
	s.Advance()
	s.Turn(DirDown)
	s.Advance() // head now on the body
	g.snake = s

	g.Step(dt)
	if g.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", g.State())
	}
	if g.Over().Cause != DeathSelfCollision {
		t.Errorf("cause = %v, want %v", g.Over().Cause, DeathSelfCollision)
	}
}

func TestSelfCollisionIgnoredInGhostMode(t *testing.T) {
	g := newTestGame(t, ModeGhost, TierEasy)
	g.Start()
	s := NewSnake(Cell{X: 10, Y: 5}, DirRight, 5)
	s.Turn(DirUp)
	s.Advance()
	s.Turn(DirLeft)
	s.Advance()
	s.Turn(DirDown)
	s.Advance()
	g.snake = s

	g.Step(dt)
	if g.State() != StateRunning {
		t.Errorf("state = %v, want running", g.State())
	}
}

// injectApple places an apple inside cell c without touching spawn plumbing.
func injectApple(g *Game, c Cell) *Apple {
	a := &Apple{ID: 999, X: float64(c.X) + 0.2, Y: float64(c.Y) + 0.2}
	g.apples.apples = append(g.apples.apples, a)
	return a
}

func TestAppleHeadHitIsFatal(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	injectApple(g, g.snake.Head())

	g.Step(dt)
	if g.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", g.State())
	}
	rec := g.Over()
	if rec.Cause != DeathAppleHit {
		t.Errorf("cause = %v, want %v", rec.Cause, DeathAppleHit)
	}
	if rec.Length != config.InitialLength {
		t.Errorf("length = %d, want %d; a fatal hit grants no growth", rec.Length, config.InitialLength)
	}
}

func TestAppleHeadHitFatalInGhostMode(t *testing.T) {
	g := newTestGame(t, ModeGhost, TierEasy)
	g.Start()
	injectApple(g, g.snake.Head())

	g.Step(dt)
	if g.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", g.State())
	}
	if g.Over().Cause != DeathAppleHit {
		t.Errorf("cause = %v, want %v", g.Over().Cause, DeathAppleHit)
	}
}

func TestShieldAbsorbsHeadHit(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	g.powerups.Apply(PowerupShield)
	injectApple(g, g.snake.Head())

	g.Step(dt)
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running", g.State())
	}
	if g.apples.Count() != 0 {
		t.Errorf("apple count = %d, want 0 after absorption", g.apples.Count())
	}
	if g.powerups.ShieldCharges() != 0 {
		t.Errorf("shield charges = %d, want 0", g.powerups.ShieldCharges())
	}
	if g.snake.Len() != config.InitialLength {
		t.Errorf("length = %d, want %d; absorption grants no growth", g.snake.Len(), config.InitialLength)
	}
}

func TestBodyAbsorptionGrowsSnake(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	body := g.snake.Segments()[1]
	injectApple(g, body)

	g.Step(dt)
	if g.State() != StateRunning {
		t.Fatalf("state = %v, want running", g.State())
	}
	if g.apples.Count() != 0 {
		t.Errorf("apple count = %d, want 0 after absorption", g.apples.Count())
	}
	// Growth is credited and realized on the next advance.
	stepFor(g, config.MoveInterval+dt)
	if g.snake.Len() != config.InitialLength+1 {
		t.Errorf("length = %d, want %d", g.snake.Len(), config.InitialLength+1)
	}
}

func TestMaxLengthEndsRunBothModes(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeGhost} {
		g := newTestGame(t, mode, TierEasy)
		g.Start()
		g.snake = NewSnake(Cell{X: 55, Y: 20}, DirRight, config.MaxLength)

		g.Step(dt)
		if g.State() != StateGameOver {
			t.Fatalf("mode %v: state = %v, want gameover", mode, g.State())
		}
		if g.Over().Cause != DeathMaxLengthReached {
			t.Errorf("mode %v: cause = %v, want %v", mode, g.Over().Cause, DeathMaxLengthReached)
		}
	}
}

func TestScissorsCutTail(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	g.snake = NewSnake(Cell{X: 30, Y: 20}, DirRight, 10)
	g.powerups.pickups = append(g.powerups.pickups, &Pickup{Kind: PowerupScissors, Cell: g.snake.Head()})

	g.Step(dt)
	if g.snake.Len() != 10-config.ScissorsCut {
		t.Errorf("length = %d, want %d", g.snake.Len(), 10-config.ScissorsCut)
	}
}

func TestNukeClearsApples(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	for i := 0; i < 4; i++ {
		injectApple(g, Cell{X: 2 + i*10, Y: 2})
	}
	g.powerups.pickups = append(g.powerups.pickups, &Pickup{Kind: PowerupNuke, Cell: g.snake.Head()})

	g.Step(dt)
	if g.apples.Count() != 0 {
		t.Errorf("apple count = %d, want 0 after nuke", g.apples.Count())
	}
	if g.State() != StateRunning {
		t.Errorf("state = %v, want running", g.State())
	}
}

func TestMultiplierDoublesScoreAccrual(t *testing.T) {
	base := newTestGame(t, ModeNormal, TierEasy)
	base.Start()
	boosted := newTestGame(t, ModeNormal, TierEasy)
	boosted.Start()
	boosted.powerups.Apply(PowerupMultiplier)

	for i := 0; i < config.TickRate+1; i++ {
		base.Step(dt)
		boosted.Step(dt)
	}
	if base.Score() != 1 {
		t.Errorf("base score = %d, want 1", base.Score())
	}
	if boosted.Score() != 2 {
		t.Errorf("boosted score = %d, want 2", boosted.Score())
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	g.Start()
	stepFor(g, 5) // run into the wall
	if g.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", g.State())
	}

	g.Reset()
	if g.State() != StateIdle {
		t.Fatalf("state = %v, want idle", g.State())
	}
	if g.Over() != nil {
		t.Error("record survived reset")
	}
	snap := g.Snapshot()
	if len(snap.Segments) != 0 || len(snap.Apples) != 0 {
		t.Error("run state survived reset")
	}

	// A fresh run starts clean.
	g.Start()
	if g.Elapsed() != 0 || g.Score() != 0 {
		t.Errorf("new run starts with elapsed %v score %d", g.Elapsed(), g.Score())
	}
}

func TestConfigureOnlyWhileIdle(t *testing.T) {
	g := newTestGame(t, ModeNormal, TierEasy)
	if err := g.Configure(ModeGhost, TierHacker); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if g.Mode() != ModeGhost || g.Tier() != TierHacker {
		t.Fatalf("mode/tier = %v/%v, want ghost/hacker", g.Mode(), g.Tier())
	}
	if err := g.Configure("turbo", TierEasy); err == nil {
		t.Error("invalid mode accepted")
	}

	g.Start()
	if err := g.Configure(ModeNormal, TierEasy); err != nil {
		t.Fatalf("Configure while running: %v", err)
	}
	if g.Mode() != ModeGhost {
		t.Error("Configure mutated mode mid-run")
	}
}

func TestSeededRunsReplayIdentically(t *testing.T) {
	run := func() Snapshot {
		g, err := NewGame(Options{Mode: ModeGhost, Tier: TierMedium, Seed: 99})
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		g.Start()
		for i := 0; i < 600; i++ {
			if i == 120 {
				g.Enqueue(Command{Kind: CmdTurn, Dir: DirUp})
			}
			g.Step(dt)
		}
		return g.Snapshot()
	}
	a, b := run(), run()

	if a.State != b.State || a.Score != b.Score || a.Elapsed != b.Elapsed {
		t.Fatalf("runs diverged: %v/%d/%v vs %v/%d/%v",
			a.State, a.Score, a.Elapsed, b.State, b.Score, b.Elapsed)
	}
	if len(a.Segments) != len(b.Segments) {
		t.Fatalf("segment counts diverged: %d vs %d", len(a.Segments), len(b.Segments))
	}
	for i := range a.Segments {
		if a.Segments[i] != b.Segments[i] {
			t.Fatalf("segment %d diverged: %v vs %v", i, a.Segments[i], b.Segments[i])
		}
	}
	if len(a.Apples) != len(b.Apples) {
		t.Fatalf("apple counts diverged: %d vs %d", len(a.Apples), len(b.Apples))
	}
	for i := range a.Apples {
		if a.Apples[i] != b.Apples[i] {
			t.Fatalf("apple %d diverged: %+v vs %+v", i, a.Apples[i], b.Apples[i])
		}
	}
}
