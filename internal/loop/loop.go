// Package loop provides the interactive session loop and its screens.
package loop

import (
	"bufio"
	"io"
	"time"

	"snake-survival/internal/config"
	"snake-survival/internal/draw"
	"snake-survival/internal/input"
	"snake-survival/internal/sim"
)

// tickSeconds is the fixed simulation delta; the simulation never sees wall
// clock jitter.
const tickSeconds = 1.0 / config.TickRate

// minTermWidth and minTermHeight are the smallest terminal the session will
// draw into.
const (
	minTermWidth  = 40
	minTermHeight = 12
)

// Run starts the session loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the input stream closes, or the session
// idles out.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	state, err := NewState(opts)
	if err != nil {
		return err
	}
	stream := input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	termWidth, termHeight, err := state.opts.TermSizeFunc()
	if err != nil {
		termWidth, termHeight = config.BoardWidth, config.BoardHeight/2
	}
	canvas := draw.NewCanvas(termWidth, termHeight, config.BoardWidth, config.BoardHeight)
	cw := draw.NewChunkWriter(w, 0, 0)

	for state.Running {
		frameStart := time.Now()
		state.frameCount++

		// ===== INPUT PHASE =====
		processInput(state, input.ReadEvents(stream))
		if state.idleDisconnect() {
			break
		}

		// ===== UPDATE PHASE =====
		if state.Screen == ScreenPlaying {
			state.Game.Step(tickSeconds)
			if rec := state.Game.Over(); rec != nil {
				state.finishRun(rec)
			}
		}

		// ===== DRAW PHASE =====
		if err := drawFrame(state, cw, canvas); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// processInput routes decoded events to the current screen.
func processInput(state *State, events []input.Event) {
	if len(events) > 0 {
		state.lastInput = time.Now()
	}

	for _, e := range events {
		if e.Kind == input.Quit {
			state.Running = false
			return
		}

		switch state.Screen {
		case ScreenTitle:
			titleInput(state, e)
		case ScreenPlaying:
			playingInput(state, e)
		case ScreenGameOver:
			gameOverInput(state, e)
		}
	}
}

func titleInput(state *State, e input.Event) {
	switch e.Kind {
	case input.Number:
		if e.Value >= 1 && e.Value <= len(sim.Tiers()) {
			state.TierIndex = e.Value - 1
		}
	case input.Up:
		if state.TierIndex > 0 {
			state.TierIndex--
		}
	case input.Down:
		if state.TierIndex < len(sim.Tiers())-1 {
			state.TierIndex++
		}
	case input.ModeToggle:
		if state.Mode == sim.ModeNormal {
			state.Mode = sim.ModeGhost
		} else {
			state.Mode = sim.ModeNormal
		}
	case input.Enter, input.Pause:
		state.startRun()
	}
}

func playingInput(state *State, e input.Event) {
	switch e.Kind {
	case input.Up:
		state.Game.Enqueue(sim.Command{Kind: sim.CmdTurn, Dir: sim.DirUp})
	case input.Down:
		state.Game.Enqueue(sim.Command{Kind: sim.CmdTurn, Dir: sim.DirDown})
	case input.Left:
		state.Game.Enqueue(sim.Command{Kind: sim.CmdTurn, Dir: sim.DirLeft})
	case input.Right:
		state.Game.Enqueue(sim.Command{Kind: sim.CmdTurn, Dir: sim.DirRight})
	case input.Pause:
		state.Game.Enqueue(sim.Command{Kind: sim.CmdTogglePause})
	case input.Escape:
		// Abandon the run without recording it.
		state.rebuildGame()
		state.Screen = ScreenTitle
	}
}

func gameOverInput(state *State, e input.Event) {
	switch e.Kind {
	case input.Enter, input.Pause:
		state.Game.Reset()
		state.startRun()
	case input.Escape:
		state.Game.Reset()
		state.Screen = ScreenTitle
	}
}

// drawFrame lays out the canvas for the current terminal size and draws the
// active screen.
func drawFrame(state *State, cw *draw.ChunkWriter, canvas *draw.Canvas) error {
	termWidth, termHeight, err := state.opts.TermSizeFunc()
	if err != nil {
		return err
	}

	draw.ClearScreen(cw)
	if termWidth < minTermWidth || termHeight < minTermHeight {
		cw.WriteAt(1, 1, "Terminal too small")
		return cw.Flush()
	}

	layoutCanvas(canvas, termWidth, termHeight)
	canvas.Clear()

	switch state.Screen {
	case ScreenTitle:
		drawTitleScreen(state, cw, termWidth, termHeight)
	case ScreenPlaying:
		snap := state.Game.Snapshot()
		renderGame(state, canvas, snap)
		canvas.RenderBorder(cw)
		canvas.Render(cw)
		drawPlayingHUD(cw, canvas, snap)
		if snap.State == sim.StatePaused {
			drawPausedOverlay(cw, termWidth, termHeight)
		}
	case ScreenGameOver:
		snap := state.Game.Snapshot()
		renderGame(state, canvas, snap)
		canvas.RenderBorder(cw)
		canvas.Render(cw)
		drawGameOverScreen(state, cw, termWidth, termHeight, snap)
	}

	if state.idleWarn() {
		drawIdleWarning(state, cw, termWidth)
	}
	return cw.Flush()
}

// layoutCanvas sizes the render area to the playfield, centered in the
// terminal. Small terminals get a scaled-down board instead of clipping.
func layoutCanvas(canvas *draw.Canvas, termWidth, termHeight int) {
	cols := config.BoardWidth
	if cols > termWidth-2 {
		cols = termWidth - 2
	}
	rows := config.BoardHeight / 2
	if rows > termHeight-3 {
		rows = termHeight - 3
	}
	canvas.Resize(cols, rows)
	canvas.SetOffset((termWidth-cols)/2, (termHeight-rows)/2)
}
