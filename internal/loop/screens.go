package loop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"snake-survival/internal/config"
	"snake-survival/internal/draw"
	"snake-survival/internal/physics"
	"snake-survival/internal/sim"
)

// proximityWarnDistance is the head-to-apple distance in cells under which
// the HUD shows the danger marker.
const proximityWarnDistance = 6.0

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dangerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	effectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ghostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// writeCentered writes s horizontally centered on the given terminal row.
// The lipgloss width accounts for styling escape codes.
func writeCentered(cw *draw.ChunkWriter, termWidth, row int, s string) {
	col := (termWidth - lipgloss.Width(s)) / 2
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, s)
}

// drawTitleScreen draws the tier and mode selection menu.
func drawTitleScreen(state *State, cw *draw.ChunkWriter, termWidth, termHeight int) {
	top := termHeight/2 - 8
	if top < 1 {
		top = 1
	}

	writeCentered(cw, termWidth, top, titleStyle.Render("S N A K E   S U R V I V A L"))
	writeCentered(cw, termWidth, top+1, dimStyle.Render("the apples hunt you"))

	row := top + 3
	for i, tier := range sim.Tiers() {
		line := fmt.Sprintf("  %d. %s", i+1, tier)
		if i == state.TierIndex {
			line = selectedStyle.Render(fmt.Sprintf("> %d. %s", i+1, tier))
		}
		writeCentered(cw, termWidth, row, line)
		row++
	}

	row++
	mode := fmt.Sprintf("mode: %s", state.Mode)
	if state.Mode == sim.ModeGhost {
		mode = ghostStyle.Render(mode + "  (walls wrap, no self-collision)")
	}
	writeCentered(cw, termWidth, row, mode)

	writeCentered(cw, termWidth, row+2, "ENTER to start")
	writeCentered(cw, termWidth, row+3,
		dimStyle.Render("arrows/wasd steer · space pauses · m toggles mode · q quits"))
}

// drawPlayingHUD draws score, length, time, and active effects above the
// playfield.
func drawPlayingHUD(cw *draw.ChunkWriter, canvas *draw.Canvas, snap sim.Snapshot) {
	row := canvas.OffsetRow()
	if row < 1 {
		row = 1
	}
	left := canvas.OffsetCol() + 1

	hud := fmt.Sprintf("%s  len %d/%d  %s",
		scoreStyle.Render(fmt.Sprintf("score %d", snap.Score)),
		len(snap.Segments), config.MaxLength,
		formatClock(snap.Elapsed))
	if d := nearestAppleDistance(snap); d >= 0 && d < proximityWarnDistance {
		hud += "  " + dangerStyle.Render("!!")
	}
	cw.WriteAt(left, row-1, hud)

	if len(snap.Effects) > 0 || snap.ShieldCharges > 0 {
		var parts []string
		for _, e := range snap.Effects {
			parts = append(parts, fmt.Sprintf("%s %.0fs", e.Kind, e.Remaining))
		}
		if snap.ShieldCharges > 0 {
			parts = append(parts, fmt.Sprintf("shield x%d", snap.ShieldCharges))
		}
		line := effectStyle.Render(strings.Join(parts, " · "))
		bottom := canvas.OffsetRow() + canvas.TerminalHeight() + 2
		cw.WriteAt(left, bottom, line)
	}
}

// nearestAppleDistance returns the distance in cells from the head to the
// closest apple in flight, or -1 when there is none.
func nearestAppleDistance(snap sim.Snapshot) float64 {
	if len(snap.Segments) == 0 {
		return -1
	}
	hx := float64(snap.Segments[0].X) + 0.5
	hy := float64(snap.Segments[0].Y) + 0.5
	nearest := -1.0
	for _, a := range snap.Apples {
		d := physics.Distance(hx, hy, a.X, a.Y)
		if nearest < 0 || d < nearest {
			nearest = d
		}
	}
	return nearest
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// drawPausedOverlay draws the pause banner over the frozen playfield.
func drawPausedOverlay(cw *draw.ChunkWriter, termWidth, termHeight int) {
	writeCentered(cw, termWidth, termHeight/2, selectedStyle.Render("· P A U S E D ·"))
	writeCentered(cw, termWidth, termHeight/2+1, dimStyle.Render("space to resume"))
}

// deathTitles maps each terminal condition to its banner.
var deathTitles = map[sim.DeathCause]string{
	sim.DeathWallCollision:    "SPLAT — you hit the wall",
	sim.DeathSelfCollision:    "TANGLED — you bit yourself",
	sim.DeathAppleHit:         "EATEN — an apple got you",
	sim.DeathMaxLengthReached: "OVERGROWN — fifty segments is too many",
}

// drawGameOverScreen draws the run summary and the local top scores.
func drawGameOverScreen(state *State, cw *draw.ChunkWriter, termWidth, termHeight int, snap sim.Snapshot) {
	rec := snap.Over
	if rec == nil {
		return
	}
	center := termHeight / 2

	writeCentered(cw, termWidth, center-4, dangerStyle.Render(deathTitles[rec.Cause]))
	writeCentered(cw, termWidth, center-2, scoreStyle.Render(fmt.Sprintf("score %d", rec.Score)))
	writeCentered(cw, termWidth, center-1,
		fmt.Sprintf("survived %s · length %d · %s %s", formatClock(rec.SurvivalTime), rec.Length, rec.Tier, rec.Mode))

	if state.opts.TopScores != nil {
		top := state.opts.TopScores(string(rec.Mode), string(rec.Tier), 5)
		if len(top) > 0 {
			writeCentered(cw, termWidth, center+1, dimStyle.Render("─ top scores ─"))
			for i, e := range top {
				line := fmt.Sprintf("%d. %5d  len %2d", i+1, e.Score, e.Length)
				if e.Score == rec.Score && e.Length == rec.Length {
					line = selectedStyle.Render(line)
				}
				writeCentered(cw, termWidth, center+2+i, line)
			}
		}
	}

	writeCentered(cw, termWidth, termHeight-2, "ENTER to play again · ESC for menu · q to quit")
}

// drawIdleWarning draws the inactivity countdown.
func drawIdleWarning(state *State, cw *draw.ChunkWriter, termWidth int) {
	left := config.InactivityDisconnectUser - int(state.idleFor().Seconds())
	if left < 0 {
		left = 0
	}
	writeCentered(cw, termWidth, 1,
		dangerStyle.Render(fmt.Sprintf("idle — disconnecting in %ds", left)))
}
