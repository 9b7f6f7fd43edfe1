package loop

import (
	"snake-survival/internal/draw"
	"snake-survival/internal/sim"
)

// rainbowStride slows the rainbow cycle to roughly 20 color steps per second.
const rainbowStride = 3

// renderGame draws the snapshot's entities onto the canvas.
func renderGame(state *State, canvas *draw.Canvas, snap sim.Snapshot) {
	rainbow := false
	for _, e := range snap.Effects {
		if e.Kind == sim.PowerupRainbow {
			rainbow = true
			break
		}
	}

	bodyColor := draw.ColorSnakeBody
	if snap.Mode == sim.ModeGhost {
		bodyColor = draw.ColorGhostBody
	}

	// Tail to head, so the head wins overlaps after a Ghost wrap.
	for i := len(snap.Segments) - 1; i >= 0; i-- {
		c := snap.Segments[i]
		color := bodyColor
		if rainbow {
			phase := int(state.frameCount)/rainbowStride + i
			color = draw.RainbowColors[phase%len(draw.RainbowColors)]
		}
		if i == 0 {
			color = draw.ColorSnakeHead
		}
		canvas.FillCell(c.X, c.Y, color)
	}

	for _, p := range snap.Pickups {
		color := draw.ColorPickup
		if p.Kind == sim.PowerupNuke || p.Kind == sim.PowerupShield {
			color = draw.ColorPickupRare
		}
		canvas.FillCell(p.Cell.X, p.Cell.Y, color)
	}

	for _, a := range snap.Apples {
		color := draw.ColorApple
		if a.Frozen {
			color = draw.ColorFrozenApple
		}
		canvas.FillCell(a.Cell.X, a.Cell.Y, color)
	}

	// Flash the upcoming spawn point during the last second before it fires.
	if snap.NextSpawn != nil && snap.NextSpawn.In < 1.0 {
		if int(state.frameCount/6)%2 == 0 {
			canvas.SetFloat(snap.NextSpawn.X, snap.NextSpawn.Y, draw.ColorSpawnMark)
		}
	}
}
