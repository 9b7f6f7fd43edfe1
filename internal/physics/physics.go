// Package physics provides distance and pursuit-vector utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// UnitToward returns the unit vector pointing from (fromX, fromY) toward
// (toX, toY). Returns (0, 0) when the points coincide, so a pursuer sitting
// exactly on its target holds position instead of jittering.
func UnitToward(fromX, fromY, toX, toY float64) (ux, uy float64) {
	dx := toX - fromX
	dy := toY - fromY
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return 0, 0
	}
	return dx / dist, dy / dist
}
