package sim

// Cell is a grid coordinate on the board.
type Cell struct {
	X, Y int
}

// Direction is one of the four cardinal headings.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Vector returns the per-cell advance for the direction.
func (d Direction) Vector() Cell {
	switch d {
	case DirUp:
		return Cell{X: 0, Y: -1}
	case DirDown:
		return Cell{X: 0, Y: 1}
	case DirLeft:
		return Cell{X: -1, Y: 0}
	default:
		return Cell{X: 1, Y: 0}
	}
}

// Opposite reports whether o is the exact reverse of d.
func (d Direction) Opposite(o Direction) bool {
	return (d == DirUp && o == DirDown) ||
		(d == DirDown && o == DirUp) ||
		(d == DirLeft && o == DirRight) ||
		(d == DirRight && o == DirLeft)
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "right"
	}
}

// Board is the playfield in cells. The snake moves on the grid; apples use
// continuous coordinates over the same space.
type Board struct {
	Width  int
	Height int
}

// Contains reports whether c lies inside the board bounds.
func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

// Wrap maps c onto the board by wrapping around the opposite edge
// (Ghost mode wall behavior).
func (b Board) Wrap(c Cell) Cell {
	c.X = ((c.X % b.Width) + b.Width) % b.Width
	c.Y = ((c.Y % b.Height) + b.Height) % b.Height
	return c
}

// Center returns the board's central cell.
func (b Board) Center() Cell {
	return Cell{X: b.Width / 2, Y: b.Height / 2}
}
