package sim

// Snake is the player body: an ordered run of cells with the head first,
// a committed heading, and a one-slot buffer for the next turn.
type Snake struct {
	segments []Cell
	heading  Direction
	pending  Direction
	growth   int // Outstanding growth credits; each suppresses one tail removal
}

// NewSnake creates a snake of the given length with its head at start,
// body trailing opposite the heading.
func NewSnake(start Cell, heading Direction, length int) *Snake {
	if length < 1 {
		length = 1
	}
	back := heading.Vector()
	segments := make([]Cell, length)
	for i := range segments {
		segments[i] = Cell{X: start.X - back.X*i, Y: start.Y - back.Y*i}
	}
	return &Snake{
		segments: segments,
		heading:  heading,
		pending:  heading,
	}
}

// Turn buffers d as the heading for the next advance. A turn into the exact
// reverse of the committed heading or of the already-buffered turn is
// rejected; this is expected input during normal play, not an error.
func (s *Snake) Turn(d Direction) {
	if s.heading.Opposite(d) || s.pending.Opposite(d) {
		return
	}
	s.pending = d
}

// Advance commits the buffered heading and moves the snake one cell. The
// tail is removed unless a growth credit is outstanding, in which case one
// credit is consumed and the snake keeps the tail (net length +1).
func (s *Snake) Advance() {
	s.heading = s.pending
	v := s.heading.Vector()
	head := s.segments[0]
	newHead := Cell{X: head.X + v.X, Y: head.Y + v.Y}

	s.segments = append(s.segments, Cell{})
	copy(s.segments[1:], s.segments)
	s.segments[0] = newHead

	if s.growth > 0 {
		s.growth--
		return
	}
	s.segments = s.segments[:len(s.segments)-1]
}

// Grow adds n growth credits, each suppressing one future tail removal.
func (s *Snake) Grow(n int) {
	if n > 0 {
		s.growth += n
	}
}

// CutTail removes up to n tail segments, never shrinking below length 1.
func (s *Snake) CutTail(n int) {
	keep := len(s.segments) - n
	if keep < 1 {
		keep = 1
	}
	s.segments = s.segments[:keep]
}

// SelfIntersects reports whether the head occupies a body cell. The cell
// vacated by this tick's tail removal is already gone, so an advance into it
// correctly does not intersect.
func (s *Snake) SelfIntersects() bool {
	head := s.segments[0]
	for _, seg := range s.segments[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Head returns the current head cell.
func (s *Snake) Head() Cell {
	return s.segments[0]
}

// SetHead relocates the head cell in place (Ghost mode edge wrap).
func (s *Snake) SetHead(c Cell) {
	s.segments[0] = c
}

// Heading returns the committed heading.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Len returns the segment count.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Segments returns the body cells, head first. The slice is owned by the
// snake; callers must not retain it across ticks.
func (s *Snake) Segments() []Cell {
	return s.segments
}

// BodyContains reports whether c is occupied by a non-head segment.
func (s *Snake) BodyContains(c Cell) bool {
	for _, seg := range s.segments[1:] {
		if seg == c {
			return true
		}
	}
	return false
}

// Occupies reports whether c is occupied by any segment, head included.
func (s *Snake) Occupies(c Cell) bool {
	if s.segments[0] == c {
		return true
	}
	return s.BodyContains(c)
}
