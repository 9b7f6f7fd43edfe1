package input

import (
	"bufio"
)

// EventKind identifies a discrete input event. Unlike held-key schemes,
// every keypress produces exactly one event, so a quick double-tap queues
// two turns.
type EventKind int

const (
	Up EventKind = iota
	Down
	Left
	Right
	Pause
	Enter
	Escape
	Quit
	ModeToggle
	Number
)

// Event is one decoded keypress.
type Event struct {
	Kind EventKind
	// Number value for Kind == Number, otherwise unused.
	Value int
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch chan byte
	// Trailing bytes of an escape sequence torn across reads, completed on
	// the next ReadEvents call.
	carry []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// decodes them into events. Handles CSI escape sequences for arrow keys. An
// arrow sequence torn across reads is held back and completed on the next
// call; a held lone ESC is flushed as Escape once no continuation arrives.
func ReadEvents(s *Stream) []Event {
	buf := s.carry
	s.carry = nil
	fresh := false
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return parseEvents(buf)
			}
			buf = append(buf, b)
			fresh = true
		default:
			if fresh {
				if tail := partialCSI(buf); tail > 0 {
					s.carry = append(s.carry, buf[len(buf)-tail:]...)
					buf = buf[:len(buf)-tail]
				}
			}
			return parseEvents(buf)
		}
	}
}

// partialCSI reports how many trailing bytes form an incomplete ESC [ arrow
// prefix.
func partialCSI(buf []byte) int {
	n := len(buf)
	if n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[' {
		return 2
	}
	if n >= 1 && buf[n-1] == '\x1b' {
		return 1
	}
	return 0
}

func parseEvents(buf []byte) []Event {
	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				events = append(events, Event{Kind: Up})
				i += 2
				continue
			case 'B':
				events = append(events, Event{Kind: Down})
				i += 2
				continue
			case 'C':
				events = append(events, Event{Kind: Right})
				i += 2
				continue
			case 'D':
				events = append(events, Event{Kind: Left})
				i += 2
				continue
			}
		}

		if e, ok := decodeByte(b); ok {
			events = append(events, e)
		}
	}
	return events
}

// decodeByte maps a single byte to an event.
func decodeByte(b byte) (Event, bool) {
	switch b {
	case 'w', 'W', 'k', 'K':
		return Event{Kind: Up}, true
	case 's', 'S', 'j', 'J':
		return Event{Kind: Down}, true
	case 'a', 'A', 'h', 'H':
		return Event{Kind: Left}, true
	case 'd', 'D', 'l', 'L':
		return Event{Kind: Right}, true
	case ' ', 'p', 'P':
		return Event{Kind: Pause}, true
	case '\n', '\r':
		return Event{Kind: Enter}, true
	case '\x1b':
		return Event{Kind: Escape}, true
	case 'q', 'Q':
		return Event{Kind: Quit}, true
	case 'g', 'G', 'm', 'M':
		return Event{Kind: ModeToggle}, true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return Event{Kind: Number, Value: int(b - '0')}, true
	}
	return Event{}, false
}
