package input

import (
	"io"
	"time"
)

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	tracker *Tracker
	carry   []byte // Unfinished escape sequence from the previous poll
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader, hold time.Duration) *Stream {
	s := &Stream{
		ch:      make(chan byte, 128),
		tracker: NewTracker(hold),
	}
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

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the frame for the current tick. A closed reader reports KeyQuit.
func ReadInput(s *Stream) Frame {
	return s.poll(time.Now())
}

func (s *Stream) poll(now time.Time) Frame {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	fresh := len(buf) > 0
	buf = append(s.carry, buf...)
	s.carry = nil
	if n := incompleteEscape(buf); n > 0 && fresh && !s.closed {
		s.carry = append(s.carry, buf[len(buf)-n:]...)
		buf = buf[:len(buf)-n]
	}

	for _, k := range parseKeys(buf) {
		s.tracker.Observe(k, now)
	}
	if s.closed {
		s.tracker.Observe(KeyQuit, now)
	}
	return s.tracker.Frame(now)
}

// parseKeys maps raw terminal bytes to keys. Arrow keys arrive as the CSI
// sequences ESC [ A and ESC [ B; a lone ESC is the escape key.
func parseKeys(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				keys = append(keys, KeyUp)
			case 'B': // Down arrow
				keys = append(keys, KeyDown)
			}
			// Other CSI sequences (left/right arrows, function keys) are ignored.
			i += 2
			continue
		}

		if k := KeyForByte(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

// incompleteEscape returns the length of a trailing escape sequence that may
// still be arriving.
func incompleteEscape(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	}
	return 0
}

// KeyForByte maps a single typed character to a key. Characters the game
// does not use map to KeyNone.
func KeyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit
	case 'w', 'W':
		return KeyW
	case 's', 'S':
		return KeyS
	case 'i', 'I':
		return KeyUp
	case 'k', 'K':
		return KeyDown
	case ' ':
		return KeySpace
	case '\x1b':
		return KeyEscape
	case '1':
		return Key1
	case '2':
		return Key2
	case '3':
		return Key3
	case 'e', 'E':
		return KeyE
	case 'm', 'M':
		return KeyM
	case 'h', 'H':
		return KeyH
	}
	return KeyNone
}
