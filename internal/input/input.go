// Package input turns raw key events into per-tick input frames.
package input

import "time"

// DefaultHoldDuration is how long a key is considered "held" after its last
// press on terminals that never report key releases.
const DefaultHoldDuration = 60 * time.Millisecond

// Key is a logical key the game reacts to.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyW
	KeyS
	KeySpace
	KeyEscape
	Key1
	Key2
	Key3
	KeyE
	KeyM
	KeyH
	KeyQuit // Window close, q or Ctrl-C
	keyCount
)

var keyNames = [...]string{
	KeyNone:   "none",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyW:      "w",
	KeyS:      "s",
	KeySpace:  "space",
	KeyEscape: "esc",
	Key1:      "1",
	Key2:      "2",
	Key3:      "3",
	KeyE:      "e",
	KeyM:      "m",
	KeyH:      "h",
	KeyQuit:   "quit",
}

func (k Key) String() string {
	if int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// KeySet is a set of keys.
type KeySet uint32

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// Add puts k in the set.
func (s *KeySet) Add(k Key) {
	*s |= 1 << k
}

// Frame is the input for one tick.
type Frame struct {
	Pressed []Key  // Key-down events since the previous tick, in order
	Held    KeySet // Keys currently held
}

// Holding reports whether k is held this tick.
func (f Frame) Holding(k Key) bool {
	return f.Held.Has(k)
}

// Quit reports whether a quit key was pressed this tick.
func (f Frame) Quit() bool {
	for _, k := range f.Pressed {
		if k == KeyQuit {
			return true
		}
	}
	return false
}

// Tracker derives held keys and key-down edges from repeated key events.
// A key is held while it was seen within the hold window; it produces a
// key-down event only when it was not already held.
type Tracker struct {
	hold     time.Duration
	lastSeen [keyCount]time.Time
	held     KeySet
	pending  []Key
}

// NewTracker creates a tracker with the given hold window.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Tracker{hold: hold}
}

// Observe records that k was reported at now.
func (t *Tracker) Observe(k Key, now time.Time) {
	if k == KeyNone || k >= keyCount {
		return
	}
	t.lastSeen[k] = now
	t.pending = append(t.pending, k)
}

// Frame builds the input frame for the tick starting at now.
func (t *Tracker) Frame(now time.Time) Frame {
	var f Frame
	for _, k := range t.pending {
		if t.held.Has(k) || f.Held.Has(k) {
			continue
		}
		f.Pressed = append(f.Pressed, k)
		f.Held.Add(k)
	}
	t.pending = t.pending[:0]

	for k := KeyNone + 1; k < keyCount; k++ {
		if !t.lastSeen[k].IsZero() && now.Sub(t.lastSeen[k]) < t.hold {
			f.Held.Add(k)
		}
	}
	t.held = f.Held
	return f
}
