// Package effect implements time-bounded modifiers carried by paddles.
//
// Active effects are kept as an ordered list. Each entry owns the closure
// that undoes it, so expiry is handled uniformly regardless of kind.
package effect

// Kind identifies a power-up effect.
type Kind int

const (
	SpeedBoost Kind = iota
	PaddleGrow
	PaddleShrink
	MultiBall
	Shield
	Freeze
	Laser
	Magnet
)

// Kinds lists every effect kind in declaration order.
var Kinds = []Kind{SpeedBoost, PaddleGrow, PaddleShrink, MultiBall, Shield, Freeze, Laser, Magnet}

var kindNames = [...]string{
	SpeedBoost:   "speed",
	PaddleGrow:   "grow",
	PaddleShrink: "shrink",
	MultiBall:    "multiball",
	Shield:       "shield",
	Freeze:       "freeze",
	Laser:        "laser",
	Magnet:       "magnet",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PaddleScoped reports whether the effect is tracked on a paddle's list.
// The remaining kinds act on a ball or on the whole match.
func (k Kind) PaddleScoped() bool {
	switch k {
	case PaddleGrow, PaddleShrink, Shield, Laser:
		return true
	}
	return false
}

// conflicts reports kinds that overwrite the same paddle attribute.
func conflicts(a, b Kind) bool {
	return (a == PaddleGrow && b == PaddleShrink) || (a == PaddleShrink && b == PaddleGrow)
}

// Active is one running effect.
type Active struct {
	Kind      Kind
	Remaining int // Ticks until the effect is reverted
	revert    func()
}

// List is the ordered set of effects active on one owner.
// The zero value is an empty list ready to use.
type List struct {
	active []Active
}

// Apply starts kind for duration ticks. apply runs immediately; revert runs
// once when the effect expires or is cleared.
//
// Applying a kind that is already active renews its countdown and re-runs
// apply but keeps the original revert. An active entry that conflicts with
// kind is reverted and dropped first.
func (l *List) Apply(kind Kind, duration int, apply, revert func()) {
	kept := l.active[:0]
	for _, a := range l.active {
		if conflicts(a.Kind, kind) {
			a.undo()
			continue
		}
		kept = append(kept, a)
	}
	l.active = kept

	if apply != nil {
		apply()
	}

	for i := range l.active {
		if l.active[i].Kind == kind {
			l.active[i].Remaining = duration
			return
		}
	}
	l.active = append(l.active, Active{Kind: kind, Remaining: duration, revert: revert})
}

// Tick advances every effect by one tick. Effects reaching zero are
// reverted in list order and removed after the scan.
func (l *List) Tick() {
	for i := range l.active {
		l.active[i].Remaining--
		if l.active[i].Remaining <= 0 {
			l.active[i].undo()
		}
	}

	kept := l.active[:0]
	for _, a := range l.active {
		if a.Remaining > 0 {
			kept = append(kept, a)
		}
	}
	clear(l.active[len(kept):])
	l.active = kept
}

// Clear reverts and drops every active effect.
func (l *List) Clear() {
	for i := range l.active {
		l.active[i].undo()
	}
	clear(l.active)
	l.active = l.active[:0]
}

// Has reports whether kind is active.
func (l *List) Has(kind Kind) bool {
	return l.Remaining(kind) > 0
}

// Remaining returns the ticks left for kind, or 0 if it is not active.
func (l *List) Remaining(kind Kind) int {
	for _, a := range l.active {
		if a.Kind == kind {
			return a.Remaining
		}
	}
	return 0
}

// Len returns the number of active effects.
func (l *List) Len() int {
	return len(l.active)
}

// Snapshot returns a copy of the active entries without their revert hooks.
func (l *List) Snapshot() []Active {
	out := make([]Active, len(l.active))
	for i, a := range l.active {
		out[i] = Active{Kind: a.Kind, Remaining: a.Remaining}
	}
	return out
}

// undo runs the revert hook at most once.
func (a *Active) undo() {
	if a.revert != nil {
		a.revert()
		a.revert = nil
	}
}
