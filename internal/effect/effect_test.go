package effect

import "testing"

type fakePaddle struct {
	base, height int
	shield       bool
}

func (p *fakePaddle) grow(l *List, d int) {
	l.Apply(PaddleGrow, d, func() { p.height = min(p.base*3/2, 150) }, func() { p.height = p.base })
}

func (p *fakePaddle) shrink(l *List, d int) {
	l.Apply(PaddleShrink, d, func() { p.height = max(p.base/2, 50) }, func() { p.height = p.base })
}

func TestApplyThenExpire(t *testing.T) {
	p := &fakePaddle{base: 100, height: 100}
	var l List
	p.grow(&l, 300)

	if p.height != 150 {
		t.Fatalf("height after grow = %d, want 150", p.height)
	}
	for i := 0; i < 299; i++ {
		l.Tick()
	}
	if p.height != 150 || !l.Has(PaddleGrow) {
		t.Fatalf("effect expired early: height=%d remaining=%d", p.height, l.Remaining(PaddleGrow))
	}
	l.Tick()
	if p.height != 100 {
		t.Errorf("height after expiry = %d, want 100", p.height)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestApplyRenews(t *testing.T) {
	p := &fakePaddle{base: 100, height: 100}
	var l List
	p.grow(&l, 10)
	for i := 0; i < 5; i++ {
		l.Tick()
	}
	p.grow(&l, 10)

	if l.Len() != 1 {
		t.Fatalf("renewal duplicated entry: Len() = %d", l.Len())
	}
	if got := l.Remaining(PaddleGrow); got != 10 {
		t.Errorf("Remaining() = %d, want 10", got)
	}
}

func TestConflictingKindsReplaceEachOther(t *testing.T) {
	p := &fakePaddle{base: 100, height: 100}
	var l List
	p.grow(&l, 300)
	p.shrink(&l, 20)

	if l.Has(PaddleGrow) {
		t.Error("grow still active after shrink")
	}
	if p.height != 50 {
		t.Fatalf("height = %d, want 50", p.height)
	}
	for i := 0; i < 20; i++ {
		l.Tick()
	}
	if p.height != 100 {
		t.Errorf("height after shrink expiry = %d, want 100", p.height)
	}
}

func TestIndependentKindsCoexist(t *testing.T) {
	p := &fakePaddle{base: 100, height: 100}
	var l List
	p.grow(&l, 3)
	l.Apply(Shield, 5, func() { p.shield = true }, func() { p.shield = false })

	for i := 0; i < 3; i++ {
		l.Tick()
	}
	if p.height != 100 || !p.shield {
		t.Fatalf("after 3 ticks: height=%d shield=%v", p.height, p.shield)
	}
	for i := 0; i < 2; i++ {
		l.Tick()
	}
	if p.shield {
		t.Error("shield still active after its duration")
	}
}

func TestClearRevertsOnce(t *testing.T) {
	reverts := 0
	var l List
	l.Apply(Laser, 5, nil, func() { reverts++ })
	l.Clear()
	l.Clear()
	l.Tick()

	if reverts != 1 {
		t.Errorf("revert ran %d times, want 1", reverts)
	}
	if l.Has(Laser) {
		t.Error("laser active after Clear")
	}
}

func TestSnapshotDetached(t *testing.T) {
	var l List
	l.Apply(Shield, 4, nil, nil)
	snap := l.Snapshot()
	l.Tick()

	if snap[0].Remaining != 4 {
		t.Errorf("snapshot changed with list: %d", snap[0].Remaining)
	}
}

func TestKindString(t *testing.T) {
	for _, k := range Kinds {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(42).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}

func TestPaddleScoped(t *testing.T) {
	scoped := map[Kind]bool{PaddleGrow: true, PaddleShrink: true, Shield: true, Laser: true}
	for _, k := range Kinds {
		if k.PaddleScoped() != scoped[k] {
			t.Errorf("%v.PaddleScoped() = %v", k, k.PaddleScoped())
		}
	}
}
