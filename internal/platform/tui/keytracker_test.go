package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

var base = time.Unix(1_700_000_000, 0)

func ms(n int) time.Time { return base.Add(time.Duration(n) * time.Millisecond) }

func heldAt(tr *KeyTracker, now time.Time) core.InputFrame {
	f := core.NewInputFrame(now)
	tr.Apply(now, &f)
	return f
}

func TestKeyTrackerSingleTapIsNotHeld(t *testing.T) {
	tr := NewKeyTracker(550*time.Millisecond, 120*time.Millisecond)

	if !tr.Press(core.DirRight, ms(0)) {
		t.Fatal("first event should be a fresh press")
	}
	if f := heldAt(tr, ms(200)); f.IsHeld(core.DirRight) {
		t.Error("a single tap must not count as held")
	}
	// Still inside the initial window: a second event is an auto-repeat.
	if tr.Press(core.DirRight, ms(500)) {
		t.Error("event inside the initial window should be a repeat")
	}
	if f := heldAt(tr, ms(510)); !f.IsHeld(core.DirRight) {
		t.Error("repeating key should be held")
	}
}

func TestKeyTrackerReleaseAfterRepeatsStop(t *testing.T) {
	tr := NewKeyTracker(550*time.Millisecond, 120*time.Millisecond)

	tr.Press(core.DirUp, ms(0))
	for n := 500; n <= 800; n += 33 {
		tr.Press(core.DirUp, ms(n))
	}
	last := 500 + 33*9 // 797

	if !tr.Held(core.DirUp, ms(last+120)) {
		t.Error("key should be held up to the repeat window")
	}
	if f := heldAt(tr, ms(last+121)); f.IsHeld(core.DirUp) {
		t.Error("key should be released once repeats stop")
	}
	if !tr.Press(core.DirUp, ms(last+200)) {
		t.Error("event after release should be a fresh press")
	}
}

func TestKeyTrackerTapExpiresAfterInitialWindow(t *testing.T) {
	tr := NewKeyTracker(550*time.Millisecond, 120*time.Millisecond)

	tr.Press(core.DirLeft, ms(0))
	heldAt(tr, ms(551))
	if !tr.Press(core.DirLeft, ms(600)) {
		t.Error("tap after the initial window should be fresh")
	}
}

func TestKeyTrackerIndependentKeysAndReset(t *testing.T) {
	tr := NewKeyTracker(550*time.Millisecond, 120*time.Millisecond)

	tr.Press(core.DirDown, ms(0))
	tr.Press(core.DirDown, ms(40))
	if !tr.Press(core.DirLeft, ms(50)) {
		t.Error("a different direction is always fresh")
	}
	f := heldAt(tr, ms(60))
	if !f.IsHeld(core.DirDown) || f.IsHeld(core.DirLeft) {
		t.Errorf("held = %v", f.Held)
	}

	tr.Reset()
	if tr.Held(core.DirDown, ms(61)) {
		t.Error("Reset should forget held keys")
	}
}
