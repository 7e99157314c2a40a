package tui

import (
	"time"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// KeyTracker synthesizes held-key state from terminal key events.
//
// Terminals report a key once when it goes down and then, after the
// keyboard's auto-repeat delay, again at the repeat rate. They never report
// releases. A direction seen once counts as a fresh press only; a second
// event within the initial window marks it as held, and it stays held while
// repeats keep arriving within the repeat window.
type KeyTracker struct {
	initial time.Duration
	repeat  time.Duration
	keys    map[core.Direction]*trackedKey
}

type trackedKey struct {
	last    time.Time
	repeats int
}

// NewKeyTracker creates a tracker with the given release windows.
func NewKeyTracker(initial, repeat time.Duration) *KeyTracker {
	return &KeyTracker{
		initial: initial,
		repeat:  repeat,
		keys:    make(map[core.Direction]*trackedKey),
	}
}

// Press records a key event for d at now and reports whether it is a fresh
// press rather than an auto-repeat.
func (t *KeyTracker) Press(d core.Direction, now time.Time) bool {
	k, ok := t.keys[d]
	if ok && t.alive(k, now) {
		k.last = now
		k.repeats++
		return false
	}
	t.keys[d] = &trackedKey{last: now}
	return true
}

// Apply expires released keys and marks the still-repeating ones as held
// in f.
func (t *KeyTracker) Apply(now time.Time, f *core.InputFrame) {
	for d, k := range t.keys {
		if !t.alive(k, now) {
			delete(t.keys, d)
			continue
		}
		if k.repeats > 0 {
			f.Hold(d)
		}
	}
}

// Held reports whether d is currently considered held.
func (t *KeyTracker) Held(d core.Direction, now time.Time) bool {
	k, ok := t.keys[d]
	return ok && k.repeats > 0 && t.alive(k, now)
}

// Reset forgets all keys, e.g. when the session restarts.
func (t *KeyTracker) Reset() {
	clear(t.keys)
}

func (t *KeyTracker) alive(k *trackedKey, now time.Time) bool {
	window := t.repeat
	if k.repeats == 0 {
		window = t.initial
	}
	return now.Sub(k.last) <= window
}
