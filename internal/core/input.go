package core

import "time"

// Action represents a semantic client action, abstracted from physical key presses.
// Directional movement is carried separately as Direction so that press and
// hold can be tracked per direction.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - respawn and clear the run
	ActionQuit           // Q, Ctrl+C - exit session
	ActionPause          // P - pause/unpause
	ActionOverlay        // M - toggle the collision mask overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionOverlay:
		return "Overlay"
	default:
		return "Unknown"
	}
}

// Direction is one of the four logical movement directions.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Directions lists the four directions in fixed precedence order.
// Used to break ties when no press-order information is available.
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// Delta returns the unit grid offset for the direction. DirNone is (0, 0).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "None"
	}
}

// InputFrame is the input state sampled for one frame.
//
// Pressed holds directions that went down during this frame; Held holds
// every direction currently down (a pressed direction is also held).
// A direction absent from Held is released.
type InputFrame struct {
	At      time.Time // Wall-clock time the frame was sampled
	Pressed map[Direction]bool
	Held    map[Direction]bool
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame stamped with at.
func NewInputFrame(at time.Time) InputFrame {
	return InputFrame{
		At:      at,
		Pressed: make(map[Direction]bool),
		Held:    make(map[Direction]bool),
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press records a fresh press of d. The direction is also held.
func (f *InputFrame) Press(d Direction) {
	if f.Pressed == nil {
		f.Pressed = make(map[Direction]bool)
	}
	f.Pressed[d] = true
	f.Hold(d)
}

// Hold records d as currently down without a fresh press.
func (f *InputFrame) Hold(d Direction) {
	if f.Held == nil {
		f.Held = make(map[Direction]bool)
	}
	f.Held[d] = true
}

// IsPressed reports whether d went down this frame.
func (f InputFrame) IsPressed(d Direction) bool {
	return f.Pressed[d]
}

// IsHeld reports whether d is down this frame.
func (f InputFrame) IsHeld(d Direction) bool {
	return f.Held[d]
}

// AnyHeld reports whether any direction is down.
func (f InputFrame) AnyHeld() bool {
	for _, d := range Directions {
		if f.Held[d] {
			return true
		}
	}
	return false
}

// Clear resets presses, holds and actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame(f.At)
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
