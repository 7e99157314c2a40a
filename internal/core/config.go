package core

import "time"

// RuntimeConfig contains configuration passed to a session at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // Seed for terrain shading
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Distinct tiles explored
	Steps    int  // Accepted steps
	Bumps    int  // Rejected steps
	GameOver bool // Goal tile reached
	Paused   bool
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	Moved bool // A step completed this frame
}

// RunSummary describes a finished or abandoned run for storage.
type RunSummary struct {
	Steps     int
	Bumps     int
	Explored  int
	Duration  time.Duration
	Completed bool
}
