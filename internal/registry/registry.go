// Package registry provides a global registry for session factories.
// Each playable map registers a factory, allowing the platform to discover
// and instantiate sessions without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// Game is the interface every playable session implements.
// Sessions contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (the map ID). Used for CLI commands
	// and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the session.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation to in.At.
	// Frames carry wall-clock time, so the frame rate never changes
	// how far the actor travels.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current session state.
	State() core.GameState
}

// Resizer is implemented by sessions that can adapt to a new screen size
// without restarting.
type Resizer interface {
	Resize(screenW, screenH int)
}

// Summarizer is implemented by sessions that can report a run for storage.
type Summarizer interface {
	Summary() core.RunSummary
}

// GameInfo contains metadata about a registered session.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new session instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Panics if the ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// Unregister removes a factory. Unknown IDs are ignored.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(factories, id)
	delete(titles, id)
}

// List returns information about all registered sessions, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new session by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a session with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
