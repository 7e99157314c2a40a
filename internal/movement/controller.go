// Package movement drives an actor one grid cell at a time with eased
// interpolation between cell centers.
//
// The controller is a two-state machine. Idle actors start a step on a fresh
// directional press or, once the cooldown has passed, on a held direction.
// A step in flight always completes and snaps exactly to the target tile
// center, so an actor at rest is always tile-aligned.
//
// Held repeats run on a wall-clock grid: a repeat starts at the instant its
// cooldown expired, not at the frame that noticed it, so the distance
// covered while a key is held does not depend on the frame rate.
package movement

import (
	"fmt"
	"time"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// State is the movement state.
type State int

const (
	Idle State = iota
	Stepping
)

func (s State) String() string {
	if s == Stepping {
		return "Stepping"
	}
	return "Idle"
}

// Config tunes the controller.
type Config struct {
	CellSize     float64       // World pixels per tile
	Cols, Rows   int           // World size in tiles
	StepDuration time.Duration // Time to glide one tile
	Cooldown     time.Duration // Minimum time between held-repeat steps, measured from step start
	WallPenalty  bool          // Delay the next attempt by Cooldown/2 after a rejected step; without it a held wall bump counts once
	ActorSize    float64       // Actor sprite size in world pixels
}

// DefaultConfig returns the standard cadence for a 40x30 world of 32px tiles.
func DefaultConfig() Config {
	return Config{
		CellSize:     32,
		Cols:         40,
		Rows:         30,
		StepDuration: 140 * time.Millisecond,
		Cooldown:     160 * time.Millisecond,
		WallPenalty:  true,
		ActorSize:    24,
	}
}

// WorldSize returns the world extent in pixels.
func (c Config) WorldSize() (float64, float64) {
	return float64(c.Cols) * c.CellSize, float64(c.Rows) * c.CellSize
}

// maxCatchUp bounds how many repeats one Update may replay after a long frame.
const maxCatchUp = 64

// Event reports what happened during one Update. A long frame may replay
// several held repeats; the flags then describe the last attempt.
type Event struct {
	Dir      core.Direction // Direction of the last attempt, if any
	Started  bool           // A step was accepted
	Rejected bool           // A step was denied by bounds or collider
	Arrived  bool           // A step in flight completed
	Steps    int            // Steps accepted during this update
	Bumps    int            // Rejections counted in Stats during this update
	Reached  []core.Coord   // Tiles arrived at during this update, in order
}

// Stats counts step outcomes since construction or the last Teleport.
type Stats struct {
	Accepted int
	Rejected int
}

// Controller is the per-actor stepping state machine.
type Controller struct {
	cfg      Config
	collider Collider

	state     State
	tile      core.Coord // resting tile, or destination while stepping
	pos       core.Vec
	start     core.Vec
	target    core.Vec
	startTime time.Time

	nextAttempt time.Time
	lastUpdate  time.Time
	lastPressed core.Direction
	bumped      core.Direction // Held direction already counted against a wall
	stats       Stats
}

// New creates an idle controller resting on spawn. A nil collider only
// enforces world bounds.
func New(cfg Config, collider Collider, spawn core.Coord) *Controller {
	c := &Controller{cfg: cfg, collider: collider}
	c.Teleport(spawn)
	return c
}

// Config returns the controller configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current movement state.
func (c *Controller) State() State { return c.state }

// IsMoving reports whether a step is in flight.
func (c *Controller) IsMoving() bool { return c.state == Stepping }

// Position returns the continuous world-pixel position.
func (c *Controller) Position() core.Vec { return c.pos }

// Tile returns the tile the actor rests on, or is stepping into.
func (c *Controller) Tile() core.Coord { return c.tile }

// Stats returns step counters.
func (c *Controller) Stats() Stats { return c.stats }

// Teleport places the actor at rest on tile, discarding any step in flight.
func (c *Controller) Teleport(tile core.Coord) {
	c.tile = tile
	c.pos = c.clamp(tile.PixelCenter(c.cfg.CellSize))
	c.start, c.target = c.pos, c.pos
	c.state = Idle
	c.nextAttempt = time.Time{}
	c.lastUpdate = time.Time{}
	c.lastPressed = core.DirNone
	c.bumped = core.DirNone
	c.stats = Stats{}
}

// clamp keeps p inside the world inset by half the actor size.
func (c *Controller) clamp(p core.Vec) core.Vec {
	half := c.cfg.ActorSize / 2
	w, h := c.cfg.WorldSize()
	return core.Vec{
		X: core.ClampF(p.X, half, max(half, w-half)),
		Y: core.ClampF(p.Y, half, max(half, h-half)),
	}
}

// Update advances the controller to now.
//
// A step in flight is interpolated and completed first. If the actor is
// then Idle, a fresh press starts a step immediately; otherwise a held
// direction repeats once the cooldown has passed. Fresh presses win over
// held directions. Among candidates, the most recently pressed direction
// wins while it is still held; otherwise Up, Right, Down, Left.
//
// A held repeat is backdated to the moment it became due, but never before
// the previous Update, since the key is only known to be held since then.
func (c *Controller) Update(now time.Time, in core.InputFrame) Event {
	var ev Event
	defer func() { c.lastUpdate = now }()

	if d := precedence(in.Pressed); d != core.DirNone {
		c.lastPressed = d
	}
	if !in.IsHeld(c.bumped) && !in.IsPressed(c.bumped) {
		c.bumped = core.DirNone
	}

	if c.state == Stepping {
		if !c.advance(now) {
			return ev
		}
		ev.Arrived = true
		ev.Reached = append(ev.Reached, c.tile)
	}

	pressed := in.Pressed
	for range maxCatchUp {
		dir, fresh := c.choose(pressed, in.Held)
		pressed = nil
		if dir == core.DirNone {
			return ev
		}

		at := now
		if !fresh {
			if now.Before(c.nextAttempt) {
				return ev
			}
			at = c.repeatTime(now)
		}

		ev.Dir = dir
		rejected := c.stats.Rejected
		if !c.try(at, dir, fresh) {
			ev.Started = false
			ev.Rejected = true
			ev.Bumps += c.stats.Rejected - rejected
			if !c.cfg.WallPenalty {
				return ev
			}
			continue
		}

		ev.Started = true
		ev.Rejected = false
		ev.Steps++
		if !c.advance(now) {
			return ev
		}
		ev.Arrived = true
		ev.Reached = append(ev.Reached, c.tile)
	}
	return ev
}

// repeatTime is when a held repeat that is due at now actually started.
func (c *Controller) repeatTime(now time.Time) time.Time {
	at := c.nextAttempt
	if c.state == Idle && !c.startTime.IsZero() {
		if arrival := c.startTime.Add(c.cfg.StepDuration); arrival.After(at) {
			at = arrival
		}
	}
	if c.lastUpdate.After(at) {
		at = c.lastUpdate
	}
	if at.IsZero() || at.After(now) {
		return now
	}
	return at
}

// advance interpolates the step in flight and reports whether it completed.
func (c *Controller) advance(now time.Time) bool {
	elapsed := now.Sub(c.startTime)
	if elapsed >= c.cfg.StepDuration {
		c.pos = c.target
		c.state = Idle
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	f := float64(elapsed) / float64(c.cfg.StepDuration)
	c.pos = c.start.Lerp(c.target, core.EaseOutCubic(f))
	return false
}

func (c *Controller) choose(pressed, held map[core.Direction]bool) (core.Direction, bool) {
	if d := c.pick(pressed); d != core.DirNone {
		return d, true
	}
	return c.pick(held), false
}

func (c *Controller) pick(set map[core.Direction]bool) core.Direction {
	if c.lastPressed != core.DirNone && set[c.lastPressed] {
		return c.lastPressed
	}
	return precedence(set)
}

func precedence(set map[core.Direction]bool) core.Direction {
	for _, d := range core.Directions {
		if set[d] {
			return d
		}
	}
	return core.DirNone
}

// TryStep requests a single step. It returns false if a step is already in
// flight or the destination is out of bounds or blocked. Passing anything
// other than a unit direction panics.
func (c *Controller) TryStep(now time.Time, dir core.Direction) bool {
	return c.try(now, dir, true)
}

// try attempts a step starting at now. Without the wall penalty a held
// direction that keeps hitting the same wall is counted once.
func (c *Controller) try(now time.Time, dir core.Direction, fresh bool) bool {
	if !dir.Valid() {
		panic(fmt.Sprintf("movement: TryStep with non-unit direction %d", int(dir)))
	}
	if c.state == Stepping {
		return false
	}

	dest := c.tile.Step(dir)
	center := dest.PixelCenter(c.cfg.CellSize)
	if !dest.InBounds(c.cfg.Cols, c.cfg.Rows) ||
		(c.collider != nil && c.collider.Blocks(dest, center)) {
		if c.cfg.WallPenalty {
			c.stats.Rejected++
			c.nextAttempt = now.Add(c.cfg.Cooldown / 2)
		} else if fresh || c.bumped != dir {
			c.stats.Rejected++
		}
		c.bumped = dir
		return false
	}

	c.stats.Accepted++
	c.bumped = core.DirNone
	c.tile = dest
	c.start = c.pos
	c.target = c.clamp(center)
	c.startTime = now
	c.nextAttempt = now.Add(c.cfg.Cooldown)
	c.state = Stepping
	return true
}
