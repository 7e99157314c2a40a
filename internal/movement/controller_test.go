package movement

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canyonwalk/internal/collision"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/terrain"
)

var t0 = time.Unix(1_700_000_000, 0)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

// frame builds an input frame. pressed directions are also held.
func frame(now time.Time, pressed []core.Direction, held ...core.Direction) core.InputFrame {
	f := core.NewInputFrame(now)
	for _, d := range pressed {
		f.Press(d)
	}
	for _, d := range held {
		f.Hold(d)
	}
	return f
}

func press(d ...core.Direction) []core.Direction { return d }

func blockTiles(tiles ...core.Coord) Collider {
	set := make(map[core.Coord]bool, len(tiles))
	for _, c := range tiles {
		set[c] = true
	}
	return ColliderFunc(func(tile core.Coord, _ core.Vec) bool { return set[tile] })
}

func TestSingleStepCompletesExactlyAtDuration(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, nil, core.C(5, 5))
	start := core.C(5, 5).PixelCenter(cfg.CellSize)
	require.Equal(t, start, c.Position())

	ev := c.Update(t0, frame(t0, press(core.DirRight)))
	assert.True(t, ev.Started)
	assert.Equal(t, core.DirRight, ev.Dir)
	assert.Equal(t, Stepping, c.State())
	assert.Equal(t, core.C(6, 5), c.Tile())

	almost := t0.Add(cfg.StepDuration - time.Millisecond)
	ev = c.Update(almost, frame(almost, nil))
	assert.False(t, ev.Arrived)
	assert.True(t, c.IsMoving(), "not idle before the duration has elapsed")
	assert.NotEqual(t, core.C(6, 5).PixelCenter(cfg.CellSize), c.Position())

	done := t0.Add(cfg.StepDuration)
	ev = c.Update(done, frame(done, nil))
	assert.True(t, ev.Arrived)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, core.V(208, 176), c.Position(), "pixel-exact center of (6,5)")
	assert.Equal(t, Stats{Accepted: 1}, c.Stats())
}

func TestEasedInterpolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepDuration = 100 * time.Millisecond
	c := New(cfg, nil, core.C(5, 5))
	startX := c.Position().X

	c.Update(t0, frame(t0, press(core.DirRight)))
	c.Update(at(50), frame(at(50), nil))

	assert.InDelta(t, startX+32*0.875, c.Position().X, 1e-9, "ease-out is ahead of linear at the midpoint")
	assert.Equal(t, 176.0, c.Position().Y, "only one axis moves")
}

func TestBlockedStepIsRejected(t *testing.T) {
	c := New(DefaultConfig(), blockTiles(core.C(6, 5)), core.C(5, 5))
	before := c.Position()

	ev := c.Update(t0, frame(t0, press(core.DirRight)))
	assert.True(t, ev.Rejected)
	assert.False(t, ev.Started)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, core.C(5, 5), c.Tile())
	assert.Equal(t, before, c.Position())
	assert.Equal(t, Stats{Rejected: 1}, c.Stats())
}

func TestBlockedByTerrainWorld(t *testing.T) {
	w, err := terrain.NewWorld(terrain.Spec{
		Width: 10, Height: 10,
		Shapes: []terrain.Shape{terrain.Rect(6, 5, 1, 1)},
	}, terrain.Options{})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Cols, cfg.Rows = 10, 10
	c := New(cfg, TileCollider(w), core.C(5, 5))

	assert.False(t, c.TryStep(t0, core.DirRight))
	assert.True(t, c.TryStep(t0, core.DirDown))
}

func TestOutOfBoundsRejected(t *testing.T) {
	c := New(DefaultConfig(), nil, core.C(0, 0))
	assert.False(t, c.TryStep(t0, core.DirLeft))
	assert.False(t, c.TryStep(t0, core.DirUp))
	assert.Equal(t, 2, c.Stats().Rejected)
}

func TestTryStepPanicsOnNonUnitDirection(t *testing.T) {
	c := New(DefaultConfig(), nil, core.C(5, 5))
	assert.Panics(t, func() { c.TryStep(t0, core.DirNone) })
	assert.Panics(t, func() { c.TryStep(t0, core.Direction(9)) })
}

func TestTryStepIgnoredWhileStepping(t *testing.T) {
	c := New(DefaultConfig(), nil, core.C(5, 5))
	require.True(t, c.TryStep(t0, core.DirRight))
	assert.False(t, c.TryStep(at(10), core.DirDown))
	assert.Equal(t, Stats{Accepted: 1}, c.Stats(), "ignored requests are not rejections")
}

func TestSimultaneousPressesUseFixedPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		pressed []core.Direction
		want    core.Direction
	}{
		{"up beats right", press(core.DirRight, core.DirUp), core.DirUp},
		{"right beats down", press(core.DirDown, core.DirRight), core.DirRight},
		{"down beats left", press(core.DirLeft, core.DirDown), core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(DefaultConfig(), nil, core.C(5, 5))
			ev := c.Update(t0, frame(t0, tc.pressed))
			assert.Equal(t, tc.want, ev.Dir)
		})
	}
}

func TestFreshPressBeatsHeld(t *testing.T) {
	c := New(DefaultConfig(), nil, core.C(5, 5))
	c.Update(t0, frame(t0, press(core.DirLeft)))

	// The left step has landed and its cooldown has passed, so held Left is
	// eligible to repeat. The fresh Down press still wins.
	ev := c.Update(at(200), frame(at(200), press(core.DirDown), core.DirLeft))
	assert.True(t, ev.Arrived)
	assert.True(t, ev.Started)
	assert.Equal(t, core.DirDown, ev.Dir)
	assert.Equal(t, core.C(4, 6), c.Tile())
}

func TestMostRecentlyPressedHeldDirectionWins(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, nil, core.C(5, 5))

	// Press Down, then Left while both stay held.
	c.Update(t0, frame(t0, press(core.DirDown)))
	c.Update(at(150), frame(at(150), nil, core.DirDown))
	ev := c.Update(at(151), frame(at(151), press(core.DirLeft), core.DirDown))
	require.True(t, ev.Started)
	require.Equal(t, core.DirLeft, ev.Dir)

	// Held repeat: Left is the most recent press and still held, so it beats
	// Down even though Down comes first in the fixed precedence.
	c.Update(at(300), frame(at(300), nil, core.DirDown, core.DirLeft))
	ev = c.Update(at(320), frame(at(320), nil, core.DirDown, core.DirLeft))
	require.True(t, ev.Started)
	assert.Equal(t, core.DirLeft, ev.Dir)

	// Once Left is released, fixed precedence applies again.
	c.Update(at(470), frame(at(470), nil, core.DirDown, core.DirRight))
	ev = c.Update(at(500), frame(at(500), nil, core.DirDown, core.DirRight))
	require.True(t, ev.Started)
	assert.Equal(t, core.DirRight, ev.Dir)
}

func TestHeldRepeatWaitsForCooldown(t *testing.T) {
	cfg := DefaultConfig() // 140ms step, 160ms cooldown
	c := New(cfg, nil, core.C(5, 5))

	c.Update(t0, frame(t0, press(core.DirRight)))

	ev := c.Update(at(150), frame(at(150), nil, core.DirRight))
	assert.True(t, ev.Arrived)
	assert.False(t, ev.Started, "cooldown has not elapsed")
	assert.Equal(t, Idle, c.State())

	ev = c.Update(at(160), frame(at(160), nil, core.DirRight))
	assert.True(t, ev.Started)
	assert.Equal(t, core.C(7, 5), c.Tile())

	// Releasing everything stops the repeat; the step in flight still completes.
	ev = c.Update(at(400), frame(at(400), nil))
	assert.True(t, ev.Arrived)
	assert.False(t, ev.Started)
	assert.Equal(t, core.C(7, 5).PixelCenter(cfg.CellSize), c.Position())
}

func TestInputDuringStepIsIgnored(t *testing.T) {
	c := New(DefaultConfig(), nil, core.C(5, 5))

	c.Update(t0, frame(t0, press(core.DirRight)))
	ev := c.Update(at(50), frame(at(50), press(core.DirDown)))
	assert.False(t, ev.Started)
	assert.Equal(t, core.C(6, 5), c.Tile(), "the step in flight is not redirected")

	// The tap was released before the step finished: nothing follows.
	ev = c.Update(at(200), frame(at(200), nil))
	assert.True(t, ev.Arrived)
	assert.False(t, ev.Started)
}

func TestWallPenaltyDelaysRetries(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, blockTiles(core.C(7, 5)), core.C(5, 5))

	c.Update(t0, frame(t0, press(core.DirRight)))
	c.Update(at(150), frame(at(150), nil, core.DirRight))

	ev := c.Update(at(160), frame(at(160), nil, core.DirRight))
	require.True(t, ev.Rejected, "held repeat into the wall")

	// Next attempt is pushed back by Cooldown/2 = 80ms.
	ev = c.Update(at(200), frame(at(200), nil, core.DirRight))
	assert.Equal(t, core.DirNone, ev.Dir)
	ev = c.Update(at(239), frame(at(239), nil, core.DirRight))
	assert.Equal(t, core.DirNone, ev.Dir)
	ev = c.Update(at(240), frame(at(240), nil, core.DirRight))
	assert.True(t, ev.Rejected)

	assert.Equal(t, Stats{Accepted: 1, Rejected: 2}, c.Stats())
	assert.Equal(t, core.C(6, 5), c.Tile())
}

func TestWithoutWallPenaltyBumpCountsOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallPenalty = false
	c := New(cfg, blockTiles(core.C(6, 5)), core.C(5, 5))

	for ms := 0; ms < 50; ms += 10 {
		ev := c.Update(at(ms), frame(at(ms), nil, core.DirRight))
		assert.True(t, ev.Rejected, "held key retries every frame")
	}
	assert.Equal(t, 1, c.Stats().Rejected, "one wall contact is one bump")

	// Releasing and pressing again is a new bump.
	c.Update(at(60), frame(at(60), nil))
	ev := c.Update(at(70), frame(at(70), press(core.DirRight)))
	assert.Equal(t, 1, ev.Bumps)
	assert.Equal(t, 2, c.Stats().Rejected)
}

// holdFor presses d at t0, keeps it held with frames every period up to and
// including total, then releases it long enough for the last step to land.
func holdFor(c *Controller, d core.Direction, period, total time.Duration) {
	c.Update(t0, frame(t0, press(d)))
	for el := period; el < total; el += period {
		now := t0.Add(el)
		c.Update(now, frame(now, nil, d))
	}
	end := t0.Add(total)
	c.Update(end, frame(end, nil, d))
	done := end.Add(time.Second)
	c.Update(done, frame(done, nil))
}

func TestHeldDistanceIndependentOfFrameRate(t *testing.T) {
	periods := []time.Duration{
		16 * time.Millisecond,
		33 * time.Millisecond,
		50 * time.Millisecond,
		70 * time.Millisecond,
		250 * time.Millisecond, // slower than one step cycle
	}

	for _, p := range periods {
		t.Run(p.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			c := New(cfg, nil, core.C(2, 5))

			holdFor(c, core.DirRight, p, 2*time.Second)

			// Repeats start every 160ms: 0, 160, ..., 1920.
			assert.Equal(t, Stats{Accepted: 13}, c.Stats())
			assert.Equal(t, core.C(15, 5), c.Tile())
			assert.Equal(t, Idle, c.State())
			assert.Equal(t, core.C(15, 5).PixelCenter(cfg.CellSize), c.Position())
		})
	}
}

func TestWallBumpsIndependentOfFrameRate(t *testing.T) {
	for _, penalty := range []bool{true, false} {
		for _, p := range []time.Duration{16 * time.Millisecond, 70 * time.Millisecond} {
			t.Run(fmt.Sprintf("penalty=%v/%s", penalty, p), func(t *testing.T) {
				cfg := DefaultConfig()
				cfg.WallPenalty = penalty
				c := New(cfg, blockTiles(core.C(4, 5)), core.C(2, 5))

				holdFor(c, core.DirRight, p, time.Second)

				want := Stats{Accepted: 1, Rejected: 1}
				if penalty {
					// Retries at 160, 240, ..., 960.
					want.Rejected = 11
				}
				assert.Equal(t, want, c.Stats())
				assert.Equal(t, core.C(3, 5), c.Tile())
			})
		}
	}
}

func TestLongFrameReplaysHeldRepeats(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg, nil, core.C(2, 5))

	c.Update(t0, frame(t0, press(core.DirRight)))
	ev := c.Update(at(500), frame(at(500), nil, core.DirRight))

	// Repeats due at 160, 320 and 480 are replayed at those instants. The
	// first two land before 500; the last is still in flight.
	assert.Equal(t, 3, ev.Steps)
	assert.Equal(t, []core.Coord{core.C(3, 5), core.C(4, 5), core.C(5, 5)}, ev.Reached)
	assert.Equal(t, core.C(6, 5), c.Tile())
	assert.Equal(t, Stepping, c.State())
}

func TestTargetClampedToActorInset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActorSize = 48 // larger than a tile
	c := New(cfg, nil, core.C(0, 0))
	assert.Equal(t, core.V(24, 24), c.Position())

	c.Teleport(core.C(39, 29))
	w, h := cfg.WorldSize()
	assert.Equal(t, core.V(w-24, h-24), c.Position())
	assert.Equal(t, Stats{}, c.Stats())
}

func TestCombinedCollider(t *testing.T) {
	w, err := terrain.NewWorld(terrain.Spec{Width: 10, Height: 10}, terrain.Options{})
	require.NoError(t, err)
	gate := collision.NewGate([]core.Polygon{{
		core.V(96, 96), core.V(160, 96), core.V(160, 160), core.V(96, 160),
	}})

	col := Combined(TileCollider(w), PolygonCollider(gate), nil)
	assert.True(t, col.Blocks(core.C(0, 3), core.C(0, 3).PixelCenter(32)), "border tile")
	assert.True(t, col.Blocks(core.C(3, 3), core.C(3, 3).PixelCenter(32)), "inside polygon")
	assert.False(t, col.Blocks(core.C(6, 6), core.C(6, 6).PixelCenter(32)))
}
