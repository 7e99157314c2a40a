package terrain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// canyonSpec is a 10x10 world with an east-west canyon along y=5 and a
// full-width horizontal bridge at its midpoint.
func canyonSpec() Spec {
	return Spec{
		Width:     10,
		Height:    10,
		Path:      []core.Vec{core.V(1, 5), core.V(8, 5)},
		HalfWidth: 1.5,
		Bridge:    &Bridge{T: 0.5, Axis: AxisHorizontal},
	}
}

func mustWorld(t *testing.T, spec Spec) *World {
	t.Helper()
	w, err := NewWorld(spec, Options{})
	require.NoError(t, err)
	return w
}

func TestCanyonScenario(t *testing.T) {
	w := mustWorld(t, canyonSpec())

	assert.False(t, w.IsBlocked(4, 5), "bridge tile on the centerline is walkable")
	assert.True(t, w.IsBlocked(4, 4), "canyon above the bridge is blocked")
	assert.True(t, w.IsBlocked(4, 6), "canyon below the bridge is blocked")

	assert.Equal(t, TileBridge, w.KindAt(core.C(4, 5)))
	assert.Equal(t, TileCanyon, w.KindAt(core.C(4, 4)))
	assert.False(t, w.IsBlocked(4, 8), "beyond half-width plus margin is open")

	seg, ok := w.BridgeSegment()
	require.True(t, ok)
	assert.Equal(t, core.Seg(core.V(0, 5), core.V(9, 5)), seg)
}

func TestOutOfBoundsAndBorderBlocked(t *testing.T) {
	w := mustWorld(t, canyonSpec())

	for _, c := range []core.Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 100, Y: 100}} {
		assert.True(t, w.BlocksTile(c), "out of bounds %s", c)
	}

	for i := 0; i < 10; i++ {
		assert.True(t, w.IsBlocked(i, 0), "top border x=%d", i)
		assert.True(t, w.IsBlocked(i, 9), "bottom border x=%d", i)
		assert.True(t, w.IsBlocked(0, i), "left border y=%d", i)
		assert.True(t, w.IsBlocked(9, i), "right border y=%d", i)
	}
}

func TestBridgeCorridorNeverBlockedByCanyon(t *testing.T) {
	specs := map[string]Spec{
		"horizontal": canyonSpec(),
		"diagonal": {
			Width: 20, Height: 20,
			Path:      []core.Vec{core.V(2, 2), core.V(17, 17)},
			HalfWidth: 2,
			Bridge:    &Bridge{T: 0.5, Axis: AxisAcross},
		},
		"vertical span": {
			Width: 16, Height: 16,
			Path:      []core.Vec{core.V(2, 8), core.V(8, 8), core.V(13, 8)},
			HalfWidth: 1,
			Bridge:    &Bridge{T: 0.4, Axis: AxisVertical, Span: 4},
		},
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			w := mustWorld(t, spec)
			seg, ok := w.BridgeSegment()
			require.True(t, ok)

			corridor := 0
			for y := 1; y < w.Height()-1; y++ {
				for x := 1; x < w.Width()-1; x++ {
					c := core.C(x, y)
					if seg.Distance(c.Center()) <= DefaultBridgeTolerance {
						corridor++
						assert.NotEqual(t, TileCanyon, w.KindAt(c), "corridor tile %s", c)
						assert.False(t, w.BlocksTile(c), "corridor tile %s", c)
					}
				}
			}
			assert.Positive(t, corridor)
		})
	}
}

func TestAcrossBridgeSpansRims(t *testing.T) {
	w := mustWorld(t, Spec{
		Width: 10, Height: 10,
		Path:      []core.Vec{core.V(5, 1), core.V(5, 8)},
		HalfWidth: 1.5,
		Bridge:    &Bridge{T: 0.5, Axis: AxisAcross},
	})

	seg, ok := w.BridgeSegment()
	require.True(t, ok)
	assert.InDelta(t, 4.5, seg.A.Y, 1e-9)
	assert.InDelta(t, 4.5, seg.B.Y, 1e-9)
	assert.InDelta(t, 1.85*2, seg.Length(), 1e-9)

	assert.False(t, w.IsBlocked(5, 4))
	assert.False(t, w.IsBlocked(4, 5))
	assert.True(t, w.IsBlocked(5, 2))
}

func TestRectFootprintBlocksExactly(t *testing.T) {
	w := mustWorld(t, Spec{Width: 12, Height: 12, Shapes: []Shape{Rect(2, 3, 4, 2)}})

	for y := 1; y < 11; y++ {
		for x := 1; x < 11; x++ {
			inside := x >= 2 && x < 6 && y >= 3 && y < 5
			assert.Equal(t, inside, w.IsBlocked(x, y), "tile (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 44+8, w.BlockedCount())
}

func TestNoPathNoCanyon(t *testing.T) {
	w := mustWorld(t, Spec{Width: 5, Height: 5})
	assert.Equal(t, "#####\n#...#\n#...#\n#...#\n#####", w.Mask().String())
	_, ok := w.BridgeSegment()
	assert.False(t, ok)
}

func TestDoorwayInvalidatesMask(t *testing.T) {
	w := mustWorld(t, Spec{Width: 12, Height: 12, Shapes: []Shape{Rect(3, 3, 4, 4)}})
	before := w.BlockedCount()
	require.True(t, w.IsBlocked(3, 4))

	require.NoError(t, w.AddDoorway(core.Seg(core.V(3, 4), core.V(3, 4))))

	assert.False(t, w.IsBlocked(3, 4), "doorway opens the footprint tile")
	assert.Equal(t, TileDoorway, w.KindAt(core.C(3, 4)))
	assert.True(t, w.IsBlocked(3, 3), "neighbours outside tolerance stay blocked")
	assert.Equal(t, before-1, w.BlockedCount())
	assert.Len(t, w.Doorways(), 1)
}

func TestDoorwayNeverOpensCanyon(t *testing.T) {
	spec := canyonSpec()
	spec.Doorways = []core.Segment{core.Seg(core.V(4, 4), core.V(4, 4))}
	w := mustWorld(t, spec)
	assert.True(t, w.IsBlocked(4, 4))
}

func TestAddShapeRebuildsFromScratch(t *testing.T) {
	w := mustWorld(t, canyonSpec())
	before := w.Mask().IDs()

	require.NoError(t, w.AddShape(Rect(2, 1, 2, 2)))
	assert.True(t, w.IsBlocked(2, 2))
	assert.Greater(t, w.BlockedCount(), len(before))

	// A fresh world from the same geometry yields the same mask.
	spec := canyonSpec()
	spec.Shapes = []Shape{Rect(2, 1, 2, 2)}
	fresh := mustWorld(t, spec)
	assert.Equal(t, fresh.Mask().IDs(), w.Mask().IDs())

	err := w.AddShape(Rect(8, 8, 4, 4))
	assertCode(t, err, CodeShapeOutOfBounds)
	assert.Len(t, w.Shapes(), 1, "rejected shapes are not kept")
}

func TestNewWorldValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Spec)
		code string
	}{
		{"single waypoint", func(s *Spec) { s.Path = s.Path[:1] }, CodeDegeneratePath},
		{"zero-length path", func(s *Spec) { s.Path = []core.Vec{core.V(3, 3), core.V(3, 3)} }, CodeDegeneratePath},
		{"zero half-width", func(s *Spec) { s.HalfWidth = 0 }, CodeBadHalfWidth},
		{"tiny world", func(s *Spec) { s.Width = 2 }, CodeBadWorldSize},
		{"bridge t out of range", func(s *Spec) { s.Bridge.T = 1.5 }, CodeBadBridge},
		{"negative span", func(s *Spec) { s.Bridge.Span = -1 }, CodeBadBridge},
		{"bridge without path", func(s *Spec) { s.Path = nil }, CodeBadBridge},
		{"rect out of bounds", func(s *Spec) { s.Shapes = []Shape{Rect(8, 8, 3, 1)} }, CodeShapeOutOfBounds},
		{"circle out of bounds", func(s *Spec) { s.Shapes = []Shape{Circle(1, 5, 2)} }, CodeShapeOutOfBounds},
		{"empty rect", func(s *Spec) { s.Shapes = []Shape{Rect(2, 2, 0, 3)} }, CodeBadShape},
		{"unknown kind", func(s *Spec) { s.Shapes = []Shape{{Kind: 99}} }, CodeBadShape},
		{"doorway outside", func(s *Spec) { s.Doorways = []core.Segment{core.Seg(core.V(1, 1), core.V(12, 1))} }, CodeShapeOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := canyonSpec()
			b := *spec.Bridge
			spec.Bridge = &b
			tc.mod(&spec)

			w, err := NewWorld(spec, DefaultOptions())
			assert.Nil(t, w)
			assertCode(t, err, tc.code)
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	w := mustWorld(t, canyonSpec())
	assert.Equal(t, DefaultOptions(), w.Options())

	wide, err := NewWorld(canyonSpec(), Options{SafetyMargin: 1, BridgeTolerance: DefaultBridgeTolerance})
	require.NoError(t, err)
	assert.True(t, wide.IsBlocked(4, 7), "larger margin carves further")
	assert.Greater(t, wide.BlockedCount(), w.BlockedCount())
}

func TestZeroMarginCarvesNominalHalfWidth(t *testing.T) {
	narrow := Spec{
		Width:     10,
		Height:    10,
		Path:      []core.Vec{core.V(1, 5), core.V(8, 5)},
		HalfWidth: 0.8,
	}

	// Default margin: radius 1.15 reaches the rows beside the centerline.
	def := mustWorld(t, narrow)
	assert.True(t, def.IsBlocked(4, 4))

	opts := DefaultOptions()
	opts.SafetyMargin = 0
	w, err := NewWorld(narrow, opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.Options().SafetyMargin, "an explicit zero margin is kept")
	assert.True(t, w.IsBlocked(4, 5))
	assert.False(t, w.IsBlocked(4, 4), "radius 0.8 stops short of the next row")
	assert.False(t, w.IsBlocked(4, 6))

	negative := DefaultOptions()
	negative.SafetyMargin = -1
	negative.BridgeTolerance = -1
	n, err := NewWorld(canyonSpec(), negative)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), n.Options(), "negative distances take the defaults")
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var ge *GeometryError
	if assert.True(t, errors.As(err, &ge), "expected *GeometryError, got %v", err) {
		assert.Equal(t, code, ge.Code)
	}
}
