package terrain

import (
	"fmt"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// BridgeAxis selects how a bridge is laid across the canyon.
type BridgeAxis int

const (
	// AxisHorizontal runs along the world x axis through the path point at T.
	AxisHorizontal BridgeAxis = iota
	// AxisVertical runs along the world y axis through the path point at T.
	AxisVertical
	// AxisAcross runs perpendicular to the path tangent at T, rim to rim.
	AxisAcross
)

func (a BridgeAxis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	case AxisAcross:
		return "across"
	default:
		return fmt.Sprintf("BridgeAxis(%d)", int(a))
	}
}

// ParseBridgeAxis converts a map-file name to a BridgeAxis.
// The empty string selects AxisHorizontal.
func ParseBridgeAxis(s string) (BridgeAxis, error) {
	switch s {
	case "", "horizontal":
		return AxisHorizontal, nil
	case "vertical":
		return AxisVertical, nil
	case "across":
		return AxisAcross, nil
	default:
		return 0, geometryErr(CodeBadBridge, "unknown bridge axis %q", s)
	}
}

// Bridge describes a walkable crossing placed at parameter T along the
// canyon centerline.
//
// Span is the bridge length in tiles. For horizontal and vertical bridges a
// zero span reaches across the whole world; for across bridges a zero span
// reaches exactly to the carved rims.
type Bridge struct {
	T    float64
	Axis BridgeAxis
	Span float64
}

func (b Bridge) validate(hasPath bool) error {
	if !hasPath {
		return geometryErr(CodeBadBridge, "bridge requires a canyon path")
	}
	if !(b.T >= 0 && b.T <= 1) {
		return geometryErr(CodeBadBridge, "bridge t=%v outside [0,1]", b.T)
	}
	if !(b.Span >= 0) {
		return geometryErr(CodeBadBridge, "bridge span %v is negative", b.Span)
	}
	if b.Axis < AxisHorizontal || b.Axis > AxisAcross {
		return geometryErr(CodeBadBridge, "unknown bridge axis %d", int(b.Axis))
	}
	return nil
}

// segment resolves the bridge to a tile-space segment. reach is the carved
// radius around the centerline, used by across bridges with no span.
func (b Bridge) segment(path []core.Vec, reach float64, w, h int) core.Segment {
	center := core.PathPointAt(path, b.T)
	half := b.Span / 2

	switch b.Axis {
	case AxisHorizontal:
		if b.Span == 0 {
			return core.Seg(core.V(0, center.Y), core.V(float64(w-1), center.Y))
		}
		return core.Seg(core.V(center.X-half, center.Y), core.V(center.X+half, center.Y))
	case AxisVertical:
		if b.Span == 0 {
			return core.Seg(core.V(center.X, 0), core.V(center.X, float64(h-1)))
		}
		return core.Seg(core.V(center.X, center.Y-half), core.V(center.X, center.Y+half))
	case AxisAcross:
		if b.Span == 0 {
			half = reach
		}
		left, right := core.RimAt(path, half, b.T)
		return core.Seg(left, right)
	default:
		panic(fmt.Sprintf("terrain: unhandled bridge axis %d", int(b.Axis)))
	}
}
