package terrain

import (
	"fmt"
	"math"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota + 1
	ShapeCircle
	ShapeLShape
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeLShape:
		return "lshape"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// ParseShapeKind converts a map-file name to a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "rect":
		return ShapeRect, nil
	case "circle":
		return ShapeCircle, nil
	case "lshape":
		return ShapeLShape, nil
	default:
		return 0, geometryErr(CodeBadShape, "unknown shape kind %q", s)
	}
}

// Shape is a building footprint.
//
//	rect:   tiles in [X, X+W) x [Y, Y+H)
//	circle: tiles whose center lies within R of (CX, CY)
//	lshape: union of rect{X, Y, W, H} and rect{X, Y, W2, H2}
type Shape struct {
	Kind ShapeKind

	X, Y   int
	W, H   int
	W2, H2 int

	CX, CY float64
	R      float64
}

// Rect returns a rectangular footprint.
func Rect(x, y, w, h int) Shape {
	return Shape{Kind: ShapeRect, X: x, Y: y, W: w, H: h}
}

// Circle returns a circular footprint centered on (cx, cy) in tile-space.
func Circle(cx, cy, r float64) Shape {
	return Shape{Kind: ShapeCircle, CX: cx, CY: cy, R: r}
}

// LShape returns the union of two rectangles sharing the corner (x, y).
func LShape(x, y, w1, h1, w2, h2 int) Shape {
	return Shape{Kind: ShapeLShape, X: x, Y: y, W: w1, H: h1, W2: w2, H2: h2}
}

func (s Shape) String() string {
	switch s.Kind {
	case ShapeRect:
		return fmt.Sprintf("rect{%d,%d %dx%d}", s.X, s.Y, s.W, s.H)
	case ShapeCircle:
		return fmt.Sprintf("circle{%.1f,%.1f r=%.1f}", s.CX, s.CY, s.R)
	case ShapeLShape:
		return fmt.Sprintf("lshape{%d,%d %dx%d+%dx%d}", s.X, s.Y, s.W, s.H, s.W2, s.H2)
	default:
		return s.Kind.String()
	}
}

// circleSpan returns the inclusive integer range of tile coordinates a circle
// can cover along one axis.
func circleSpan(c, r float64) (int, int) {
	return int(math.Ceil(c - r)), int(math.Floor(c + r))
}

// validate checks a shape against a world of size w x h.
func (s Shape) validate(w, h int) error {
	switch s.Kind {
	case ShapeRect:
		r := core.NewRect(s.X, s.Y, s.W, s.H)
		if r.Empty() {
			return geometryErr(CodeBadShape, "%s has non-positive size", s)
		}
		if !r.Within(w, h) {
			return geometryErr(CodeShapeOutOfBounds, "%s exceeds %dx%d world", s, w, h)
		}
	case ShapeCircle:
		if !(s.R > 0) {
			return geometryErr(CodeBadShape, "%s has non-positive radius", s)
		}
		x0, x1 := circleSpan(s.CX, s.R)
		y0, y1 := circleSpan(s.CY, s.R)
		if x0 < 0 || y0 < 0 || x1 >= w || y1 >= h {
			return geometryErr(CodeShapeOutOfBounds, "%s exceeds %dx%d world", s, w, h)
		}
	case ShapeLShape:
		a := core.NewRect(s.X, s.Y, s.W, s.H)
		b := core.NewRect(s.X, s.Y, s.W2, s.H2)
		if a.Empty() || b.Empty() {
			return geometryErr(CodeBadShape, "%s has a non-positive arm", s)
		}
		if !a.Within(w, h) || !b.Within(w, h) {
			return geometryErr(CodeShapeOutOfBounds, "%s exceeds %dx%d world", s, w, h)
		}
	default:
		return geometryErr(CodeBadShape, "unknown shape kind %d", int(s.Kind))
	}
	return nil
}

// RasterizeShape returns the tiles a footprint covers, in row-major order
// without duplicates. It does not clip to any world; validate first.
// An unknown kind is a programming error and panics.
func RasterizeShape(s Shape) []core.Coord {
	switch s.Kind {
	case ShapeRect:
		return rectTiles(core.NewRect(s.X, s.Y, s.W, s.H))
	case ShapeCircle:
		var tiles []core.Coord
		x0, x1 := circleSpan(s.CX, s.R)
		y0, y1 := circleSpan(s.CY, s.R)
		center := core.V(s.CX, s.CY)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c := core.C(x, y)
				if c.Center().Dist(center) <= s.R {
					tiles = append(tiles, c)
				}
			}
		}
		return tiles
	case ShapeLShape:
		a := core.NewRect(s.X, s.Y, s.W, s.H)
		b := core.NewRect(s.X, s.Y, s.W2, s.H2)
		var tiles []core.Coord
		for y := s.Y; y < core.Max(a.Bottom(), b.Bottom()); y++ {
			for x := s.X; x < core.Max(a.Right(), b.Right()); x++ {
				if a.Contains(x, y) || b.Contains(x, y) {
					tiles = append(tiles, core.C(x, y))
				}
			}
		}
		return tiles
	default:
		panic(fmt.Sprintf("terrain: unhandled shape kind %d", int(s.Kind)))
	}
}

func rectTiles(r core.Rect) []core.Coord {
	if r.Empty() {
		return nil
	}
	tiles := make([]core.Coord, 0, r.W*r.H)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			tiles = append(tiles, core.C(x, y))
		}
	}
	return tiles
}
