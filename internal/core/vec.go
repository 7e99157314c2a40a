package core

import (
	"fmt"
	"math"
)

// Vec is a continuous 2D point or vector.
// Used both for tile-space geometry (tile (x, y) is centered on (x, y))
// and for world-pixel positions.
type Vec struct {
	X, Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the vector length.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Normalized returns the unit vector, or the zero vector for zero length.
func (v Vec) Normalized() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Round rounds both components to whole units.
func (v Vec) Round() Vec {
	return Vec{X: math.Round(v.X), Y: math.Round(v.Y)}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

// Coord is an integer cell coordinate on the world grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one cell in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// InBounds reports whether the coordinate lies in [0,w)x[0,h).
func (c Coord) InBounds(w, h int) bool {
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}

// Center returns the tile-space center of the cell.
func (c Coord) Center() Vec {
	return Vec{X: float64(c.X), Y: float64(c.Y)}
}

// PixelCenter returns the world-pixel center of the cell.
func (c Coord) PixelCenter(cellSize float64) Vec {
	return Vec{
		X: float64(c.X)*cellSize + cellSize/2,
		Y: float64(c.Y)*cellSize + cellSize/2,
	}
}

// TileOf returns the cell containing a world-pixel position.
func TileOf(p Vec, cellSize float64) Coord {
	return Coord{
		X: int(math.Floor(p.X / cellSize)),
		Y: int(math.Floor(p.Y / cellSize)),
	}
}

// EaseOutCubic maps t in [0,1] to an ease-out curve: fast start, soft landing.
func EaseOutCubic(t float64) float64 {
	t = ClampF(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}
