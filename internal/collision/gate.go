// Package collision answers whether a continuous world position is blocked
// by hand-authored polygon regions (vector maps).
package collision

import "github.com/vovakirdan/canyonwalk/internal/core"

// Gate is a fixed set of blocking polygons in world-pixel space.
// A point is blocked if any polygon contains it.
type Gate struct {
	polys []core.Polygon
}

// NewGate creates a gate over the given polygons. Polygons with fewer than
// three vertices can never contain a point and are dropped.
func NewGate(polys []core.Polygon) *Gate {
	g := &Gate{polys: make([]core.Polygon, 0, len(polys))}
	for _, p := range polys {
		if len(p) >= 3 {
			g.polys = append(g.polys, append(core.Polygon(nil), p...))
		}
	}
	return g
}

// IsBlocked reports whether p lies inside any polygon.
func (g *Gate) IsBlocked(p core.Vec) bool {
	for _, poly := range g.polys {
		if poly.Contains(p) {
			return true
		}
	}
	return false
}

// Len returns the number of active polygons.
func (g *Gate) Len() int {
	return len(g.polys)
}

// Polygons returns a copy of the active polygons.
func (g *Gate) Polygons() []core.Polygon {
	out := make([]core.Polygon, len(g.polys))
	for i, p := range g.polys {
		out[i] = append(core.Polygon(nil), p...)
	}
	return out
}
