package movement

import (
	"github.com/vovakirdan/canyonwalk/internal/collision"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/terrain"
)

// Collider approves or denies a destination. tile is the destination cell,
// center is its world-pixel center.
type Collider interface {
	Blocks(tile core.Coord, center core.Vec) bool
}

// ColliderFunc adapts a plain function to Collider.
type ColliderFunc func(tile core.Coord, center core.Vec) bool

// Blocks calls f.
func (f ColliderFunc) Blocks(tile core.Coord, center core.Vec) bool {
	return f(tile, center)
}

// TileCollider consults a terrain mask (tile-authored maps).
func TileCollider(w *terrain.World) Collider {
	return ColliderFunc(func(tile core.Coord, _ core.Vec) bool {
		return w.BlocksTile(tile)
	})
}

// PolygonCollider consults polygon regions (vector-authored maps).
func PolygonCollider(g *collision.Gate) Collider {
	return ColliderFunc(func(_ core.Coord, center core.Vec) bool {
		return g.IsBlocked(center)
	})
}

// Combined blocks if any of cs blocks. Nil colliders are skipped.
func Combined(cs ...Collider) Collider {
	return ColliderFunc(func(tile core.Coord, center core.Vec) bool {
		for _, c := range cs {
			if c != nil && c.Blocks(tile, center) {
				return true
			}
		}
		return false
	})
}
