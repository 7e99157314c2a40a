// Package camera keeps a fixed-size viewport centered on one actor while
// never showing area outside the world.
package camera

import (
	"math"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// Target is anything with a continuous world-pixel position.
type Target interface {
	Position() core.Vec
}

// Camera is a clamped follow camera. It holds no state beyond the current
// offset, which Update recomputes from the target every frame.
type Camera struct {
	viewW, viewH   float64
	worldW, worldH float64

	target Target
	offset core.Vec
}

// New creates a camera for a viewport and world, both in pixels.
func New(viewW, viewH, worldW, worldH float64) *Camera {
	return &Camera{viewW: viewW, viewH: viewH, worldW: worldW, worldH: worldH}
}

// Follow binds the camera to t. Only one target is followed at a time.
func (c *Camera) Follow(t Target) {
	c.target = t
}

// Resize changes the viewport size, e.g. when the terminal is resized.
func (c *Camera) Resize(viewW, viewH float64) {
	c.viewW, c.viewH = viewW, viewH
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (float64, float64) {
	return c.viewW, c.viewH
}

// Update recenters on the target. Without a target the offset is unchanged.
func (c *Camera) Update() {
	if c.target == nil {
		return
	}
	c.offset = c.OffsetFor(c.target.Position())
}

// OffsetFor returns the clamped, rounded offset that centers p.
func (c *Camera) OffsetFor(p core.Vec) core.Vec {
	return core.Vec{
		X: axisOffset(p.X, c.viewW, c.worldW),
		Y: axisOffset(p.Y, c.viewH, c.worldH),
	}
}

// axisOffset centers pos in view, clamped to [0, world-view]. A world smaller
// than the view pins the offset at 0.
func axisOffset(pos, view, world float64) float64 {
	hi := math.Max(0, world-view)
	return math.Round(core.ClampF(pos-view/2, 0, hi))
}

// Offset returns the offset computed by the last Update.
func (c *Camera) Offset() core.Vec {
	return c.offset
}

// WorldToView converts a world-pixel position to viewport pixels.
func (c *Camera) WorldToView(p core.Vec) core.Vec {
	return p.Sub(c.offset)
}

// Visible reports whether p falls inside the viewport.
func (c *Camera) Visible(p core.Vec) bool {
	v := c.WorldToView(p)
	return v.X >= 0 && v.Y >= 0 && v.X < c.viewW && v.Y < c.viewH
}
