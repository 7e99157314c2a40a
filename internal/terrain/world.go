// Package terrain turns continuous world geometry (a canyon centerline,
// building footprints, bridges and doorways) into a per-tile collision mask.
//
// A World owns its geometry. Every change invalidates the cached mask, and
// the next query rebuilds it from scratch: the mask is never patched in place.
package terrain

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// Default rasterizer tuning.
const (
	DefaultSamplesPerTile   = 4
	DefaultSafetyMargin     = 0.35
	DefaultBridgeTolerance  = 0.5
	DefaultDoorwayTolerance = 0.5
)

// Options tunes the rasterizer. The zero Options selects DefaultOptions.
// Otherwise fields are taken as given, except that a non-positive sample
// rate and negative distances fall back to their defaults, so a margin or
// tolerance of exactly 0 can be asked for.
type Options struct {
	SamplesPerTile   int     // Centerline samples per tile of path length
	SafetyMargin     float64 // Added to the half-width when carving the canyon
	BridgeTolerance  float64 // Tiles this close to the bridge stay walkable
	DoorwayTolerance float64 // Footprint tiles this close to a doorway stay walkable
}

// DefaultOptions returns the standard rasterizer tuning.
func DefaultOptions() Options {
	return Options{
		SamplesPerTile:   DefaultSamplesPerTile,
		SafetyMargin:     DefaultSafetyMargin,
		BridgeTolerance:  DefaultBridgeTolerance,
		DoorwayTolerance: DefaultDoorwayTolerance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o == (Options{}) {
		return d
	}
	if o.SamplesPerTile <= 0 {
		o.SamplesPerTile = d.SamplesPerTile
	}
	if o.SafetyMargin < 0 {
		o.SafetyMargin = d.SafetyMargin
	}
	if o.BridgeTolerance < 0 {
		o.BridgeTolerance = d.BridgeTolerance
	}
	if o.DoorwayTolerance < 0 {
		o.DoorwayTolerance = d.DoorwayTolerance
	}
	return o
}

// Spec is the geometry a World is built from. Path and all other
// continuous coordinates are in tile-space, where tile (x, y) is centered
// on the point (x, y).
type Spec struct {
	Width, Height int

	Path      []core.Vec // Canyon centerline; empty means no canyon
	HalfWidth float64
	Bridge    *Bridge

	Shapes   []Shape
	Doorways []core.Segment
}

// World is a fixed-size tile grid with its geometry and derived mask.
type World struct {
	width, height int

	path      []core.Vec
	halfWidth float64
	bridge    *Bridge
	bridgeSeg core.Segment

	shapes   []Shape
	doorways []core.Segment

	opts  Options
	mask  *Mask
	dirty bool
}

// NewWorld validates the spec and builds the initial mask.
func NewWorld(spec Spec, opts Options) (*World, error) {
	w := &World{
		width:     spec.Width,
		height:    spec.Height,
		path:      slices.Clone(spec.Path),
		halfWidth: spec.HalfWidth,
		shapes:    slices.Clone(spec.Shapes),
		doorways:  slices.Clone(spec.Doorways),
		opts:      opts.withDefaults(),
	}
	if spec.Bridge != nil {
		b := *spec.Bridge
		w.bridge = &b
	}

	if err := w.Rebuild(); err != nil {
		return nil, err
	}
	return w, nil
}

// Width returns the world width in tiles.
func (w *World) Width() int { return w.width }

// Height returns the world height in tiles.
func (w *World) Height() int { return w.height }

// Options returns the effective rasterizer tuning.
func (w *World) Options() Options { return w.opts }

// Path returns a copy of the canyon centerline.
func (w *World) Path() []core.Vec { return slices.Clone(w.path) }

// HalfWidth returns the canyon half-width.
func (w *World) HalfWidth() float64 { return w.halfWidth }

// Shapes returns a copy of the footprint list.
func (w *World) Shapes() []Shape { return slices.Clone(w.shapes) }

// Doorways returns a copy of the doorway list.
func (w *World) Doorways() []core.Segment { return slices.Clone(w.doorways) }

// BridgeSegment returns the resolved bridge segment, if the world has one.
func (w *World) BridgeSegment() (core.Segment, bool) {
	if w.bridge == nil {
		return core.Segment{}, false
	}
	return w.bridgeSeg, true
}

// carveRadius is the distance from the centerline within which tiles are canyon.
func (w *World) carveRadius() float64 {
	return w.halfWidth + w.opts.SafetyMargin
}

// validate checks the whole geometry.
func (w *World) validate() error {
	if w.width < 3 || w.height < 3 {
		return geometryErr(CodeBadWorldSize, "world %dx%d is smaller than 3x3", w.width, w.height)
	}

	hasPath := len(w.path) > 0
	if hasPath {
		if len(w.path) < 2 {
			return geometryErr(CodeDegeneratePath, "canyon path has a single waypoint")
		}
		if core.PathLength(w.path) == 0 {
			return geometryErr(CodeDegeneratePath, "canyon path has zero length")
		}
		if !(w.halfWidth > 0) {
			return geometryErr(CodeBadHalfWidth, "half-width %v must be positive", w.halfWidth)
		}
	}

	if w.bridge != nil {
		if err := w.bridge.validate(hasPath); err != nil {
			return err
		}
	}

	for i, s := range w.shapes {
		if err := s.validate(w.width, w.height); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	for i, d := range w.doorways {
		if err := w.validateDoorway(d); err != nil {
			return fmt.Errorf("doorway %d: %w", i, err)
		}
	}
	return nil
}

func (w *World) validateDoorway(d core.Segment) error {
	maxX, maxY := float64(w.width-1), float64(w.height-1)
	for _, p := range [2]core.Vec{d.A, d.B} {
		if p.X < 0 || p.Y < 0 || p.X > maxX || p.Y > maxY {
			return geometryErr(CodeShapeOutOfBounds, "doorway endpoint %s outside world", p)
		}
	}
	return nil
}

// Rebuild validates the geometry and rebuilds the mask from scratch.
func (w *World) Rebuild() error {
	if err := w.validate(); err != nil {
		return err
	}
	if w.bridge != nil {
		w.bridgeSeg = w.bridge.segment(w.path, w.carveRadius(), w.width, w.height)
	}
	if w.mask == nil {
		w.mask = newMask(w.width, w.height)
	}
	w.rasterize(w.mask)
	w.dirty = false
	return nil
}

func (w *World) ensureMask() {
	if w.dirty {
		// Geometry was validated as it was added.
		if err := w.Rebuild(); err != nil {
			panic(fmt.Sprintf("terrain: rebuild of validated geometry failed: %v", err))
		}
	}
}

// AddShape validates and appends a footprint. The mask is rebuilt on the
// next query.
func (w *World) AddShape(s Shape) error {
	if err := s.validate(w.width, w.height); err != nil {
		return err
	}
	w.shapes = append(w.shapes, s)
	w.dirty = true
	return nil
}

// AddDoorway appends a doorway. The mask is rebuilt on the next query.
func (w *World) AddDoorway(d core.Segment) error {
	if err := w.validateDoorway(d); err != nil {
		return err
	}
	w.doorways = append(w.doorways, d)
	w.dirty = true
	return nil
}

// Mask returns the current collision mask, rebuilding it if stale.
// The mask is shared; it stays valid until the next geometry change.
func (w *World) Mask() *Mask {
	w.ensureMask()
	return w.mask
}

// IsBlocked reports whether tile (x, y) is impassable. Out of bounds is blocked.
func (w *World) IsBlocked(x, y int) bool {
	return w.BlocksTile(core.C(x, y))
}

// BlocksTile reports whether tile c is impassable.
func (w *World) BlocksTile(c core.Coord) bool {
	return w.Mask().Blocked(c)
}

// KindAt returns why tile c is open or blocked.
func (w *World) KindAt(c core.Coord) TileKind {
	return w.Mask().Kind(c)
}

// BlockedCount returns the number of blocked tiles.
func (w *World) BlockedCount() int {
	return w.Mask().Count()
}
