package maps

import (
	"fmt"
	"math"

	"github.com/vovakirdan/canyonwalk/internal/collision"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/maps/formats"
	"github.com/vovakirdan/canyonwalk/internal/terrain"
)

// Mode says how a map was authored.
type Mode string

const (
	// ModeTile maps are authored as tile-space geometry and collide on the mask.
	ModeTile Mode = "tile"
	// ModeVector maps are authored as pixel polygons and collide on the gate.
	// They still get a mask for the world border and any footprints.
	ModeVector Mode = "vector"
)

// Map is a complete, validated map definition.
type Map struct {
	ID       string
	Name     string
	Mode     Mode
	Width    int     // Tiles
	Height   int     // Tiles
	CellSize float64 // World pixels per tile
	Spawn    core.Coord
	Goal     *core.Coord
	Terrain  terrain.Spec
	Polygons []core.Polygon // World pixels, already scaled
	Metadata map[string]string
	FilePath string
}

// fromYAML converts a parsed file. Vector maps are authored in source pixels:
// polygons, spawn and goal are scaled to world pixels, and spawn and goal are
// then snapped to the tile containing them.
func fromYAML(ym formats.YAMLMap) (Map, error) {
	m := Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Mode:     Mode(ym.Mode),
		Width:    ym.Size.W,
		Height:   ym.Size.H,
		CellSize: ym.Cell,
		Metadata: ym.Metadata,
	}

	spawn, err := m.pointToTile(ym.Spawn, ym.Scale)
	if err != nil {
		return Map{}, fmt.Errorf("spawn: %w", err)
	}
	m.Spawn = spawn
	if ym.Goal != nil {
		g, err := m.pointToTile(*ym.Goal, ym.Scale)
		if err != nil {
			return Map{}, fmt.Errorf("goal: %w", err)
		}
		m.Goal = &g
	}

	spec := terrain.Spec{Width: m.Width, Height: m.Height}
	if c := ym.Canyon; c != nil {
		spec.HalfWidth = c.HalfWidth
		for _, p := range c.Path {
			spec.Path = append(spec.Path, core.V(p.X, p.Y))
		}
		if c.Bridge != nil {
			axis, err := terrain.ParseBridgeAxis(c.Bridge.Axis)
			if err != nil {
				return Map{}, err
			}
			spec.Bridge = &terrain.Bridge{T: c.Bridge.T, Axis: axis, Span: c.Bridge.Span}
		}
	}

	for i, ys := range ym.Shapes {
		s, err := shapeFromYAML(ys)
		if err != nil {
			return Map{}, fmt.Errorf("shape %d: %w", i, err)
		}
		spec.Shapes = append(spec.Shapes, s)
	}
	for _, d := range ym.Doorways {
		spec.Doorways = append(spec.Doorways, core.Seg(core.V(d.A.X, d.A.Y), core.V(d.B.X, d.B.Y)))
	}
	m.Terrain = spec

	for _, yp := range ym.Polygons {
		poly := make(core.Polygon, len(yp))
		for i, p := range yp {
			poly[i] = core.V(p.X, p.Y)
		}
		m.Polygons = append(m.Polygons, poly.Scaled(ym.Scale))
	}

	return m, nil
}

// pointToTile resolves an authored point. Tile maps name tiles directly, so
// their coordinates must be whole numbers.
func (m Map) pointToTile(p formats.YAMLPoint, scale float64) (core.Coord, error) {
	if m.Mode == ModeVector {
		return core.TileOf(core.V(p.X, p.Y).Scale(scale), m.CellSize), nil
	}
	if p.X != math.Trunc(p.X) || p.Y != math.Trunc(p.Y) {
		return core.Coord{}, fmt.Errorf("tile coordinates must be integers, got (%g,%g)", p.X, p.Y)
	}
	return core.C(int(p.X), int(p.Y)), nil
}

func shapeFromYAML(ys formats.YAMLShape) (terrain.Shape, error) {
	kind, err := terrain.ParseShapeKind(ys.Kind)
	if err != nil {
		return terrain.Shape{}, err
	}
	switch kind {
	case terrain.ShapeRect:
		return terrain.Rect(ys.X, ys.Y, ys.W, ys.H), nil
	case terrain.ShapeCircle:
		return terrain.Circle(ys.CX, ys.CY, ys.R), nil
	case terrain.ShapeLShape:
		return terrain.LShape(ys.X, ys.Y, ys.W1, ys.H1, ys.W2, ys.H2), nil
	default:
		panic(fmt.Sprintf("maps: unhandled shape kind %s", kind))
	}
}

// PixelSize returns the world extent in pixels.
func (m Map) PixelSize() (float64, float64) {
	return float64(m.Width) * m.CellSize, float64(m.Height) * m.CellSize
}

// SpawnTile returns the tile the actor starts on.
func (m Map) SpawnTile() core.Coord {
	return m.Spawn
}

// BuildWorld builds the terrain world for this map.
func (m Map) BuildWorld(opts terrain.Options) (*terrain.World, error) {
	return terrain.NewWorld(m.Terrain, opts)
}

// Gate returns the polygon collision gate. Tile maps get an empty gate.
func (m Map) Gate() *collision.Gate {
	return collision.NewGate(m.Polygons)
}

// Blocked reports whether tile c is impassable on either collision system.
func (m Map) Blocked(w *terrain.World, g *collision.Gate, c core.Coord) bool {
	return w.BlocksTile(c) || g.IsBlocked(c.PixelCenter(m.CellSize))
}

// Validate builds the world with default options and checks that spawn and
// goal are on walkable tiles.
func (m Map) Validate() error {
	w, err := m.BuildWorld(terrain.Options{})
	if err != nil {
		return err
	}
	g := m.Gate()

	if m.Blocked(w, g, m.Spawn) {
		return fmt.Errorf("spawn %s is blocked", m.Spawn)
	}
	if m.Goal != nil && m.Blocked(w, g, *m.Goal) {
		return fmt.Errorf("goal %s is blocked", *m.Goal)
	}
	return nil
}
