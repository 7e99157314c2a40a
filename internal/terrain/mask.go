package terrain

import (
	"strings"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// TileKind records why a tile is open or blocked. Renderers use it to pick
// glyphs; collision only cares about Blocks.
type TileKind uint8

const (
	TileOpen TileKind = iota
	TileBridge
	TileDoorway
	TileCanyon
	TileFootprint
	TileBorder
)

// Blocks reports whether the kind is impassable.
func (k TileKind) Blocks() bool {
	return k >= TileCanyon
}

// Glyph returns the ASCII symbol used by Mask.String.
func (k TileKind) Glyph() rune {
	switch k {
	case TileBridge:
		return '='
	case TileDoorway:
		return '+'
	case TileCanyon:
		return '~'
	case TileFootprint:
		return 'X'
	case TileBorder:
		return '#'
	default:
		return '.'
	}
}

// Mask is the derived per-tile walkability of a World.
// Tiles are stored in row-major order: index = y*W + x.
// Masks are produced by World and are read-only to callers.
type Mask struct {
	w, h  int
	kinds []TileKind
}

func newMask(w, h int) *Mask {
	return &Mask{w: w, h: h, kinds: make([]TileKind, w*h)}
}

func (m *Mask) index(c core.Coord) int {
	return c.Y*m.w + c.X
}

// Width returns the mask width in tiles.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in tiles.
func (m *Mask) Height() int { return m.h }

// InBounds returns true if the coordinate is within the mask.
func (m *Mask) InBounds(c core.Coord) bool {
	return c.InBounds(m.w, m.h)
}

// Kind returns the tile kind. Out-of-bounds tiles report TileBorder.
func (m *Mask) Kind(c core.Coord) TileKind {
	if !m.InBounds(c) {
		return TileBorder
	}
	return m.kinds[m.index(c)]
}

// Blocked reports whether the tile is impassable. Out of bounds is blocked.
func (m *Mask) Blocked(c core.Coord) bool {
	return m.Kind(c).Blocks()
}

func (m *Mask) set(c core.Coord, k TileKind) {
	if m.InBounds(c) {
		m.kinds[m.index(c)] = k
	}
}

func (m *Mask) clear() {
	for i := range m.kinds {
		m.kinds[i] = TileOpen
	}
}

// Count returns the number of blocked tiles.
func (m *Mask) Count() int {
	n := 0
	for _, k := range m.kinds {
		if k.Blocks() {
			n++
		}
	}
	return n
}

// IDs returns the ids (y*W + x) of all blocked tiles in ascending order.
func (m *Mask) IDs() []int {
	ids := make([]int, 0, m.Count())
	for i, k := range m.kinds {
		if k.Blocks() {
			ids = append(ids, i)
		}
	}
	return ids
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	kinds := make([]TileKind, len(m.kinds))
	copy(kinds, m.kinds)
	return &Mask{w: m.w, h: m.h, kinds: kinds}
}

// String renders the mask one row per line using TileKind glyphs.
func (m *Mask) String() string {
	var sb strings.Builder
	sb.Grow((m.w + 1) * m.h)
	for y := 0; y < m.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < m.w; x++ {
			sb.WriteRune(m.kinds[y*m.w+x].Glyph())
		}
	}
	return sb.String()
}
