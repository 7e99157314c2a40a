package explore

import (
	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/terrain"
)

// Perlin parameters for the canyon floor texture.
const (
	shadeAlpha   = 2.0  // Smoothness
	shadeBeta    = 2.0  // Frequency
	shadeOctaves = 3    // Octaves
	shadeScale   = 0.17 // Tile to noise-space factor
)

// Shader picks glyphs and colors per tile. Each session owns one, seeded
// independently, so two sessions never share noise state.
type Shader struct {
	noise *perlin.Perlin
}

// NewShader creates a shader seeded with seed.
func NewShader(seed int64) *Shader {
	return &Shader{noise: perlin.NewPerlin(shadeAlpha, shadeBeta, shadeOctaves, seed)}
}

// Value returns the texture value at c in [0, 1].
func (s *Shader) Value(c core.Coord) float64 {
	n := s.noise.Noise2D(float64(c.X)*shadeScale, float64(c.Y)*shadeScale)
	return core.ClampF((n+1)/2, 0, 1)
}

// Cell returns the screen cell for a tile of kind k at c.
func (s *Shader) Cell(k terrain.TileKind, c core.Coord, explored bool) core.Cell {
	switch k {
	case terrain.TileCanyon:
		v := s.Value(c)
		switch {
		case v > 0.62:
			return core.Cell{Rune: '≈', Color: core.ColorRust}
		case v > 0.45:
			return core.Cell{Rune: '~', Color: core.ColorRust}
		default:
			return core.Cell{Rune: '~', Color: core.ColorOrange}
		}
	case terrain.TileBridge:
		return core.Cell{Rune: '=', Color: core.ColorYellow}
	case terrain.TileDoorway:
		return core.Cell{Rune: '+', Color: core.ColorCyan}
	case terrain.TileFootprint:
		return core.Cell{Rune: '▓', Color: core.ColorGray}
	case terrain.TileBorder:
		return core.Cell{Rune: '#', Color: core.ColorWhite}
	default:
		if !explored {
			return core.Cell{Rune: '·', Color: core.ColorDim}
		}
		if s.Value(c) > 0.58 {
			return core.Cell{Rune: ',', Color: core.ColorSand}
		}
		return core.Cell{Rune: '.', Color: core.ColorSand}
	}
}
