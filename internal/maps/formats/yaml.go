// Package formats provides pluggable map file format parsers.
// Parsers produce plain values; the maps package turns them into geometry.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a map file omits the field.
const (
	DefaultCellSize = 32
	DefaultScale    = 1.0
	DefaultMode     = "tile"
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Mode     string            `yaml:"mode,omitempty"`
	Size     YAMLSize          `yaml:"size"`
	Cell     float64           `yaml:"cell,omitempty"`
	Spawn    YAMLPoint         `yaml:"spawn"`
	Goal     *YAMLPoint        `yaml:"goal,omitempty"`
	Canyon   *YAMLCanyon       `yaml:"canyon,omitempty"`
	Shapes   []YAMLShape       `yaml:"shapes,omitempty"`
	Doorways []YAMLSegment     `yaml:"doorways,omitempty"`
	Polygons [][]YAMLPoint     `yaml:"polygons,omitempty"`
	Scale    float64           `yaml:"scale,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents world dimensions in tiles.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a point in tile-space (tile maps) or source pixels (vector maps).
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLSegment is a doorway segment.
type YAMLSegment struct {
	A YAMLPoint `yaml:"a"`
	B YAMLPoint `yaml:"b"`
}

// YAMLCanyon describes the carved channel.
type YAMLCanyon struct {
	HalfWidth float64     `yaml:"half_width"`
	Path      []YAMLPoint `yaml:"path"`
	Bridge    *YAMLBridge `yaml:"bridge,omitempty"`
}

// YAMLBridge places a bridge along the canyon.
type YAMLBridge struct {
	T    float64 `yaml:"t"`
	Axis string  `yaml:"axis,omitempty"`
	Span float64 `yaml:"span,omitempty"`
}

// YAMLShape is a footprint. Which fields apply depends on Kind:
// rect uses x,y,w,h; circle uses cx,cy,r; lshape uses x,y,w1,h1,w2,h2.
type YAMLShape struct {
	Kind string  `yaml:"kind"`
	X    int     `yaml:"x,omitempty"`
	Y    int     `yaml:"y,omitempty"`
	W    int     `yaml:"w,omitempty"`
	H    int     `yaml:"h,omitempty"`
	W1   int     `yaml:"w1,omitempty"`
	H1   int     `yaml:"h1,omitempty"`
	W2   int     `yaml:"w2,omitempty"`
	H2   int     `yaml:"h2,omitempty"`
	CX   float64 `yaml:"cx,omitempty"`
	CY   float64 `yaml:"cy,omitempty"`
	R    float64 `yaml:"r,omitempty"`
}

// ParseYAML parses a YAML map file and fills defaults.
func ParseYAML(data []byte) (YAMLMap, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return YAMLMap{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if ym.ID == "" {
		return YAMLMap{}, fmt.Errorf("map has no id")
	}
	if ym.Name == "" {
		ym.Name = ym.ID
	}
	if ym.Mode == "" {
		ym.Mode = DefaultMode
	}
	if ym.Mode != "tile" && ym.Mode != "vector" {
		return YAMLMap{}, fmt.Errorf("unknown mode %q", ym.Mode)
	}
	if ym.Cell <= 0 {
		ym.Cell = DefaultCellSize
	}
	if ym.Scale <= 0 {
		ym.Scale = DefaultScale
	}

	return ym, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
