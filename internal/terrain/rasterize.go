package terrain

import (
	"math"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// rasterize clears m and repopulates it from the world geometry.
// Layers are applied in order: canyon, footprints, border.
func (w *World) rasterize(m *Mask) {
	m.clear()
	w.carveCanyon(m)
	w.stampShapes(m)
	w.stampBorder(m)
}

// sampleCount returns how many centerline samples to take. The count is at
// least max(2, ceil(length*samplesPerTile))+1, and is raised when segments
// are uneven so the longest segment is still sampled densely.
func (w *World) sampleCount() int {
	spt := float64(w.opts.SamplesPerTile)
	steps := math.Max(2, math.Ceil(core.PathLength(w.path)*spt))
	perSegment := math.Ceil(core.MaxSegmentLength(w.path) * spt * float64(len(w.path)-1))
	return int(math.Max(steps, perSegment)) + 1
}

func (w *World) onBridge(p core.Vec) bool {
	if w.bridge == nil {
		return false
	}
	return w.bridgeSeg.Distance(p) <= w.opts.BridgeTolerance
}

// carveCanyon blocks every tile whose center lies within the carve radius of
// a centerline sample, unless the bridge covers it.
func (w *World) carveCanyon(m *Mask) {
	if len(w.path) < 2 {
		return
	}

	radius := w.carveRadius()
	n := w.sampleCount()
	for i := 0; i < n; i++ {
		s := core.PathPointAt(w.path, float64(i)/float64(n-1))

		x0 := core.Max(0, int(math.Floor(s.X-radius)))
		x1 := core.Min(w.width-1, int(math.Ceil(s.X+radius)))
		y0 := core.Max(0, int(math.Floor(s.Y-radius)))
		y1 := core.Min(w.height-1, int(math.Ceil(s.Y+radius)))

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c := core.C(x, y)
				center := c.Center()
				if center.Dist(s) > radius {
					continue
				}
				if w.onBridge(center) {
					if m.Kind(c) == TileOpen {
						m.set(c, TileBridge)
					}
					continue
				}
				m.set(c, TileCanyon)
			}
		}
	}
}

func (w *World) inDoorway(p core.Vec) bool {
	for _, d := range w.doorways {
		if d.Distance(p) <= w.opts.DoorwayTolerance {
			return true
		}
	}
	return false
}

// stampShapes blocks footprint tiles. Doorways exempt footprint tiles only;
// a doorway never opens canyon.
func (w *World) stampShapes(m *Mask) {
	for _, s := range w.shapes {
		for _, c := range RasterizeShape(s) {
			if !w.inDoorway(c.Center()) {
				m.set(c, TileFootprint)
				continue
			}
			if k := m.Kind(c); k == TileOpen || k == TileBridge {
				m.set(c, TileDoorway)
			}
		}
	}
}

func (w *World) stampBorder(m *Mask) {
	for x := 0; x < w.width; x++ {
		m.set(core.C(x, 0), TileBorder)
		m.set(core.C(x, w.height-1), TileBorder)
	}
	for y := 0; y < w.height; y++ {
		m.set(core.C(0, y), TileBorder)
		m.set(core.C(w.width-1, y), TileBorder)
	}
}
