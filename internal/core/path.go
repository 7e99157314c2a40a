package core

import "math"

// Segment is a line segment between two points.
type Segment struct {
	A, B Vec
}

// Seg is a convenience constructor for Segment.
func Seg(a, b Vec) Segment {
	return Segment{A: a, B: b}
}

// Distance returns the shortest distance from p to the segment.
func (s Segment) Distance(p Vec) float64 {
	return PointSegmentDistance(p, s.A, s.B)
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Dist(s.B)
}

// PointSegmentDistance returns the shortest distance from p to segment ab.
// A degenerate segment (a == b) is treated as a point.
func PointSegmentDistance(p, a, b Vec) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ClampF(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

// Polygon is an ordered vertex list, closed implicitly from the last
// vertex back to the first.
type Polygon []Vec

// Contains reports whether p lies inside the polygon.
func (poly Polygon) Contains(p Vec) bool {
	return PointInPolygon(p, poly)
}

// Bounds returns the polygon's axis-aligned bounding box as min and max corners.
func (poly Polygon) Bounds() (lo, hi Vec) {
	if len(poly) == 0 {
		return Vec{}, Vec{}
	}
	lo, hi = poly[0], poly[0]
	for _, v := range poly[1:] {
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
	}
	return lo, hi
}

// Centroid returns the vertex average.
func (poly Polygon) Centroid() Vec {
	var c Vec
	if len(poly) == 0 {
		return c
	}
	for _, v := range poly {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(poly)))
}

// Scaled returns a copy with every vertex multiplied by s.
func (poly Polygon) Scaled(s float64) Polygon {
	out := make(Polygon, len(poly))
	for i, v := range poly {
		out[i] = v.Scale(s)
	}
	return out
}

// PointInPolygon is an even-odd ray-casting test. The closing edge from the
// last vertex to the first is implicit. Fewer than 3 vertices is never inside.
func PointInPolygon(p Vec, poly []Vec) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			crossX := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PathLength returns the total polyline length.
func PathLength(path []Vec) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].Dist(path[i])
	}
	return total
}

// MaxSegmentLength returns the length of the longest polyline segment.
func MaxSegmentLength(path []Vec) float64 {
	longest := 0.0
	for i := 1; i < len(path); i++ {
		longest = math.Max(longest, path[i-1].Dist(path[i]))
	}
	return longest
}

// segmentAt maps t in [0,1] to a segment index and the local parameter within it.
// Each segment covers an equal share of t. At t=1 the index is clamped to the
// last segment so the local parameter becomes 1 instead of overrunning.
func segmentAt(path []Vec, t float64) (int, float64) {
	segs := len(path) - 1
	f := ClampF(t, 0, 1) * float64(segs)
	i := int(f)
	if i >= segs {
		i = segs - 1
	}
	return i, f - float64(i)
}

// PathPointAt returns the point at parameter t along the polyline.
func PathPointAt(path []Vec, t float64) Vec {
	switch len(path) {
	case 0:
		return Vec{}
	case 1:
		return path[0]
	}
	i, local := segmentAt(path, t)
	return path[i].Lerp(path[i+1], local)
}

// tangentAt returns the direction of segment i, borrowing from the nearest
// non-degenerate neighbour when segment i has zero length.
func tangentAt(path []Vec, i int) Vec {
	segs := len(path) - 1
	for off := 0; off < segs; off++ {
		for _, k := range [2]int{i + off, i - off} {
			if k < 0 || k >= segs {
				continue
			}
			if d := path[k+1].Sub(path[k]); d.Len() > 0 {
				return d
			}
		}
	}
	return Vec{}
}

// RimAt returns the two channel walls at parameter t: the points offset by
// ±halfWidth along the unit normal of the local tangent. Left is on the
// left-hand side when travelling along the path in y-down coordinates.
func RimAt(path []Vec, halfWidth, t float64) (left, right Vec) {
	switch len(path) {
	case 0:
		return Vec{}, Vec{}
	case 1:
		return path[0], path[0]
	}

	i, local := segmentAt(path, t)
	center := path[i].Lerp(path[i+1], local)

	tangent := tangentAt(path, i)
	if tangent.Len() == 0 {
		return center, center
	}
	normal := Vec{X: tangent.Y, Y: -tangent.X}.Normalized()

	return center.Add(normal.Scale(halfWidth)), center.Sub(normal.Scale(halfWidth))
}
