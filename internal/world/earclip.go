package world

import "github.com/go-gl/mathgl/mgl32"

// Triangulate performs ear-clipping triangulation of a simple polygon
// given in counter-clockwise order. Returns indices into points, three
// per triangle, or false when the polygon is degenerate or
// self-intersecting and no ear can be clipped.
func Triangulate(points []mgl32.Vec2) ([]uint32, bool) {
	n := len(points)
	if n < 3 {
		return nil, false
	}

	// Remaining vertex indices, clipped down as ears are removed.
	remaining := make([]uint32, n)
	for i := range remaining {
		remaining[i] = uint32(i)
	}

	indices := make([]uint32, 0, (n-2)*3)

	for len(remaining) > 3 {
		clipped := false
		for i := 0; i < len(remaining); i++ {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			curr := remaining[i]
			next := remaining[(i+1)%len(remaining)]

			if !isEar(points, remaining, prev, curr, next) {
				continue
			}

			indices = append(indices, prev, curr, next)
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// No ear found: self-intersecting or collinear mess.
			return nil, false
		}
	}

	indices = append(indices, remaining[0], remaining[1], remaining[2])
	return indices, true
}

// isEar reports whether curr forms a convex corner containing no other
// remaining vertex.
func isEar(points []mgl32.Vec2, remaining []uint32, prev, curr, next uint32) bool {
	a, b, c := points[prev], points[curr], points[next]

	// Reflex or collinear corners cannot be ears.
	if cross2(b.Sub(a), c.Sub(b)) <= 0 {
		return false
	}

	for _, idx := range remaining {
		if idx == prev || idx == curr || idx == next {
			continue
		}
		if pointInTriangle(points[idx], a, b, c) {
			return false
		}
	}
	return true
}

func cross2(a, b mgl32.Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// pointInTriangle tests containment including edges, so vertices that
// merely touch an ear's boundary still block the clip.
func pointInTriangle(p, a, b, c mgl32.Vec2) bool {
	d1 := cross2(b.Sub(a), p.Sub(a))
	d2 := cross2(c.Sub(b), p.Sub(b))
	d3 := cross2(a.Sub(c), p.Sub(c))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
