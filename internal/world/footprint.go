package world

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Footprint is the resolved, winding-normalized polygon for one
// building way, plus its extrusion height and facade color.
type Footprint struct {
	Points []mgl32.Vec2
	Height float32
	Color  mgl32.Vec3
}

// NodeLookup resolves a node id to its projected position.
type NodeLookup interface {
	Lookup(id int64) (x, z float32, ok bool)
}

// BuildFootprint resolves a way's node references into a footprint.
// Returns false if any referenced node is missing or fewer than three
// points resolve; such ways are skipped, never fatal.
func BuildFootprint(wayID int64, refs []int64, tags map[string]string, nodes NodeLookup, metersPerLevel float32) (Footprint, bool) {
	points := make([]mgl32.Vec2, 0, len(refs))
	for _, id := range refs {
		x, z, ok := nodes.Lookup(id)
		if !ok {
			return Footprint{}, false
		}
		points = append(points, mgl32.Vec2{x, z})
	}
	// Closed ways repeat their first node; the polygon is implicit.
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	if len(points) < 3 {
		return Footprint{}, false
	}

	NormalizeWinding(points)

	return Footprint{
		Points: points,
		Height: resolveHeight(wayID, tags, metersPerLevel),
		Color:  colorFor(wayID),
	}, true
}

// Centroid returns the mean of the footprint's points.
func (f Footprint) Centroid() mgl32.Vec2 {
	var cx, cz float32
	for _, p := range f.Points {
		cx += p.X()
		cz += p.Y()
	}
	n := float32(len(f.Points))
	return mgl32.Vec2{cx / n, cz / n}
}

// SignedArea returns the shoelace sum over the polygon. Positive
// means clockwise in our x-east/z-south plane.
func SignedArea(points []mgl32.Vec2) float32 {
	var sum float32
	for i := range points {
		p1 := points[i]
		p2 := points[(i+1)%len(points)]
		sum += (p2.X() - p1.X()) * (p2.Y() + p1.Y())
	}
	return sum
}

// NormalizeWinding reverses the points in place if they wind
// clockwise, so every footprint ends up counter-clockwise and wall
// extrusion normals point outward. Idempotent.
func NormalizeWinding(points []mgl32.Vec2) {
	if SignedArea(points) > 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
}

// resolveHeight picks the extrusion height for a way, in priority
// order: explicit height tag, building:levels, deterministic fallback.
func resolveHeight(wayID int64, tags map[string]string, metersPerLevel float32) float32 {
	if raw, ok := tags["height"]; ok {
		if h, ok := parseMeters(raw); ok && h > 0 {
			return h
		}
	}
	if raw, ok := tags["building:levels"]; ok {
		if levels, err := strconv.ParseFloat(strings.TrimSpace(raw), 32); err == nil && levels > 0 {
			return float32(levels) * metersPerLevel
		}
	}
	return fallbackHeight(wayID)
}

// parseMeters parses the numeric prefix of a height tag, tolerating
// unit suffixes like "30 m" or "30m".
func parseMeters(s string) (float32, bool) {
	s = strings.TrimFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-'
	})
	h, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(h), true
}

// fallbackHeight derives a stable height in [8, 40) meters from the
// way id, so untagged buildings vary without true randomness.
func fallbackHeight(wayID int64) float32 {
	h := uint64(wayID) * 0x9e3779b97f4a7c15
	h ^= h >> 29
	return 8.0 + float32(h%1000)/1000.0*32.0
}

// colorFor maps a way id into a narrow grey band. Cosmetic, but
// deterministic so renders are reproducible.
func colorFor(wayID int64) mgl32.Vec3 {
	seed := float32(wayID%100) / 100.0
	grey := 0.15 + seed*0.20
	return mgl32.Vec3{grey, grey, grey}
}
