package world

import "github.com/go-gl/mathgl/mgl32"

// Degenerate edges shorter than this are skipped entirely.
const minEdgeLength = 0.01

var up = mgl32.Vec3{0, 1, 0}

// ChunkAccumulator collects vertices, indices and colliders for a
// single chunk while the loader meshes its buildings. Each chunk
// accumulates in isolation, which is what makes chunks independently
// streamable.
type ChunkAccumulator struct {
	data ChunkData
}

// NewChunkAccumulator starts an empty accumulator for a chunk.
func NewChunkAccumulator(coord ChunkCoord) *ChunkAccumulator {
	return &ChunkAccumulator{data: ChunkData{Coord: coord}}
}

// Finish returns the accumulated chunk data. The accumulator must not
// be used afterwards; ownership of the slices moves to the caller.
func (a *ChunkAccumulator) Finish() ChunkData {
	return a.data
}

// AddGroundQuad lays a dark base plate just below y=0 covering the
// chunk's footprint, so gaps between buildings aren't holes into the void.
func (a *ChunkAccumulator) AddGroundQuad(origin mgl32.Vec2, size float32) {
	color := mgl32.Vec3{0.05, 0.05, 0.05}
	cx, cz := origin.X(), origin.Y()

	base := uint32(len(a.data.Vertices))
	a.data.Vertices = append(a.data.Vertices,
		Vertex{Position: mgl32.Vec3{cx, -0.1, cz}, Normal: up, Color: color},
		Vertex{Position: mgl32.Vec3{cx + size, -0.1, cz}, Normal: up, Color: color},
		Vertex{Position: mgl32.Vec3{cx + size, -0.1, cz + size}, Normal: up, Color: color},
		Vertex{Position: mgl32.Vec3{cx, -0.1, cz + size}, Normal: up, Color: color},
	)
	a.data.Indices = append(a.data.Indices, base, base+1, base+2, base, base+2, base+3)
}

// AppendFootprint meshes one building into the chunk: an ear-clipped
// roof at the footprint height and one vertical quad plus one collider
// per edge. A failed triangulation only costs the roof; walls are
// still emitted.
func (a *ChunkAccumulator) AppendFootprint(fp Footprint, wallThickness float32) {
	a.addRoof(fp)
	for i := range fp.Points {
		p1 := fp.Points[i]
		p2 := fp.Points[(i+1)%len(fp.Points)]
		if isDegenerateEdge(p1, p2) {
			continue
		}
		a.addWall(p1, p2, fp.Height, fp.Color)
		a.data.Walls = append(a.data.Walls, NewWallCollider(p1, p2, fp.Height, wallThickness))
	}
}

func (a *ChunkAccumulator) addRoof(fp Footprint) {
	tris, ok := Triangulate(fp.Points)
	if !ok {
		return
	}
	base := uint32(len(a.data.Vertices))
	for _, p := range fp.Points {
		a.data.Vertices = append(a.data.Vertices, Vertex{
			Position: mgl32.Vec3{p.X(), fp.Height, p.Y()},
			Normal:   up,
			Color:    fp.Color,
		})
	}
	for _, idx := range tris {
		a.data.Indices = append(a.data.Indices, base+idx)
	}
}

// addWall emits a vertical quad from the ground to height along the
// edge p1->p2, as two triangles with the outward horizontal normal.
func (a *ChunkAccumulator) addWall(p1, p2 mgl32.Vec2, height float32, color mgl32.Vec3) {
	edge := p2.Sub(p1)
	normal := mgl32.Vec3{edge.Y(), 0, -edge.X()}.Normalize()

	v1 := Vertex{Position: mgl32.Vec3{p1.X(), 0, p1.Y()}, Normal: normal, Color: color}
	v2 := Vertex{Position: mgl32.Vec3{p2.X(), 0, p2.Y()}, Normal: normal, Color: color}
	v3 := Vertex{Position: mgl32.Vec3{p2.X(), height, p2.Y()}, Normal: normal, Color: color}
	v4 := Vertex{Position: mgl32.Vec3{p1.X(), height, p1.Y()}, Normal: normal, Color: color}

	base := uint32(len(a.data.Vertices))
	a.data.Vertices = append(a.data.Vertices, v1, v2, v3, v1, v3, v4)
	a.data.Indices = append(a.data.Indices,
		base, base+1, base+2, base+3, base+4, base+5)
}

// NewWallCollider builds the collider for one wall edge, its AABB
// padded by the wall thickness on every side.
func NewWallCollider(p1, p2 mgl32.Vec2, height, thickness float32) WallCollider {
	return WallCollider{
		Start:  p1,
		End:    p2,
		Height: height,
		MinX:   min(p1.X(), p2.X()) - thickness,
		MaxX:   max(p1.X(), p2.X()) + thickness,
		MinZ:   min(p1.Y(), p2.Y()) - thickness,
		MaxZ:   max(p1.Y(), p2.Y()) + thickness,
	}
}

func isDegenerateEdge(p1, p2 mgl32.Vec2) bool {
	return abs32(p1.X()-p2.X()) < minEdgeLength && abs32(p1.Y()-p2.Y()) < minEdgeLength
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
