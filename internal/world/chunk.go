package world

import "github.com/go-gl/mathgl/mgl32"

// Geometry is an opaque handle to uploaded chunk geometry. The world
// does not prescribe the upload mechanism; the renderer owns it.
type Geometry interface {
	Release()
}

// Chunk is the resident, consumer-side form of a streamed chunk.
type Chunk struct {
	Geometry  Geometry
	Collision *LocalCollisionGrid
	Min, Max  mgl32.Vec2 // world-space footprint
}

// World holds all resident chunks, keyed by chunk coordinate. Chunks
// live for the process lifetime; there is no unloading.
type World struct {
	layout  Layout
	chunks  map[ChunkCoord]*Chunk
	scratch []WallCollider
}

// NewWorld creates an empty world over the given layout.
func NewWorld(layout Layout) *World {
	return &World{
		layout: layout,
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Layout returns the world's chunk layout.
func (w *World) Layout() Layout {
	return w.layout
}

// Insert makes a streamed chunk resident: the geometry handle comes
// from the renderer upload, the collision grid is built here. Chunks
// with no geometry are dropped. Data ownership transfers to the world.
func (w *World) Insert(data ChunkData, geom Geometry) {
	if len(data.Indices) == 0 {
		return
	}

	origin := w.layout.Origin(data.Coord)
	size := w.layout.ChunkSize()

	w.chunks[data.Coord] = &Chunk{
		Geometry:  geom,
		Collision: NewLocalCollisionGrid(data.Walls, origin, size, w.layout.CellSize),
		Min:       origin,
		Max:       origin.Add(mgl32.Vec2{size, size}),
	}
}

// Chunk returns the resident chunk at the given coordinate, if any.
func (w *World) Chunk(c ChunkCoord) (*Chunk, bool) {
	ch, ok := w.chunks[c]
	return ch, ok
}

// Len returns the number of resident chunks.
func (w *World) Len() int {
	return len(w.chunks)
}

// Each calls fn for every resident chunk.
func (w *World) Each(fn func(ChunkCoord, *Chunk)) {
	for coord, ch := range w.chunks {
		fn(coord, ch)
	}
}

// NeighborhoodWalls sweeps the 3x3 chunk block around a world-space
// point and collects every bucket that resolves for it, so border
// queries never silently miss a neighboring chunk's colliders. The
// returned slice is reused across calls; do not retain it.
func (w *World) NeighborhoodWalls(x, z float64) []WallCollider {
	w.scratch = w.scratch[:0]

	fx, fz := float32(x), float32(z)
	half := w.layout.Size / 2
	cs := w.layout.ChunkSize()
	cx := int32(floor32((fx + half) / cs))
	cz := int32(floor32((fz + half) / cs))

	for ox := int32(-1); ox <= 1; ox++ {
		for oz := int32(-1); oz <= 1; oz++ {
			ch, ok := w.chunks[ChunkCoord{X: cx + ox, Z: cz + oz}]
			if !ok {
				continue
			}
			if walls, ok := ch.Collision.WallsNear(fx, fz); ok {
				w.scratch = append(w.scratch, walls...)
			}
		}
	}
	return w.scratch
}
