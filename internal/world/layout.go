package world

import "github.com/go-gl/mathgl/mgl32"

// Layout describes the fixed chunk grid covering the world: a square
// of Size meters centered on the origin, split into ChunksPerAxis^2
// chunks, each carrying a collision grid of CellSize buckets.
type Layout struct {
	Size          float32
	ChunksPerAxis int
	CellSize      float32
}

// ChunkSize returns the edge length of one chunk.
func (l Layout) ChunkSize() float32 {
	return l.Size / float32(l.ChunksPerAxis)
}

// CoordOf maps a world-space point to its chunk coordinate. ok is
// false when the point falls outside the modeled world.
func (l Layout) CoordOf(x, z float32) (ChunkCoord, bool) {
	half := l.Size / 2
	cs := l.ChunkSize()
	cx := int32(floor32((x + half) / cs))
	cz := int32(floor32((z + half) / cs))
	if cx < 0 || cx >= int32(l.ChunksPerAxis) || cz < 0 || cz >= int32(l.ChunksPerAxis) {
		return ChunkCoord{}, false
	}
	return ChunkCoord{X: cx, Z: cz}, true
}

// Origin returns the world-space min corner of a chunk.
func (l Layout) Origin(c ChunkCoord) mgl32.Vec2 {
	half := l.Size / 2
	cs := l.ChunkSize()
	return mgl32.Vec2{float32(c.X)*cs - half, float32(c.Z)*cs - half}
}

func floor32(v float32) float32 {
	i := float32(int32(v))
	if v < 0 && i != v {
		i--
	}
	return i
}
