// Package world holds the streamed world model: chunk geometry, wall
// colliders, and the collision grid the physics step queries.
package world

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one mesh vertex as uploaded to the GPU.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
}

// ChunkCoord addresses one cell of the world chunk grid.
type ChunkCoord struct {
	X, Z int32
}

// WallCollider is one building wall for collision purposes: a 2D
// segment with a height and an AABB padded by the wall thickness.
// The rendered wall is an infinitely thin quad; the padding is what
// gives it a physical thickness.
type WallCollider struct {
	Start, End mgl32.Vec2
	Height     float32

	MinX, MaxX float32
	MinZ, MaxZ float32
}

// ChunkData is the unit of streaming: all geometry and colliders for
// one chunk, produced wholly by the loader and handed to the consumer
// exactly once. Never mutated after hand-off.
type ChunkData struct {
	Vertices []Vertex
	Indices  []uint32
	Walls    []WallCollider
	Coord    ChunkCoord
}

// LoaderMessage is the producer-to-consumer streaming protocol.
// Status and Progress only drive the loading display; BatchLoaded
// transfers chunk ownership; Done is terminal.
type LoaderMessage interface {
	isLoaderMessage()
}

// StatusMessage carries a human-readable loading phase description.
type StatusMessage struct {
	Text string
}

// ProgressMessage carries an approximate completion fraction in [0,1].
type ProgressMessage struct {
	Fraction float32
}

// BatchMessage transfers ownership of finished chunks to the consumer.
type BatchMessage struct {
	Chunks []ChunkData
}

// DoneMessage is the terminal message; nothing follows it.
type DoneMessage struct{}

func (StatusMessage) isLoaderMessage()   {}
func (ProgressMessage) isLoaderMessage() {}
func (BatchMessage) isLoaderMessage()    {}
func (DoneMessage) isLoaderMessage()     {}
