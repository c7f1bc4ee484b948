package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LocalCollisionGrid is a dense per-chunk bucket grid of wall
// colliders. A wall is inserted into every bucket its padded AABB
// overlaps, trading memory for O(1) queries with no boundary misses.
// Immutable after construction, so the physics step reads it without
// synchronization.
type LocalCollisionGrid struct {
	cells    [][]WallCollider
	cellSize float32
	dim      int
	offset   mgl32.Vec2 // chunk's world-space min corner
}

// NewLocalCollisionGrid buckets a chunk's walls. offset is the chunk's
// world-space min corner; chunkSize and cellSize come from the layout.
func NewLocalCollisionGrid(walls []WallCollider, offset mgl32.Vec2, chunkSize, cellSize float32) *LocalCollisionGrid {
	dim := int(math.Ceil(float64(chunkSize / cellSize)))
	if dim < 1 {
		dim = 1
	}
	g := &LocalCollisionGrid{
		cells:    make([][]WallCollider, dim*dim),
		cellSize: cellSize,
		dim:      dim,
		offset:   offset,
	}

	for _, wall := range walls {
		minGX := int(floor32((wall.MinX - offset.X()) / cellSize))
		maxGX := int(floor32((wall.MaxX - offset.X()) / cellSize))
		minGZ := int(floor32((wall.MinZ - offset.Y()) / cellSize))
		maxGZ := int(floor32((wall.MaxZ - offset.Y()) / cellSize))

		for gx := minGX; gx <= maxGX; gx++ {
			for gz := minGZ; gz <= maxGZ; gz++ {
				if gx < 0 || gx >= dim || gz < 0 || gz >= dim {
					continue
				}
				idx := gz*dim + gx
				g.cells[idx] = append(g.cells[idx], wall)
			}
		}
	}
	return g
}

// WallsNear returns the bucket covering the given world-space point.
// ok is false when the point lies outside this chunk's extent; callers
// needing walls across chunk borders must also query the neighboring
// chunks.
func (g *LocalCollisionGrid) WallsNear(x, z float32) ([]WallCollider, bool) {
	lx := x - g.offset.X()
	lz := z - g.offset.Y()
	if lx < 0 || lz < 0 {
		return nil, false
	}

	gx := int(floor32(lx / g.cellSize))
	gz := int(floor32(lz / g.cellSize))
	if gx >= g.dim || gz >= g.dim {
		return nil, false
	}
	return g.cells[gz*g.dim+gx], true
}
