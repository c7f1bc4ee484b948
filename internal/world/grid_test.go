package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testLayout() Layout {
	return Layout{Size: 10000, ChunksPerAxis: 16, CellSize: 50}
}

func TestLayout_CoordOf(t *testing.T) {
	l := testLayout()

	tests := []struct {
		name string
		x, z float32
		want ChunkCoord
		ok   bool
	}{
		{"world center", 0, 0, ChunkCoord{8, 8}, true},
		{"min corner", -5000, -5000, ChunkCoord{0, 0}, true},
		{"inside first chunk", -4400, -4400, ChunkCoord{0, 0}, true},
		{"across boundary", -4374.9, -4374.9, ChunkCoord{1, 1}, true},
		{"outside west", -5001, 0, ChunkCoord{}, false},
		{"outside far", 5000, 5000, ChunkCoord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CoordOf(tt.x, tt.z)
			if ok != tt.ok {
				t.Fatalf("ok=%v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayout_OriginRoundTrip(t *testing.T) {
	l := testLayout()
	for _, c := range []ChunkCoord{{0, 0}, {8, 8}, {15, 15}, {3, 12}} {
		origin := l.Origin(c)
		// A point just inside the chunk's min corner maps back to it.
		got, ok := l.CoordOf(origin.X()+0.1, origin.Y()+0.1)
		if !ok || got != c {
			t.Errorf("chunk %v: origin %v maps to %v (ok=%v)", c, origin, got, ok)
		}
	}
}

func TestLocalCollisionGrid_Query(t *testing.T) {
	origin := mgl32.Vec2{0, 0}
	wall := NewWallCollider(mgl32.Vec2{10, 10}, mgl32.Vec2{40, 10}, 20, 0.5)

	g := NewLocalCollisionGrid([]WallCollider{wall}, origin, 625, 50)

	walls, ok := g.WallsNear(20, 12)
	if !ok || len(walls) != 1 {
		t.Fatalf("expected 1 wall near the segment, got %d (ok=%v)", len(walls), ok)
	}

	// A far-away bucket is valid but empty.
	if got, ok := g.WallsNear(500, 500); !ok || len(got) != 0 {
		t.Errorf("expected empty bucket, got %d walls (ok=%v)", len(got), ok)
	}

	// Outside the chunk extent: not ok, callers query neighbor chunks.
	if _, ok := g.WallsNear(-5, 10); ok {
		t.Error("query outside chunk must not resolve")
	}
	if _, ok := g.WallsNear(10, 700); ok {
		t.Error("query beyond chunk must not resolve")
	}
}

func TestLocalCollisionGrid_WallSpansCells(t *testing.T) {
	origin := mgl32.Vec2{0, 0}
	// 120m wall crosses three 50m cells; it must be found from each.
	wall := NewWallCollider(mgl32.Vec2{5, 25}, mgl32.Vec2{125, 25}, 20, 0.5)
	g := NewLocalCollisionGrid([]WallCollider{wall}, origin, 625, 50)

	for _, x := range []float32{10, 60, 110} {
		if got, ok := g.WallsNear(x, 25); !ok || len(got) != 1 {
			t.Errorf("x=%f: expected wall in bucket, got %d (ok=%v)", x, len(got), ok)
		}
	}
}

func TestWorld_InsertAndNeighborhood(t *testing.T) {
	w := NewWorld(testLayout())
	cs := w.Layout().ChunkSize()

	// Build a chunk at (8,8) whose origin is the world center, with one
	// wall right at the chunk's west border.
	coord := ChunkCoord{8, 8}
	origin := w.Layout().Origin(coord)
	if origin.X() != 0 || origin.Y() != 0 {
		t.Fatalf("expected chunk (8,8) at world center, got %v", origin)
	}

	acc := NewChunkAccumulator(coord)
	acc.AddGroundQuad(origin, cs)
	fp := Footprint{
		Points: ccw([]mgl32.Vec2{{1, 1}, {20, 1}, {20, 20}, {1, 20}}),
		Height: 25,
		Color:  mgl32.Vec3{0.2, 0.2, 0.2},
	}
	acc.AppendFootprint(fp, 0.5)
	w.Insert(acc.Finish(), nil)

	if w.Len() != 1 {
		t.Fatalf("expected 1 resident chunk, got %d", w.Len())
	}

	// Query right at the chunk's west border: the 3x3 neighborhood
	// sweep must find the wall via the owning chunk's grid.
	walls := w.NeighborhoodWalls(0.5, 10)
	if len(walls) == 0 {
		t.Error("expected walls near the chunk border")
	}

	// Far away: nothing.
	if got := w.NeighborhoodWalls(3000, 3000); len(got) != 0 {
		t.Errorf("expected no walls far away, got %d", len(got))
	}
}

func TestWorld_InsertEmptyChunkDropped(t *testing.T) {
	w := NewWorld(testLayout())
	w.Insert(ChunkData{Coord: ChunkCoord{1, 1}}, nil)
	if w.Len() != 0 {
		t.Error("chunk without geometry should not become resident")
	}
}

func TestGridLookupMatchesPartition(t *testing.T) {
	// The chunk a point partitions into must be the chunk whose local
	// grid answers queries for that point, including at corners.
	l := testLayout()
	points := [][2]float32{
		{0, 0}, {624.9, 624.9}, {625, 625}, {-1, -1}, {312.5, 0},
	}
	for _, p := range points {
		coord, ok := l.CoordOf(p[0], p[1])
		if !ok {
			t.Fatalf("point %v unexpectedly outside world", p)
		}
		origin := l.Origin(coord)
		g := NewLocalCollisionGrid(nil, origin, l.ChunkSize(), l.CellSize)
		// The chunk a point partitions into must accept that point.
		if _, ok := g.WallsNear(p[0], p[1]); !ok {
			lx := p[0] - origin.X()
			lz := p[1] - origin.Y()
			t.Errorf("point %v local (%f,%f) rejected by its own chunk grid", p, lx, lz)
		}
	}
}
