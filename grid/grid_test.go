package grid

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestChunkPosFromPixel(t *testing.T) {
	// Tile size 16, chunk size 4: a chunk spans 64 world pixels.
	for _, c := range []struct {
		pixel mgl64.Vec2
		want  ChunkPos
	}{
		{mgl64.Vec2{0, 0}, ChunkPos{0, 0}},
		{mgl64.Vec2{63.9, 63.9}, ChunkPos{0, 0}},
		{mgl64.Vec2{64, 0}, ChunkPos{1, 0}},
		{mgl64.Vec2{-0.1, -0.1}, ChunkPos{-1, -1}},
		{mgl64.Vec2{-64, -1}, ChunkPos{-1, -1}},
		{mgl64.Vec2{-64.1, 128}, ChunkPos{-2, 2}},
	} {
		if got := ChunkPosFromPixel(c.pixel, 16, 4); got != c.want {
			t.Errorf("ChunkPosFromPixel(%v) = %v, want %v", c.pixel, got, c.want)
		}
	}
}

func TestTilePosFromPixel(t *testing.T) {
	for _, c := range []struct {
		pixel mgl64.Vec2
		want  TilePos
	}{
		{mgl64.Vec2{0, 0}, TilePos{0, 0}},
		{mgl64.Vec2{15.9, 16}, TilePos{0, 1}},
		{mgl64.Vec2{-0.1, -16}, TilePos{-1, -1}},
		{mgl64.Vec2{-16.1, 31.9}, TilePos{-2, 1}},
	} {
		if got := TilePosFromPixel(c.pixel, 16); got != c.want {
			t.Errorf("TilePosFromPixel(%v) = %v, want %v", c.pixel, got, c.want)
		}
	}
}

func TestChunkPosFromTile(t *testing.T) {
	for _, c := range []struct {
		tile TilePos
		want ChunkPos
	}{
		{TilePos{0, 0}, ChunkPos{0, 0}},
		{TilePos{3, 3}, ChunkPos{0, 0}},
		{TilePos{4, -5}, ChunkPos{1, -2}},
		{TilePos{-1, -4}, ChunkPos{-1, -1}},
	} {
		if got := ChunkPosFromTile(c.tile, 4); got != c.want {
			t.Errorf("ChunkPosFromTile(%v) = %v, want %v", c.tile, got, c.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	for _, c := range []struct {
		a, b, want int
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{8, 2, 4},
		{-8, 2, -4},
	} {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Errorf("FloorDiv(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestManhattanDist(t *testing.T) {
	for _, c := range []struct {
		p, q ChunkPos
		want int32
	}{
		{ChunkPos{0, 0}, ChunkPos{0, 0}, 0},
		{ChunkPos{2, 3}, ChunkPos{0, 0}, 5},
		{ChunkPos{-2, 3}, ChunkPos{1, -1}, 7},
	} {
		if got := c.p.ManhattanDist(c.q); got != c.want {
			t.Errorf("%v.ManhattanDist(%v) = %v, want %v", c.p, c.q, got, c.want)
		}
		if got := c.q.ManhattanDist(c.p); got != c.want {
			t.Errorf("%v.ManhattanDist(%v) = %v, want %v", c.q, c.p, got, c.want)
		}
	}
}

func TestOriginTile(t *testing.T) {
	if got, want := (ChunkPos{-1, 2}).OriginTile(8), (TilePos{-8, 16}); got != want {
		t.Errorf("OriginTile = %v, want %v", got, want)
	}
}

func TestRect(t *testing.T) {
	r := Rect{Min: ChunkPos{-1, -1}, Max: ChunkPos{1, 1}}
	if got := r.Area(); got != 9 {
		t.Errorf("Area = %v, want 9", got)
	}
	if !r.Contains(ChunkPos{0, 0}) || r.Contains(ChunkPos{2, 0}) {
		t.Errorf("Contains misclassified positions in %v", r)
	}

	g := r.Grow(1)
	if g.Min != (ChunkPos{-2, -2}) || g.Max != (ChunkPos{2, 2}) {
		t.Errorf("Grow(1) = %v", g)
	}

	var all []ChunkPos
	for pos := range r.All() {
		all = append(all, pos)
	}
	if len(all) != 9 {
		t.Fatalf("All yielded %v positions, want 9", len(all))
	}
	if all[0] != (ChunkPos{-1, -1}) || all[8] != (ChunkPos{1, 1}) {
		t.Errorf("All out of scan order: first %v, last %v", all[0], all[8])
	}
}
