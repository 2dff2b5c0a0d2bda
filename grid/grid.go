// Package grid implements the coordinate spaces of a streamed tile world:
// world pixels, tiles and chunks. Pixel positions are continuous and
// expressed as mgl64.Vec2; tiles and chunks are addressed by integer pairs.
package grid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/exp/constraints"
)

// ChunkPos holds the position of a chunk in chunk-space. The first value is
// the X coordinate, the second the Y coordinate.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Y returns the Y coordinate of the chunk position.
func (p ChunkPos) Y() int32 {
	return p[1]
}

// String implements fmt.Stringer.
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%v, %v)", p[0], p[1])
}

// OriginTile returns the top-left tile of the chunk, given the amount of
// tiles on a chunk edge.
func (p ChunkPos) OriginTile(chunkSize int) TilePos {
	return TilePos{p[0] * int32(chunkSize), p[1] * int32(chunkSize)}
}

// ManhattanDist returns the Manhattan distance between two chunk positions.
func (p ChunkPos) ManhattanDist(q ChunkPos) int32 {
	dx, dy := p[0]-q[0], p[1]-q[1]
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// TilePos holds the position of a tile in tile-space. The first value is
// the X coordinate, the second the Y coordinate.
type TilePos [2]int32

// X returns the X coordinate of the tile position.
func (p TilePos) X() int32 {
	return p[0]
}

// Y returns the Y coordinate of the tile position.
func (p TilePos) Y() int32 {
	return p[1]
}

// ChunkPosFromPixel returns the position of the chunk that contains the
// world pixel position passed. tileSize is the edge length of a tile in
// pixels and chunkSize the amount of tiles on a chunk edge; both must be
// positive. Flooring, rather than truncation, maps negative pixel positions
// to the chunk below/left of the origin.
func ChunkPosFromPixel(v mgl64.Vec2, tileSize, chunkSize int) ChunkPos {
	span := float64(tileSize * chunkSize)
	return ChunkPos{int32(math.Floor(v[0] / span)), int32(math.Floor(v[1] / span))}
}

// TilePosFromPixel returns the position of the tile that contains the world
// pixel position passed.
func TilePosFromPixel(v mgl64.Vec2, tileSize int) TilePos {
	s := float64(tileSize)
	return TilePos{int32(math.Floor(v[0] / s)), int32(math.Floor(v[1] / s))}
}

// ChunkPosFromTile returns the position of the chunk that contains the tile
// position passed.
func ChunkPosFromTile(t TilePos, chunkSize int) ChunkPos {
	n := int32(chunkSize)
	return ChunkPos{FloorDiv(t[0], n), FloorDiv(t[1], n)}
}

// FloorDiv divides a by b, rounding the quotient towards negative infinity.
func FloorDiv[T constraints.Integer](a, b T) T {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
