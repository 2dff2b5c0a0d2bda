package grid

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle of chunk positions. Both corners are
// inclusive.
type Rect struct {
	Min, Max ChunkPos
}

// RectFromPixels returns the rectangle of chunks covered by the world pixel
// rectangle spanned by min and max.
func RectFromPixels(min, max mgl64.Vec2, tileSize, chunkSize int) Rect {
	return Rect{
		Min: ChunkPosFromPixel(min, tileSize, chunkSize),
		Max: ChunkPosFromPixel(max, tileSize, chunkSize),
	}
}

// Grow expands the rectangle by n chunks on all sides.
func (r Rect) Grow(n int32) Rect {
	return Rect{
		Min: ChunkPos{r.Min[0] - n, r.Min[1] - n},
		Max: ChunkPos{r.Max[0] + n, r.Max[1] + n},
	}
}

// Contains reports whether the chunk position passed lies within the
// rectangle.
func (r Rect) Contains(p ChunkPos) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Area returns the amount of chunk positions in the rectangle.
func (r Rect) Area() int {
	if r.Max[0] < r.Min[0] || r.Max[1] < r.Min[1] {
		return 0
	}
	return int(r.Max[0]-r.Min[0]+1) * int(r.Max[1]-r.Min[1]+1)
}

// All returns an iterator over every chunk position in the rectangle, in
// row-major scan order.
func (r Rect) All() iter.Seq[ChunkPos] {
	return func(yield func(ChunkPos) bool) {
		for y := r.Min[1]; y <= r.Max[1]; y++ {
			for x := r.Min[0]; x <= r.Max[0]; x++ {
				if !yield(ChunkPos{x, y}) {
					return
				}
			}
		}
	}
}
