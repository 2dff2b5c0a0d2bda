package stream

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tidemill/tilestream/grid"
	"github.com/tidemill/tilestream/stream/chunk"
)

// NopRenderer is a Renderer that discards all chunk data handed to it.
type NopRenderer struct{}

// RenderChunk ...
func (NopRenderer) RenderChunk(*chunk.Data) {}

// NopGenerator is a Generator that generates chunks with every tile left
// at the zero class and variant.
type NopGenerator struct {
	// ChunkSize is the amount of tiles on a chunk edge. A value of 0 or
	// lower produces chunks of size 1.
	ChunkSize int
}

// GenerateChunk ...
func (g NopGenerator) GenerateChunk(pos grid.ChunkPos) (*chunk.Data, error) {
	return chunk.New(pos, max(g.ChunkSize, 1)), nil
}

// StaticViewport is a Viewport fixed at a position. Its zero value is a
// dimensionless viewport at the world origin.
type StaticViewport struct {
	// Centre is the centre of the viewport in world pixels.
	Centre mgl64.Vec2
	// Size is the size of the viewport in screen pixels.
	Size mgl64.Vec2
	// Zoom is the zoom factor. A value of 0 is treated as 1.
	Zoom float64
}

// Viewport ...
func (v StaticViewport) Viewport() (mgl64.Vec2, mgl64.Vec2, float64) {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return v.Centre, v.Size, zoom
}
