// Package chunk holds the payload produced by chunk generation: a
// rectangular grid of classified tiles. A Data value is owned exclusively
// by the generation task that produces it until it is handed to the
// renderer, after which the scheduler keeps no reference to it.
package chunk

import (
	"github.com/tidemill/tilestream/grid"
)

// TileInfo describes a single generated tile.
type TileInfo struct {
	// Class is the index of the tile's terrain class in the palette class
	// table.
	Class int
	// Variant selects one of the colour variants of the class.
	Variant int
}

// Data holds the generated tiles of a single chunk.
type Data struct {
	// Pos is the position of the chunk in chunk-space.
	Pos grid.ChunkPos
	// Origin is the top-left tile of the chunk in tile-space.
	Origin grid.TilePos
	// Width and Height are the dimensions of the tile grid. Both equal the
	// configured chunk size; the grid is unbounded, so chunks are never
	// clipped at an edge.
	Width, Height int

	tiles []TileInfo
}

// New creates an empty Data for the chunk at pos with the chunk size
// passed.
func New(pos grid.ChunkPos, size int) *Data {
	return &Data{
		Pos:    pos,
		Origin: pos.OriginTile(size),
		Width:  size,
		Height: size,
		tiles:  make([]TileInfo, size*size),
	}
}

// At returns the tile at the chunk-local position (x, y).
func (d *Data) At(x, y int) TileInfo {
	return d.tiles[y*d.Width+x]
}

// Set sets the tile at the chunk-local position (x, y).
func (d *Data) Set(x, y int, t TileInfo) {
	d.tiles[y*d.Width+x] = t
}
