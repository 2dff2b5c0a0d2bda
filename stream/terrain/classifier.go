// Package terrain classifies world tiles into terrain classes by remapping
// layered coherent noise through an ordered range table.
package terrain

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/segmentio/fasthash/fnv1a"
	"github.com/tidemill/tilestream/grid"
	"github.com/tidemill/tilestream/stream/chunk"
)

// Config holds the parameters of a Classifier.
type Config struct {
	// Seed seeds the class noise field. The variant noise field uses an
	// independent seed derived from it, so two Classifiers with equal
	// configuration produce identical worlds.
	Seed int64
	// Frequency is the base sampling frequency of the noise in tile
	// coordinates. Defaults to 1/64.
	Frequency float64
	// Octaves is the amount of noise layers summed per sample. Defaults
	// to 4.
	Octaves int
	// Lacunarity is the per-octave frequency multiplier. Defaults to 2.
	Lacunarity float64
	// Gain is the per-octave amplitude multiplier. Defaults to 0.5.
	Gain float64
	// ChunkSize is the amount of tiles on a chunk edge. Defaults to 16.
	ChunkSize int
	// Palette is the class and range table used to remap noise samples.
	// Defaults to DefaultPalette().
	Palette *Palette
}

// Classifier assigns a terrain class and colour variant to every world
// tile. It is a pure function of its configuration and the tile position:
// repeated calls with identical inputs yield identical output, which makes
// it safe to invoke from any number of generation tasks simultaneously.
type Classifier struct {
	conf    Config
	class   opensimplex.Noise
	variant opensimplex.Noise
}

// NewClassifier creates a Classifier using fields of conf. An error is
// returned if the configuration is invalid; classification must not start
// with an invalid configuration.
func NewClassifier(conf Config) (*Classifier, error) {
	if conf.Frequency == 0 {
		conf.Frequency = 1.0 / 64
	}
	if conf.Octaves == 0 {
		conf.Octaves = 4
	}
	if conf.Lacunarity == 0 {
		conf.Lacunarity = 2
	}
	if conf.Gain == 0 {
		conf.Gain = 0.5
	}
	if conf.ChunkSize == 0 {
		conf.ChunkSize = 16
	}
	if conf.Palette == nil {
		conf.Palette = DefaultPalette()
	}
	if conf.Frequency < 0 || conf.Octaves < 0 || conf.Lacunarity <= 0 || conf.Gain <= 0 {
		return nil, fmt.Errorf("classifier: invalid noise parameters (frequency %v, octaves %v, lacunarity %v, gain %v)",
			conf.Frequency, conf.Octaves, conf.Lacunarity, conf.Gain)
	}
	if conf.ChunkSize < 1 {
		return nil, fmt.Errorf("classifier: chunk size %v must be positive", conf.ChunkSize)
	}
	return &Classifier{
		conf:    conf,
		class:   opensimplex.New(conf.Seed),
		variant: opensimplex.New(variantSeed(conf.Seed)),
	}, nil
}

// variantSeed derives the seed of the variant noise field. Hashing keeps
// the two fields independent for any base seed, including adjacent ones.
func variantSeed(seed int64) int64 {
	return int64(xxhash.Sum64String(fmt.Sprintf("variant|%d", seed)))
}

// ChunkSize returns the amount of tiles on a chunk edge.
func (c *Classifier) ChunkSize() int {
	return c.conf.ChunkSize
}

// Palette returns the palette the classifier remaps noise through.
func (c *Classifier) Palette() *Palette {
	return c.conf.Palette
}

// ClassAt returns the terrain class index of the tile at (x, y) in
// tile-space.
func (c *Classifier) ClassAt(x, y int32) int {
	n := c.sample(c.class, float64(x), float64(y))
	v := int(math.Round(n * float64(c.conf.Palette.Extremum())))
	return c.conf.Palette.ClassIndex(v)
}

// VariantAt returns the colour variant of the tile at (x, y) for the class
// index passed. The sampling position is jittered by a coordinate hash so
// variant borders do not align with the noise grid.
func (c *Classifier) VariantAt(x, y int32, class int) int {
	count := len(c.conf.Palette.Class(class).Variants)
	if count == 1 {
		return 0
	}
	jx, jy := jitter(x, y)
	n := math.Abs(c.sample(c.variant, float64(x+jx), float64(y+jy)))
	v := int(n * float64(count))
	if v >= count {
		v = count - 1
	}
	return v
}

// TileAt classifies the tile at (x, y) in tile-space.
func (c *Classifier) TileAt(x, y int32) chunk.TileInfo {
	class := c.ClassAt(x, y)
	return chunk.TileInfo{Class: class, Variant: c.VariantAt(x, y, class)}
}

// GenerateChunk classifies every tile in the bounds of the chunk at pos and
// returns the resulting grid. The returned error is always nil; the method
// satisfies the generator interface of the stream package.
func (c *Classifier) GenerateChunk(pos grid.ChunkPos) (*chunk.Data, error) {
	size := c.conf.ChunkSize
	d := chunk.New(pos, size)
	origin := d.Origin
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d.Set(x, y, c.TileAt(origin.X()+int32(x), origin.Y()+int32(y)))
		}
	}
	return d, nil
}

// sample sums Octaves layers of the noise field passed, scaling frequency
// by Lacunarity and amplitude by Gain per layer, and normalises the result
// back into [-1, 1].
func (c *Classifier) sample(n opensimplex.Noise, x, y float64) float64 {
	var total, norm float64
	amp, freq := 1.0, c.conf.Frequency
	for i := 0; i < c.conf.Octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amp
		norm += amp
		amp *= c.conf.Gain
		freq *= c.conf.Lacunarity
	}
	return total / norm
}

// jitter hashes a tile position into a small deterministic offset in
// {-1, 0, 1} per axis.
func jitter(x, y int32) (int32, int32) {
	h := fnv1a.Init64
	h = fnv1a.AddUint64(h, uint64(uint32(x)))
	h = fnv1a.AddUint64(h, uint64(uint32(y)))
	jx := int32(h >> 20 & 3)
	jy := int32(h >> 22 & 3)
	if jx == 3 {
		jx = 1
	}
	if jy == 3 {
		jy = 1
	}
	return jx - 1, jy - 1
}
