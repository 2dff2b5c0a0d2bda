package stream

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/tidemill/tilestream/stream/terrain"
)

// Config contains options for creating a Streamer.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is
	// set to slog.Default().
	Log *slog.Logger
	// Viewport provides the camera state polled once per tick. If nil, a
	// StaticViewport at the origin is used.
	Viewport Viewport
	// Renderer receives completed chunk data. If nil, chunk data is
	// discarded through a NopRenderer.
	Renderer Renderer
	// Generator produces the tile grid of each chunk. If nil, a
	// NopGenerator emitting empty chunks is used.
	Generator Generator
	// TileSize is the edge length of a tile in world pixels. Defaults
	// to 16.
	TileSize int
	// ChunkSize is the amount of tiles on a chunk edge. It must match the
	// size of the chunks the Generator produces. Defaults to 16.
	ChunkSize int
	// Buffer is the amount of chunks the visible rectangle is expanded by
	// on all sides before admission.
	Buffer int
	// Workers bounds how many chunks may be generating simultaneously.
	// If set to 0 or lower, the worker count is derived from the host's
	// available CPUs.
	Workers int
	// QueueSize limits how many dispatched generation jobs may wait for a
	// worker. If set to 0 or lower, a size proportional to the worker
	// count is chosen.
	QueueSize int
	// ApplyPerTick bounds how many completed chunks are handed to the
	// Renderer per tick, trading chunk-visibility latency for smoothness
	// of the scheduling timeline. Defaults to 4.
	ApplyPerTick int
	// MaxRetries is the amount of times generation of a chunk may fail
	// before the chunk is dead-lettered until the next invalidation.
	// Defaults to 3. A negative value retries indefinitely.
	MaxRetries int
}

// withDefaults fills out zero values of the Config with their defaults.
func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Viewport == nil {
		conf.Viewport = StaticViewport{}
	}
	if conf.Renderer == nil {
		conf.Renderer = NopRenderer{}
	}
	if conf.TileSize <= 0 {
		conf.TileSize = 16
	}
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = 16
	}
	if conf.Buffer < 0 {
		conf.Buffer = 0
	}
	if conf.Generator == nil {
		conf.Generator = NopGenerator{ChunkSize: conf.ChunkSize}
	}
	if conf.Workers <= 0 {
		conf.Workers = max(1, runtime.NumCPU())
	}
	if conf.QueueSize <= 0 {
		conf.QueueSize = conf.Workers * 4
	}
	if conf.ApplyPerTick <= 0 {
		conf.ApplyPerTick = 4
	}
	if conf.MaxRetries == 0 {
		conf.MaxRetries = 3
	}
	return conf
}

// UserConfig is the user configuration of a streamed tile world. It holds
// the settings that affect scheduling and terrain generation, may be
// serialised (for example to a TOML file) and is converted to a Config by
// calling UserConfig.Config.
type UserConfig struct {
	World struct {
		// Seed controls the procedural generation of the terrain.
		Seed int64
		// TileSize is the edge length of a tile in world pixels.
		TileSize int
		// ChunkSize is the amount of tiles on a chunk edge.
		ChunkSize int
		// Buffer is the amount of chunks generated beyond the visible
		// rectangle on all sides.
		Buffer int
	}
	Scheduler struct {
		// Workers is the amount of background workers generating chunks.
		// Set to 0 to derive a default from the host's CPU count.
		Workers int
		// QueueSize determines how many generation jobs can wait for a
		// worker. Set to 0 to use an automatically chosen size.
		QueueSize int
		// ApplyPerTick is the maximum amount of completed chunks handed
		// to the renderer per tick.
		ApplyPerTick int
		// MaxRetries is the amount of times chunk generation may fail
		// before the chunk is abandoned until the next invalidation.
		MaxRetries int
	}
	Noise struct {
		// Frequency is the base sampling frequency of the terrain noise.
		Frequency float64
		// Octaves is the amount of noise layers summed per sample.
		Octaves int
		// Lacunarity is the per-octave frequency multiplier.
		Lacunarity float64
		// Gain is the per-octave amplitude multiplier.
		Gain float64
	}
}

// DefaultUserConfig returns a user configuration with the default values
// filled out.
func DefaultUserConfig() UserConfig {
	c := UserConfig{}
	c.World.Seed = 0
	c.World.TileSize = 16
	c.World.ChunkSize = 16
	c.World.Buffer = 1
	c.Scheduler.ApplyPerTick = 4
	c.Scheduler.MaxRetries = 3
	c.Noise.Frequency = 1.0 / 64
	c.Noise.Octaves = 4
	c.Noise.Lacunarity = 2
	c.Noise.Gain = 0.5
	return c
}

// Config converts a UserConfig to a Config, building the terrain
// classifier used as Generator. An error is returned if the noise or
// palette configuration is invalid; the scheduler must not be started with
// an invalid configuration. The Viewport and Renderer fields are left for
// the caller to fill out.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	conf := Config{
		Log:          log,
		TileSize:     uc.World.TileSize,
		ChunkSize:    uc.World.ChunkSize,
		Buffer:       uc.World.Buffer,
		Workers:      uc.Scheduler.Workers,
		QueueSize:    uc.Scheduler.QueueSize,
		ApplyPerTick: uc.Scheduler.ApplyPerTick,
		MaxRetries:   uc.Scheduler.MaxRetries,
	}
	classifier, err := terrain.NewClassifier(terrain.Config{
		Seed:       uc.World.Seed,
		Frequency:  uc.Noise.Frequency,
		Octaves:    uc.Noise.Octaves,
		Lacunarity: uc.Noise.Lacunarity,
		Gain:       uc.Noise.Gain,
		ChunkSize:  uc.World.ChunkSize,
	})
	if err != nil {
		return conf, fmt.Errorf("create classifier: %w", err)
	}
	conf.Generator = classifier
	return conf, nil
}
