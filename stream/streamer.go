// Package stream implements the chunk streaming scheduler: it decides
// which chunks of an unbounded tile world to generate as a viewport moves,
// runs generation on a bounded worker pool off the scheduling timeline and
// hands completed chunks back to the renderer at a throttled rate.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/tidemill/tilestream/grid"
	"github.com/tidemill/tilestream/stream/chunk"
)

// Viewport provides the current camera state. It is polled exactly once
// per tick, on the scheduling timeline.
type Viewport interface {
	// Viewport returns the centre of the viewport in world pixels, its
	// size in screen pixels and the zoom factor. The world rectangle on
	// screen is centre ± (size/zoom)/2.
	Viewport() (centre mgl64.Vec2, size mgl64.Vec2, zoom float64)
}

// Renderer accepts completed chunk data for presentation. It is invoked on
// the scheduling timeline; the scheduler never inspects rendering state and
// keeps no reference to the data after the call.
type Renderer interface {
	RenderChunk(*chunk.Data)
}

// Generator produces the tile grid of a single chunk. GenerateChunk is
// called from multiple worker goroutines simultaneously and must be safe
// for concurrent use.
type Generator interface {
	GenerateChunk(pos grid.ChunkPos) (*chunk.Data, error)
}

// Streamer schedules chunk generation around a moving viewport. All
// exported methods except Close must be called from a single goroutine,
// the scheduling timeline; the worker pool communicates with it only
// through the completion and failure channels.
type Streamer struct {
	conf Config

	// epoch tags dispatched tasks. InvalidateAll rotates it, so deposits
	// from tasks dispatched before the invalidation are recognised as
	// stale and dropped.
	epoch uuid.UUID

	// pending holds queued chunks in dispatch order. It mirrors the
	// queued set: a chunk is in pending exactly when it is in queued.
	pending    []grid.ChunkPos
	queued     map[grid.ChunkPos]struct{}
	generating map[grid.ChunkPos]struct{}
	generated  map[grid.ChunkPos]struct{}
	// failed holds dead-lettered chunks that exhausted their generation
	// attempts. They are excluded from re-admission until InvalidateAll.
	failed   map[grid.ChunkPos]struct{}
	attempts map[grid.ChunkPos]int

	jobs        chan task
	completions chan completion
	failures    chan failureResult

	closing   chan struct{}
	running   sync.WaitGroup
	closeOnce sync.Once

	metrics Metrics

	// saturation counts how often a dispatch found the worker queue full.
	// Used to rate-limit backpressure warnings so operators can tune
	// queue/worker sizes.
	saturation        atomic.Uint64
	lastSaturationLog atomic.Uint64
}

type task struct {
	pos   grid.ChunkPos
	epoch uuid.UUID
}

type completion struct {
	data  *chunk.Data
	epoch uuid.UUID
}

type failureResult struct {
	pos   grid.ChunkPos
	epoch uuid.UUID
	err   error
}

// New creates a Streamer using fields of conf and starts its worker pool.
// The Streamer must be closed with Close once it is no longer used.
func (conf Config) New() *Streamer {
	conf = conf.withDefaults()
	s := &Streamer{
		conf:        conf,
		epoch:       uuid.New(),
		queued:      make(map[grid.ChunkPos]struct{}),
		generating:  make(map[grid.ChunkPos]struct{}),
		generated:   make(map[grid.ChunkPos]struct{}),
		failed:      make(map[grid.ChunkPos]struct{}),
		attempts:    make(map[grid.ChunkPos]int),
		jobs:        make(chan task, conf.QueueSize),
		completions: make(chan completion, conf.QueueSize+conf.Workers),
		failures:    make(chan failureResult, conf.QueueSize+conf.Workers),
		closing:     make(chan struct{}),
	}
	for i := 0; i < conf.Workers; i++ {
		s.running.Add(1)
		go s.worker()
	}
	return s
}

// Generated reports whether the chunk at pos has been generated and handed
// to the renderer.
func (s *Streamer) Generated(pos grid.ChunkPos) bool {
	_, ok := s.generated[pos]
	return ok
}

// PendingCount returns the amount of chunks admitted but not yet dispatched
// to the worker pool.
func (s *Streamer) PendingCount() int {
	return len(s.queued)
}

// GeneratingCount returns the amount of chunks currently dispatched to the
// worker pool. It never exceeds the configured worker count.
func (s *Streamer) GeneratingCount() int {
	return len(s.generating)
}

// GeneratedCount returns the amount of chunks generated and handed to the
// renderer since the last invalidation.
func (s *Streamer) GeneratedCount() int {
	return len(s.generated)
}

// FailedCount returns the amount of chunks dead-lettered after exhausting
// their generation attempts.
func (s *Streamer) FailedCount() int {
	return len(s.failed)
}

// Metrics returns a snapshot of the scheduler counters.
func (s *Streamer) Metrics() MetricsSnapshot {
	return s.metrics.snapshot()
}

// InvalidateAll forgets every tracked chunk, returning all of them to the
// implicit unseen state so the next tick re-admits the visible area. It
// must be called whenever generation parameters change. In-flight tasks
// are not cancelled; their deposits carry the previous epoch and are
// dropped when drained.
func (s *Streamer) InvalidateAll() {
	s.epoch = uuid.New()
	s.pending = s.pending[:0]
	clear(s.queued)
	clear(s.generating)
	clear(s.generated)
	clear(s.failed)
	clear(s.attempts)
	s.conf.Log.Debug("Invalidated all chunks.", "epoch", s.epoch)
}

// Close stops the worker pool and waits for in-flight generation tasks to
// finish. Tick is a no-op on a closed Streamer.
func (s *Streamer) Close() error {
	s.closeOnce.Do(func() {
		close(s.closing)
		s.running.Wait()
	})
	return nil
}
