package stream

import (
	"cmp"
	"slices"
	"time"

	"github.com/tidemill/tilestream/grid"
)

// Tick drives one scheduling pass: it polls the viewport, admits newly
// visible chunks ordered by distance, dispatches queued chunks to the
// worker pool up to the concurrency bound, applies a throttled amount of
// completed chunks and re-queues failures. Each sub-step runs to
// completion before the next starts; Tick must not be called reentrantly.
func (s *Streamer) Tick() {
	select {
	case <-s.closing:
		return
	default:
	}
	s.admitVisible()
	s.dispatch()
	s.applyCompleted()
	s.drainFailures()
}

type candidate struct {
	pos  grid.ChunkPos
	dist int32
}

// admitVisible computes the visible+buffered chunk rectangle and admits
// every chunk in it that is not yet tracked, closest to the viewport chunk
// first.
func (s *Streamer) admitVisible() {
	centre, size, zoom := s.conf.Viewport.Viewport()
	if zoom <= 0 {
		zoom = 1
	}
	half := size.Mul(1 / (2 * zoom))
	r := grid.RectFromPixels(centre.Sub(half), centre.Add(half), s.conf.TileSize, s.conf.ChunkSize)
	r = r.Grow(int32(s.conf.Buffer))
	centreChunk := grid.ChunkPosFromPixel(centre, s.conf.TileSize, s.conf.ChunkSize)

	var admitted []candidate
	for pos := range r.All() {
		if s.tracked(pos) {
			continue
		}
		admitted = append(admitted, candidate{pos: pos, dist: pos.ManhattanDist(centreChunk)})
	}
	if len(admitted) == 0 {
		return
	}
	// Stable sort keeps scan order among equidistant chunks. Distance is
	// the sole priority signal and only governs admission order: chunks
	// admitted on an earlier tick keep their place in the queue.
	slices.SortStableFunc(admitted, func(a, b candidate) int {
		return cmp.Compare(a.dist, b.dist)
	})
	for _, c := range admitted {
		s.queued[c.pos] = struct{}{}
		s.pending = append(s.pending, c.pos)
	}
	s.metrics.admitted.Add(uint64(len(admitted)))
}

// tracked reports whether pos is in any tracked set, i.e. not unseen.
func (s *Streamer) tracked(pos grid.ChunkPos) bool {
	if _, ok := s.queued[pos]; ok {
		return true
	}
	if _, ok := s.generating[pos]; ok {
		return true
	}
	if _, ok := s.generated[pos]; ok {
		return true
	}
	_, ok := s.failed[pos]
	return ok
}

// dispatch pops chunks from the front of the pending queue and hands them
// to the worker pool while fewer than Workers chunks are generating.
func (s *Streamer) dispatch() {
	for len(s.generating) < s.conf.Workers && len(s.pending) > 0 {
		pos := s.pending[0]
		select {
		case s.jobs <- task{pos: pos, epoch: s.epoch}:
			s.pending = s.pending[1:]
			delete(s.queued, pos)
			s.generating[pos] = struct{}{}
		default:
			// The worker queue is full; leave the chunk queued and try
			// again next tick.
			s.noteQueueSaturation()
			return
		}
	}
	if len(s.pending) == 0 {
		s.pending = nil
	}
}

// applyCompleted pops at most ApplyPerTick completed chunks from the
// completion channel, in arrival order, and hands them to the renderer.
// Stale-epoch completions are dropped without consuming the budget.
func (s *Streamer) applyCompleted() {
	applied := 0
	for applied < s.conf.ApplyPerTick {
		select {
		case c := <-s.completions:
			if c.epoch != s.epoch {
				s.metrics.staleDropped.Add(1)
				continue
			}
			pos := c.data.Pos
			delete(s.generating, pos)
			delete(s.attempts, pos)
			s.generated[pos] = struct{}{}
			s.metrics.generated.Add(1)
			applied++
			s.conf.Renderer.RenderChunk(c.data)
		default:
			return
		}
	}
}

// drainFailures drains the failure channel fully. Failed chunks re-enter
// the pending queue as if newly discovered unless they exhausted their
// generation attempts, in which case they are dead-lettered until the next
// invalidation.
func (s *Streamer) drainFailures() {
	for {
		select {
		case f := <-s.failures:
			if f.epoch != s.epoch {
				s.metrics.staleDropped.Add(1)
				continue
			}
			delete(s.generating, f.pos)
			// Guard against duplicate in-flight retries: a chunk that
			// was meanwhile generated or re-queued by another path is
			// left alone.
			if _, ok := s.generated[f.pos]; ok {
				continue
			}
			if _, ok := s.queued[f.pos]; ok {
				continue
			}
			s.attempts[f.pos]++
			if s.conf.MaxRetries > 0 && s.attempts[f.pos] >= s.conf.MaxRetries {
				delete(s.attempts, f.pos)
				s.failed[f.pos] = struct{}{}
				s.metrics.deadLettered.Add(1)
				s.conf.Log.Warn("Abandoned chunk generation.", "pos", f.pos, "attempts", s.conf.MaxRetries, "err", f.err)
				continue
			}
			s.queued[f.pos] = struct{}{}
			s.pending = append(s.pending, f.pos)
			s.metrics.retried.Add(1)
			s.conf.Log.Debug("Re-queued failed chunk generation.", "pos", f.pos, "attempt", s.attempts[f.pos], "err", f.err)
		default:
			return
		}
	}
}

// noteQueueSaturation increments the saturation counter and emits a
// throttled warning, giving operators concrete guidance on adjusting
// parallelism when the generation backlog grows.
func (s *Streamer) noteQueueSaturation() {
	count := s.saturation.Add(1)
	now := uint64(time.Now().UnixNano())
	last := s.lastSaturationLog.Load()
	if last != 0 && time.Duration(now-last) < time.Minute {
		return
	}
	if !s.lastSaturationLog.CompareAndSwap(last, now) {
		return
	}
	s.conf.Log.Warn("Generation queue saturated: chunk backlog detected.",
		"occurrences", count,
		"queue_size", cap(s.jobs),
		"workers", s.conf.Workers,
	)
}
