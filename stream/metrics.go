package stream

import (
	"sync/atomic"
)

// Metrics tracks scheduler counters for observability. All counters are
// cumulative over the lifetime of the Streamer; invalidation does not
// reset them.
type Metrics struct {
	admitted     atomic.Uint64
	generated    atomic.Uint64
	retried      atomic.Uint64
	deadLettered atomic.Uint64
	staleDropped atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the scheduler counters.
type MetricsSnapshot struct {
	// Admitted is the amount of chunks admitted to the pending queue.
	Admitted uint64
	// Generated is the amount of chunks applied and handed to the
	// renderer.
	Generated uint64
	// Retried is the amount of failed generation attempts that were
	// re-queued.
	Retried uint64
	// DeadLettered is the amount of chunks abandoned after exhausting
	// their generation attempts.
	DeadLettered uint64
	// StaleDropped is the amount of deposits discarded because they were
	// produced under an epoch older than the current one.
	StaleDropped uint64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Admitted:     m.admitted.Load(),
		Generated:    m.generated.Load(),
		Retried:      m.retried.Load(),
		DeadLettered: m.deadLettered.Load(),
		StaleDropped: m.staleDropped.Load(),
	}
}
