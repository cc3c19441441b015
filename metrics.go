package fastlist

import "sync/atomic"

// MetricsCollector defines an interface for collecting list metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called synchronously from list mutations, so implementations
// must be cheap and safe for concurrent use when lists are shared.
type MetricsCollector interface {
	// RecordInsert is called after items are linked into the list.
	// count is the number of items inserted by the call.
	RecordInsert(count int)

	// RecordRemove is called after each Remove/Pop. found is false when the
	// handle was stale or the list was empty.
	RecordRemove(found bool)

	// RecordMove is called after each splice (Move*). found is false when
	// either handle was stale.
	RecordMove(found bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

// RecordInsert implements MetricsCollector.
func (NoopMetricsCollector) RecordInsert(int) {}

// RecordRemove implements MetricsCollector.
func (NoopMetricsCollector) RecordRemove(bool) {}

// RecordMove implements MetricsCollector.
func (NoopMetricsCollector) RecordMove(bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	InsertCount  atomic.Int64
	RemoveCount  atomic.Int64
	RemoveMisses atomic.Int64
	MoveCount    atomic.Int64
	MoveMisses   atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(count int) {
	b.InsertCount.Add(int64(count))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(found bool) {
	if found {
		b.RemoveCount.Add(1)
	} else {
		b.RemoveMisses.Add(1)
	}
}

// RecordMove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMove(found bool) {
	if found {
		b.MoveCount.Add(1)
	} else {
		b.MoveMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:  b.InsertCount.Load(),
		RemoveCount:  b.RemoveCount.Load(),
		RemoveMisses: b.RemoveMisses.Load(),
		MoveCount:    b.MoveCount.Load(),
		MoveMisses:   b.MoveMisses.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount  int64
	RemoveCount  int64
	RemoveMisses int64
	MoveCount    int64
	MoveMisses   int64
}
