package fastlist

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Locked guards one List with one lock. It is the external lock the list
// expects when shared between goroutines; it adds no other synchronization.
//
// Every forwarded call is atomic on its own. Sequences of calls are only
// atomic inside Do or View. Stale handles stay harmless under contention:
// several goroutines racing to Remove the same Index remove it exactly once.
type Locked[T any] struct {
	mu     sync.RWMutex
	list   *List[T]
	logger *Logger
}

// NewLocked wraps l. l must not be used directly afterwards.
func NewLocked[T any](l *List[T]) *Locked[T] {
	return &Locked[T]{list: l, logger: l.logger}
}

// Do runs fn with exclusive access to the list.
func (s *Locked[T]) Do(fn func(l *List[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.list)
}

// View runs fn with shared, read-only access to the list. fn must not mutate
// the list or retain pointers obtained from it.
func (s *Locked[T]) View(fn func(l *List[T])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.list)
}

// PushBack appends v.
func (s *Locked[T]) PushBack(v T) Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.PushBack(v)
}

// PushFront prepends v.
func (s *Locked[T]) PushFront(v T) Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.PushFront(v)
}

// PopFront removes and returns the first value.
func (s *Locked[T]) PopFront() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.PopFront()
}

// PopBack removes and returns the last value.
func (s *Locked[T]) PopBack() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.PopBack()
}

// InsertAfter links v right after at.
func (s *Locked[T]) InsertAfter(at Index, v T) (Index, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.InsertAfter(at, v)
}

// InsertBefore links v right before at.
func (s *Locked[T]) InsertBefore(at Index, v T) (Index, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.InsertBefore(at, v)
}

// Remove unlinks idx and returns its value.
func (s *Locked[T]) Remove(idx Index) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Remove(idx)
}

// Extend appends values and returns their indices in order.
func (s *Locked[T]) Extend(values ...T) []Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Extend(values...)
}

// Len returns the number of items.
func (s *Locked[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list.Len()
}

// Value returns a copy of the value behind idx.
func (s *Locked[T]) Value(idx Index) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return valueOf(s.list.Get(idx))
}

// HeadValue returns a copy of the first value.
func (s *Locked[T]) HeadValue() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return valueOf(s.list.Head())
}

// TailValue returns a copy of the last value.
func (s *Locked[T]) TailValue() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return valueOf(s.list.Tail())
}

func valueOf[T any](it *Item[T], ok bool) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	return it.Value, true
}

// RemoveAll removes the given handles using up to workers goroutines and
// returns how many items were actually removed. Duplicate or stale handles
// are skipped. Cancellation is checked between removals; on cancellation the
// removals already made are kept and ctx.Err() is returned.
func (s *Locked[T]) RemoveAll(ctx context.Context, idxs []Index, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	chunk := (len(idxs) + workers - 1) / workers

	var removed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(idxs); start += chunk {
		part := idxs[start:min(start+chunk, len(idxs))]
		g.Go(func() error {
			for _, idx := range part {
				if err := gctx.Err(); err != nil {
					return err
				}
				if _, ok := s.Remove(idx); ok {
					removed.Add(1)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	n := int(removed.Load())
	if s.logger != nil {
		s.logger.LogRemoveAll(ctx, len(idxs), n, err)
	}
	return n, err
}
