package arena

import (
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fastlist/internal/conv"
)

// Stats tracks arena usage.
//
//   - Live: occupied slots
//   - Slots: slots ever created (live + free + retired)
//   - Free: slots waiting on the free list
//   - Retired: slots whose generation is exhausted and will never be reused
//   - Inserts/Removes/Reuses: cumulative counters
type Stats struct {
	Live    int
	Slots   int
	Free    int
	Retired int
	Inserts uint64
	Removes uint64
	Reuses  uint64
}

// Option is a configuration option for Arena.
type Option func(*config)

type config struct {
	backend  Backend
	capacity int
}

// WithBackend selects the backing storage.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithCapacity pre-reserves room for n slots.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// Arena is a generation-tagged slot map.
type Arena[T any] struct {
	slots   storage[T]
	backend Backend
	// freeHead is the position+1 of the first free slot; 0 when empty.
	freeHead uint32
	live     *roaring.Bitmap
	n        int

	free    int
	retired int
	inserts uint64
	removes uint64
	reuses  uint64
}

// New creates an empty Arena.
func New[T any](opts ...Option) *Arena[T] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Arena[T]{
		slots:   newStorage[T](cfg.backend),
		backend: cfg.backend,
		live:    roaring.New(),
	}
	if cfg.capacity > 0 {
		a.slots.reserve(cfg.capacity)
	}
	return a
}

// Backend returns the storage strategy of the arena.
func (a *Arena[T]) Backend() Backend { return a.backend }

// Insert stores v and returns its Index.
func (a *Arena[T]) Insert(v T) Index {
	return a.InsertWithKey(func(Index) T { return v })
}

// InsertWithKey stores the value returned by fn, which receives the Index the
// value will live under. fn must not call back into the arena.
func (a *Arena[T]) InsertWithKey(fn func(Index) T) Index {
	var (
		pos uint32
		s   *slot[T]
	)

	if a.freeHead != 0 {
		pos = a.freeHead - 1
		s = a.slots.at(pos)
		a.freeHead = s.nextFree
		s.nextFree = 0
		a.free--
		a.reuses++
	} else {
		pos, s = a.grow()
	}

	idx := Index{slot: pos, gen: s.gen}
	s.value = fn(idx)
	s.occupied = true
	a.live.Add(pos)
	a.n++
	a.inserts++

	return idx
}

func (a *Arena[T]) grow() (uint32, *slot[T]) {
	pos, err := conv.IntToUint32(a.slots.len())
	if err != nil || pos == math.MaxUint32 {
		// pos+1 must stay representable for the free list encoding.
		panic(fmt.Sprintf("arena: slot space exhausted at %d slots", a.slots.len()))
	}
	s := a.slots.grow()
	s.gen = 1
	return pos, s
}

func (a *Arena[T]) lookup(idx Index) *slot[T] {
	if idx.gen == 0 || uint64(idx.slot) >= uint64(a.slots.len()) {
		return nil
	}
	s := a.slots.at(idx.slot)
	if s == nil || !s.occupied || s.gen != idx.gen {
		return nil
	}
	return s
}

// Remove frees the slot behind idx and returns its value.
// It reports false, without side effects, when idx is stale or unknown.
func (a *Arena[T]) Remove(idx Index) (T, bool) {
	var zero T

	s := a.lookup(idx)
	if s == nil {
		return zero, false
	}

	v := s.value
	s.value = zero
	s.occupied = false
	a.live.Remove(idx.slot)
	a.n--
	a.removes++

	if s.gen == math.MaxUint32 {
		a.retired++
		return v, true
	}

	s.gen++
	s.nextFree = a.freeHead
	a.freeHead = idx.slot + 1
	a.free++

	return v, true
}

// Get returns a pointer to the value behind idx.
// The pointer is invalidated by the next insert on slice-backed arenas.
func (a *Arena[T]) Get(idx Index) (*T, bool) {
	s := a.lookup(idx)
	if s == nil {
		return nil, false
	}
	return &s.value, true
}

// Contains reports whether idx refers to a live value.
func (a *Arena[T]) Contains(idx Index) bool {
	return a.lookup(idx) != nil
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.n
}

// Slots returns the number of slots ever created.
func (a *Arena[T]) Slots() int {
	return a.slots.len()
}

// Clear removes every live value. Outstanding indices become stale.
func (a *Arena[T]) Clear() {
	for _, pos := range a.live.ToArray() {
		s := a.slots.at(pos)
		a.Remove(Index{slot: pos, gen: s.gen})
	}
}

// Clone returns a deep copy of the arena's slots. Values are copied with
// plain assignment. Every Index valid in a is valid in the clone.
func (a *Arena[T]) Clone() *Arena[T] {
	return &Arena[T]{
		slots:    a.slots.clone(),
		backend:  a.backend,
		freeHead: a.freeHead,
		live:     a.live.Clone(),
		n:        a.n,
		free:     a.free,
		retired:  a.retired,
		inserts:  a.inserts,
		removes:  a.removes,
		reuses:   a.reuses,
	}
}

// All iterates over live values in ascending slot order.
// The arena must not be modified while iterating.
func (a *Arena[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		it := a.live.Iterator()
		for it.HasNext() {
			pos := it.Next()
			s := a.slots.at(pos)
			if !yield(Index{slot: pos, gen: s.gen}, &s.value) {
				return
			}
		}
	}
}

// Stats returns the current arena statistics.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Live:    a.Len(),
		Slots:   a.slots.len(),
		Free:    a.free,
		Retired: a.retired,
		Inserts: a.inserts,
		Removes: a.removes,
		Reuses:  a.reuses,
	}
}

func (a *Arena[T]) String() string {
	st := a.Stats()
	return fmt.Sprintf(
		"Arena{backend: %s, live: %d, slots: %d, free: %d, retired: %d}",
		a.backend, st.Live, st.Slots, st.Free, st.Retired,
	)
}
