package arena

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownBackend is returned by ParseBackend for unrecognized names.
var ErrUnknownBackend = errors.New("arena: unknown backend")

// Backend selects the storage strategy behind an Arena.
// The choice has no effect on Index semantics.
type Backend uint8

const (
	// BackendSlice keeps slots in one growable slice. Best locality; growth
	// may move slots, so pointers returned by Get are valid until the next insert.
	BackendSlice Backend = iota
	// BackendSegmented keeps slots in fixed-size segments. Growth never moves
	// existing slots.
	BackendSegmented
	// BackendHash keeps slots in a hash map keyed by position.
	BackendHash
)

func (b Backend) String() string {
	switch b {
	case BackendSlice:
		return "slice"
	case BackendSegmented:
		return "segmented"
	case BackendHash:
		return "hash"
	default:
		return fmt.Sprintf("Backend(%d)", uint8(b))
	}
}

// ParseBackend maps a configuration string to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "", "slice", "vec":
		return BackendSlice, nil
	case "segmented":
		return BackendSegmented, nil
	case "hash":
		return BackendHash, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
	// nextFree is the position+1 of the next free slot; 0 terminates the list.
	nextFree uint32
}

// storage is the contiguous-storage strategy of an Arena. Positions are dense:
// grow always appends the slot at position len().
type storage[T any] interface {
	len() int
	at(pos uint32) *slot[T]
	grow() *slot[T]
	reserve(n int)
	clone() storage[T]
}

func newStorage[T any](b Backend) storage[T] {
	switch b {
	case BackendSegmented:
		return &segmentedStorage[T]{}
	case BackendHash:
		return &hashStorage[T]{slots: make(map[uint32]*slot[T])}
	default:
		return &sliceStorage[T]{}
	}
}

type sliceStorage[T any] struct {
	slots []slot[T]
}

func (s *sliceStorage[T]) len() int { return len(s.slots) }

func (s *sliceStorage[T]) at(pos uint32) *slot[T] { return &s.slots[pos] }

func (s *sliceStorage[T]) grow() *slot[T] {
	s.slots = append(s.slots, slot[T]{})
	return &s.slots[len(s.slots)-1]
}

func (s *sliceStorage[T]) reserve(n int) {
	s.slots = slices.Grow(s.slots, n)
}

func (s *sliceStorage[T]) clone() storage[T] {
	return &sliceStorage[T]{slots: slices.Clone(s.slots)}
}

type hashStorage[T any] struct {
	slots map[uint32]*slot[T]
	n     uint32
}

func (s *hashStorage[T]) len() int { return int(s.n) }

func (s *hashStorage[T]) at(pos uint32) *slot[T] { return s.slots[pos] }

func (s *hashStorage[T]) grow() *slot[T] {
	sl := &slot[T]{}
	s.slots[s.n] = sl
	s.n++
	return sl
}

func (s *hashStorage[T]) reserve(n int) {
	if n <= 0 {
		return
	}
	grown := make(map[uint32]*slot[T], len(s.slots)+n)
	maps.Copy(grown, s.slots)
	s.slots = grown
}

func (s *hashStorage[T]) clone() storage[T] {
	cp := &hashStorage[T]{slots: make(map[uint32]*slot[T], len(s.slots)), n: s.n}
	for pos, sl := range s.slots {
		dup := *sl
		cp.slots[pos] = &dup
	}
	return cp
}
