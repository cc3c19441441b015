package fastlist

// SecondaryMap associates extra data with list items without touching the
// list. Storage is dense by slot position, so it suits data attached to most
// items.
//
// Entries are generation-aware: a value stored under an Index is invisible to
// any other generation of the same slot. Storing under a newer generation
// replaces it; storing under an older one is ignored.
type SecondaryMap[V any] struct {
	slots []secondarySlot[V]
	n     int
}

type secondarySlot[V any] struct {
	value V
	gen   uint32
}

// NewSecondaryMap creates an empty SecondaryMap.
func NewSecondaryMap[V any]() *SecondaryMap[V] {
	return &SecondaryMap[V]{}
}

// Insert stores v under idx. It returns the previous value stored under the
// same Index, if any. Inserting under the zero Index, or under an Index older
// than the stored entry, is a no-op.
func (m *SecondaryMap[V]) Insert(idx Index, v V) (V, bool) {
	var zero V
	if idx.IsZero() {
		return zero, false
	}

	pos := int(idx.Slot())
	if pos >= len(m.slots) {
		m.slots = append(m.slots, make([]secondarySlot[V], pos+1-len(m.slots))...)
	}

	s := &m.slots[pos]
	switch {
	case s.gen == idx.Generation():
		old := s.value
		s.value = v
		return old, true
	case s.gen > idx.Generation():
		// Generations only grow per slot: idx is stale.
		return zero, false
	case s.gen == 0:
		m.n++
	}
	// An older generation is an entry for a dead item; overwrite it.
	s.value = v
	s.gen = idx.Generation()
	return zero, false
}

// Get returns the value stored under idx.
func (m *SecondaryMap[V]) Get(idx Index) (V, bool) {
	if s := m.lookup(idx); s != nil {
		return s.value, true
	}
	var zero V
	return zero, false
}

// Remove deletes and returns the value stored under idx.
func (m *SecondaryMap[V]) Remove(idx Index) (V, bool) {
	var zero V
	s := m.lookup(idx)
	if s == nil {
		return zero, false
	}
	v := s.value
	*s = secondarySlot[V]{}
	m.n--
	return v, true
}

// Contains reports whether a value is stored under idx.
func (m *SecondaryMap[V]) Contains(idx Index) bool {
	return m.lookup(idx) != nil
}

// Len returns the number of stored entries, including entries whose item
// has since been removed from the list.
func (m *SecondaryMap[V]) Len() int { return m.n }

func (m *SecondaryMap[V]) lookup(idx Index) *secondarySlot[V] {
	if idx.IsZero() || int(idx.Slot()) >= len(m.slots) {
		return nil
	}
	s := &m.slots[idx.Slot()]
	if s.gen != idx.Generation() {
		return nil
	}
	return s
}

// SparseSecondaryMap is a SecondaryMap backed by a hash map, for data that is
// attached to few items.
type SparseSecondaryMap[V any] struct {
	entries map[uint32]secondarySlot[V]
}

// NewSparseSecondaryMap creates an empty SparseSecondaryMap.
func NewSparseSecondaryMap[V any]() *SparseSecondaryMap[V] {
	return &SparseSecondaryMap[V]{entries: make(map[uint32]secondarySlot[V])}
}

// Insert stores v under idx. It returns the previous value stored under the
// same Index, if any. An Index older than the stored entry is ignored.
func (m *SparseSecondaryMap[V]) Insert(idx Index, v V) (V, bool) {
	var zero V
	if idx.IsZero() {
		return zero, false
	}
	old, ok := m.entries[idx.Slot()]
	if ok && old.gen > idx.Generation() {
		return zero, false
	}
	m.entries[idx.Slot()] = secondarySlot[V]{value: v, gen: idx.Generation()}
	if ok && old.gen == idx.Generation() {
		return old.value, true
	}
	return zero, false
}

// Get returns the value stored under idx.
func (m *SparseSecondaryMap[V]) Get(idx Index) (V, bool) {
	s, ok := m.entries[idx.Slot()]
	if !ok || idx.IsZero() || s.gen != idx.Generation() {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Remove deletes and returns the value stored under idx.
func (m *SparseSecondaryMap[V]) Remove(idx Index) (V, bool) {
	v, ok := m.Get(idx)
	if ok {
		delete(m.entries, idx.Slot())
	}
	return v, ok
}

// Contains reports whether a value is stored under idx.
func (m *SparseSecondaryMap[V]) Contains(idx Index) bool {
	_, ok := m.Get(idx)
	return ok
}

// Len returns the number of stored entries.
func (m *SparseSecondaryMap[V]) Len() int { return len(m.entries) }
