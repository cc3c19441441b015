package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []Backend{BackendSlice, BackendSegmented, BackendHash}

func TestArena_InsertGet(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			a := New[string](WithBackend(b))

			i1 := a.Insert("a")
			i2 := a.Insert("b")

			require.NotEqual(t, i1, i2)
			assert.False(t, i1.IsZero())
			assert.Equal(t, 2, a.Len())

			v, ok := a.Get(i1)
			require.True(t, ok)
			assert.Equal(t, "a", *v)

			*v = "c"
			v, ok = a.Get(i1)
			require.True(t, ok)
			assert.Equal(t, "c", *v)
		})
	}
}

func TestArena_ZeroIndexNeverResolves(t *testing.T) {
	a := New[int]()
	a.Insert(1)

	_, ok := a.Get(Index{})
	assert.False(t, ok)
	assert.False(t, a.Contains(Index{}))

	_, ok = a.Remove(Index{})
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())
}

func TestArena_RemoveIsIdempotent(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			a := New[int](WithBackend(b))
			idx := a.Insert(7)

			v, ok := a.Remove(idx)
			require.True(t, ok)
			assert.Equal(t, 7, v)

			_, ok = a.Remove(idx)
			assert.False(t, ok)
			assert.Equal(t, 0, a.Len())
		})
	}
}

func TestArena_ABA(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			a := New[int](WithBackend(b))
			old := a.Insert(1)
			_, ok := a.Remove(old)
			require.True(t, ok)

			reused := a.Insert(2)
			assert.Equal(t, old.Slot(), reused.Slot(), "free slot should be reused")
			assert.Equal(t, old.Generation()+1, reused.Generation())

			_, ok = a.Get(old)
			assert.False(t, ok, "stale index must not see the new occupant")
			_, ok = a.Remove(old)
			assert.False(t, ok)

			v, ok := a.Get(reused)
			require.True(t, ok)
			assert.Equal(t, 2, *v)
		})
	}
}

func TestArena_FreeListIsLIFO(t *testing.T) {
	a := New[int]()
	i0 := a.Insert(0)
	i1 := a.Insert(1)
	a.Insert(2)

	a.Remove(i0)
	a.Remove(i1)

	assert.Equal(t, i1.Slot(), a.Insert(3).Slot())
	assert.Equal(t, i0.Slot(), a.Insert(4).Slot())
	assert.Equal(t, 3, a.Slots())
}

func TestArena_UnknownSlot(t *testing.T) {
	a := New[int]()
	a.Insert(1)

	_, ok := a.Get(NewIndex(99, 1))
	assert.False(t, ok)
}

func TestArena_GenerationExhaustionRetiresSlot(t *testing.T) {
	a := New[int]()
	idx := a.Insert(1)

	// Force the slot to its final generation.
	s := a.slots.at(idx.Slot())
	s.gen = math.MaxUint32
	last := NewIndex(idx.Slot(), math.MaxUint32)

	v, ok := a.Remove(last)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	next := a.Insert(2)
	assert.NotEqual(t, idx.Slot(), next.Slot(), "retired slot must not be reused")

	st := a.Stats()
	assert.Equal(t, 1, st.Retired)
	assert.Equal(t, 0, st.Free)
	assert.Equal(t, 2, st.Slots)

	_, ok = a.Get(last)
	assert.False(t, ok)
}

func TestArena_Clear(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			a := New[int](WithBackend(b))
			var idxs []Index
			for i := range 10 {
				idxs = append(idxs, a.Insert(i))
			}

			a.Clear()
			assert.Equal(t, 0, a.Len())
			for _, idx := range idxs {
				assert.False(t, a.Contains(idx))
			}

			// Storage is recycled, not grown.
			for i := range 10 {
				a.Insert(i)
			}
			assert.Equal(t, 10, a.Slots())
		})
	}
}

func TestArena_Clone(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			a := New[int](WithBackend(b))
			i1 := a.Insert(1)
			i2 := a.Insert(2)
			a.Remove(i1)

			c := a.Clone()
			v, ok := c.Get(i2)
			require.True(t, ok)
			assert.Equal(t, 2, *v)
			assert.False(t, c.Contains(i1))

			*v = 20
			orig, _ := a.Get(i2)
			assert.Equal(t, 2, *orig, "clone must not alias the original")

			// Both reuse the same free slot independently.
			assert.Equal(t, a.Insert(3), c.Insert(3))
		})
	}
}

func TestArena_AllInSlotOrder(t *testing.T) {
	a := New[int](WithBackend(BackendHash))
	var idxs []Index
	for i := range 5 {
		idxs = append(idxs, a.Insert(i*10))
	}
	a.Remove(idxs[2])

	var got []int
	for idx, v := range a.All() {
		assert.True(t, a.Contains(idx))
		got = append(got, *v)
	}
	assert.Equal(t, []int{0, 10, 30, 40}, got)
}

func TestArena_SegmentBoundary(t *testing.T) {
	a := New[int](WithBackend(BackendSegmented), WithCapacity(10))

	var idxs []Index
	for i := range segmentSize + 5 {
		idxs = append(idxs, a.Insert(i))
	}

	first, ok := a.Get(idxs[0])
	require.True(t, ok)

	for i, idx := range idxs {
		v, ok := a.Get(idx)
		require.True(t, ok)
		assert.Equal(t, i, *v)
	}

	// Growth never moves existing slots.
	again, _ := a.Get(idxs[0])
	assert.Same(t, first, again)
}

func TestArena_Stats(t *testing.T) {
	a := New[int]()
	i := a.Insert(1)
	a.Insert(2)
	a.Remove(i)
	a.Insert(3)

	st := a.Stats()
	assert.Equal(t, 2, st.Live)
	assert.Equal(t, 2, st.Slots)
	assert.Equal(t, uint64(3), st.Inserts)
	assert.Equal(t, uint64(1), st.Removes)
	assert.Equal(t, uint64(1), st.Reuses)
	assert.Contains(t, a.String(), "backend: slice")
}

func TestArena_LenTracksLiveSlots(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			a := New[int](WithBackend(b))
			var idxs []Index
			for i := range 3000 {
				idxs = append(idxs, a.Insert(i))
				if i%3 == 0 {
					a.Remove(idxs[i/2])
				}
			}
			// Stale and repeated removes must not move the count.
			a.Remove(idxs[0])
			a.Remove(Index{})

			assert.Equal(t, int(a.live.GetCardinality()), a.Len())
			st := a.Stats()
			assert.Equal(t, st.Slots-st.Free-st.Retired, a.Len())
			assert.Equal(t, int(st.Inserts-st.Removes), a.Len())

			c := a.Clone()
			assert.Equal(t, a.Len(), c.Len())
			c.Insert(-1)
			assert.Equal(t, a.Len()+1, c.Len())

			a.Clear()
			assert.Equal(t, 0, a.Len())
			a.Insert(1)
			assert.Equal(t, 1, a.Len())
		})
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		name string
		want Backend
	}{
		{"", BackendSlice},
		{"slice", BackendSlice},
		{"vec", BackendSlice},
		{"segmented", BackendSegmented},
		{"hash", BackendHash},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseBackend("btree")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestIndex(t *testing.T) {
	idx := NewIndex(7, 3)
	assert.Equal(t, uint32(7), idx.Slot())
	assert.Equal(t, uint32(3), idx.Generation())
	assert.Equal(t, idx, IndexFromUint64(idx.Uint64()))
	assert.Equal(t, "7:3", idx.String())
	assert.Equal(t, "none", Index{}.String())

	m := map[Index]int{idx: 1}
	assert.Equal(t, 1, m[NewIndex(7, 3)])
}
