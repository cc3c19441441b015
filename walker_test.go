package fastlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalker_MutateBetweenSteps(t *testing.T) {
	l := New[int]()
	for i := range 101 {
		l.PushBack(i)
	}

	head, _ := l.Head()
	tail, _ := l.Tail()
	require.Equal(t, 0, head.Value)
	require.Equal(t, 100, tail.Value)

	tail.Value = 0
	tailIdx, _ := l.TailIndex()
	w := NewWalker[int](tailIdx, Backward)

	count := 0
	for {
		idx, ok := w.Next(l)
		if !ok {
			break
		}
		count++
		v, ok := l.GetMut(idx)
		require.True(t, ok)
		*v = count
	}

	assert.Equal(t, 100, count)
	head, _ = l.Head()
	tail, _ = l.Tail()
	assert.Equal(t, 100, head.Value)
	assert.Equal(t, 0, tail.Value)
}

func TestWalker_Forward(t *testing.T) {
	l := New[string]()
	idxs := l.Extend("a", "b", "c")

	w := NewWalker[string](idxs[0], Forward)
	assert.Equal(t, idxs[0], w.Current())

	idx, ok := w.Next(l)
	require.True(t, ok)
	assert.Equal(t, idxs[1], idx)

	// Items inserted ahead are picked up.
	inserted, _ := l.InsertAfter(idxs[1], "x")
	idx, ok = w.Next(l)
	require.True(t, ok)
	assert.Equal(t, inserted, idx)

	idx, ok = w.Next(l)
	require.True(t, ok)
	assert.Equal(t, idxs[2], idx)

	_, ok = w.Next(l)
	assert.False(t, ok)
	_, ok = w.Next(l)
	assert.False(t, ok)
}

func TestWalker_CurrentRemoved(t *testing.T) {
	l := New[int]()
	idxs := l.Extend(0, 1, 2)

	w := NewWalker[int](idxs[0], Forward)
	idx, ok := w.Next(l)
	require.True(t, ok)
	l.Remove(idx)

	_, ok = w.Next(l)
	assert.False(t, ok)
	assert.True(t, w.Current().IsZero())
}

func TestWalker_RemoveBehind(t *testing.T) {
	l := New[int]()
	idxs := l.Extend(0, 1, 2, 3)

	w := NewWalker[int](idxs[0], Forward)
	var seen []int
	for {
		idx, ok := w.Next(l)
		if !ok {
			break
		}
		prev, _ := l.CursorPrev(idx)
		l.Remove(prev)
		it, _ := l.Get(idx)
		seen = append(seen, it.Value)
	}
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, "[3]", l.String())
}
