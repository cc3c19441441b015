package fastlist

import "iter"

// Direction selects which link a traversal follows.
type Direction uint8

const (
	// Forward follows next links toward the tail.
	Forward Direction = iota
	// Backward follows prev links toward the head.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// IndicesFrom yields start and every handle reached by following links in
// direction d. Each step reads the live links; nothing is buffered, so
// mutation between steps is observed as-is. Removing the handle just yielded
// is allowed; if its successor is removed the sequence ends. A stale start
// yields nothing.
func (l *List[T]) IndicesFrom(start Index, d Direction) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for cur := start; ; {
			it := l.item(cur)
			if it == nil {
				return
			}
			// The successor is read before yielding so the caller may remove cur.
			next := it.next
			if d == Backward {
				next = it.prev
			}
			if !yield(cur) {
				return
			}
			cur = next
		}
	}
}

// ItemsFrom is IndicesFrom resolved to items.
func (l *List[T]) ItemsFrom(start Index, d Direction) iter.Seq[*Item[T]] {
	return func(yield func(*Item[T]) bool) {
		for idx := range l.IndicesFrom(start, d) {
			it := l.item(idx)
			if it == nil || !yield(it) {
				return
			}
		}
	}
}

// Forward iterates items from start toward the tail, start included.
func (l *List[T]) Forward(start Index) iter.Seq[*Item[T]] {
	return l.ItemsFrom(start, Forward)
}

// Backward iterates items from start toward the head, start included.
func (l *List[T]) Backward(start Index) iter.Seq[*Item[T]] {
	return l.ItemsFrom(start, Backward)
}

// Items iterates items from head to tail.
func (l *List[T]) Items() iter.Seq[*Item[T]] {
	return l.ItemsFrom(l.head, Forward)
}

// Values iterates values from head to tail.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := range l.Items() {
			if !yield(it.Value) {
				return
			}
		}
	}
}

// All iterates (index, value) pairs from head to tail.
func (l *List[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for it := range l.Items() {
			if !yield(it.index, it.Value) {
				return
			}
		}
	}
}

// Unordered iterates every item in storage order, ignoring links. The list
// must not be modified while iterating.
func (l *List[T]) Unordered() iter.Seq[*Item[T]] {
	return func(yield func(*Item[T]) bool) {
		for _, it := range l.items.All() {
			if !yield(it) {
				return
			}
		}
	}
}

// Indices returns the handles of all items from head to tail as an owned
// slice.
func (l *List[T]) Indices() []Index {
	idxs := make([]Index, 0, l.Len())
	for idx := range l.IndicesFrom(l.head, Forward) {
		idxs = append(idxs, idx)
	}
	return idxs
}
