package fastlist

// Walker is a traversal state that does not hold the list: the list is
// supplied on every step, so callers are free to mutate it between steps.
//
// Each step resolves the current handle against the live list. If the
// current item was removed in the meantime the walk ends.
type Walker[T any] struct {
	current Index
	dir     Direction
}

// NewWalker starts a walk at start. The start itself is not yielded.
func NewWalker[T any](start Index, dir Direction) *Walker[T] {
	return &Walker[T]{current: start, dir: dir}
}

// Next advances one step and returns the handle reached.
func (w *Walker[T]) Next(l *List[T]) (Index, bool) {
	if w.current.IsZero() {
		return Index{}, false
	}

	it := l.item(w.current)
	if it == nil {
		w.current = Index{}
		return Index{}, false
	}

	if w.dir == Backward {
		w.current = it.prev
	} else {
		w.current = it.next
	}
	return w.current, !w.current.IsZero()
}

// Current returns the last handle reached (the start before the first step).
func (w *Walker[T]) Current() Index { return w.current }
