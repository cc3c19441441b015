package fastlist

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/fastlist/internal/arena"
)

// Index is a stable, generation-tagged handle to a list item.
//
// Indices are plain comparable values: they can be copied, used as map keys
// and passed between goroutines freely. The zero Index means "none".
type Index = arena.Index

// Backend selects the storage strategy of a list's arena.
type Backend = arena.Backend

// ArenaStats reports slot usage of a list's arena.
type ArenaStats = arena.Stats

const (
	// BackendSlice stores items in one growable slice (default).
	BackendSlice = arena.BackendSlice
	// BackendSegmented stores items in fixed-size segments.
	BackendSegmented = arena.BackendSegmented
	// BackendHash stores items in a hash map keyed by slot position.
	BackendHash = arena.BackendHash
)

// ParseBackend maps a configuration string ("slice", "segmented", "hash")
// to a Backend.
func ParseBackend(name string) (Backend, error) {
	return arena.ParseBackend(name)
}

// IndexFromUint64 unpacks an Index produced by Index.Uint64.
func IndexFromUint64(v uint64) Index {
	return arena.IndexFromUint64(v)
}

// Item is one list node: a value plus links to its neighbors.
type Item[T any] struct {
	Value T

	index Index
	next  Index
	prev  Index
}

// Index returns the handle of the item.
func (it *Item[T]) Index() Index { return it.index }

// Next returns the handle of the following item, if any.
func (it *Item[T]) Next() (Index, bool) { return it.next, !it.next.IsZero() }

// Prev returns the handle of the preceding item, if any.
func (it *Item[T]) Prev() (Index, bool) { return it.prev, !it.prev.IsZero() }

// List is a doubly linked list whose items live in a generation-tagged arena.
//
// Every operation taking an Index treats a stale or unknown handle as "not
// found": it returns a zero value and false and leaves the list untouched.
// Inserting or removing an item never changes the Index of any other item.
//
// List is not safe for concurrent use; wrap it in Locked (or any single
// external lock) when sharing it between goroutines.
type List[T any] struct {
	items   *arena.Arena[Item[T]]
	head    Index
	tail    Index
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty list.
func New[T any](opts ...Option) *List[T] {
	o := options{
		metricsCollector: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}

	return &List[T]{
		items:   arena.New[Item[T]](o.arenaOptions()...),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// NewWithCapacity creates an empty list with storage reserved for n items.
func NewWithCapacity[T any](n int, opts ...Option) *List[T] {
	return New[T](append([]Option{WithCapacity(n)}, opts...)...)
}

// derive returns an empty list sharing l's configuration.
func (l *List[T]) derive() *List[T] {
	return &List[T]{
		items:   arena.New[Item[T]](arena.WithBackend(l.items.Backend())),
		logger:  l.logger,
		metrics: l.metrics,
	}
}

func (l *List[T]) stale(op string, idx Index) {
	if l.logger != nil {
		l.logger.LogStale(op, idx)
	}
}

func (l *List[T]) item(idx Index) *Item[T] {
	it, ok := l.items.Get(idx)
	if !ok {
		return nil
	}
	return it
}

// attach links the detached item it (stored at idx) between prev and next.
func (l *List[T]) attach(idx Index, it *Item[T], prev, next Index) {
	it.prev = prev
	it.next = next

	if prev.IsZero() {
		l.head = idx
	} else {
		l.item(prev).next = idx
	}

	if next.IsZero() {
		l.tail = idx
	} else {
		l.item(next).prev = idx
	}
}

// detach unlinks it from its neighbors, fixing head/tail at the boundaries.
func (l *List[T]) detach(it *Item[T]) {
	if it.prev.IsZero() {
		l.head = it.next
	} else {
		l.item(it.prev).next = it.next
	}

	if it.next.IsZero() {
		l.tail = it.prev
	} else {
		l.item(it.next).prev = it.prev
	}

	it.prev, it.next = Index{}, Index{}
}

// link allocates v and splices it between prev and next.
func (l *List[T]) link(v T, prev, next Index) Index {
	idx := l.items.InsertWithKey(func(idx Index) Item[T] {
		return Item[T]{Value: v, index: idx}
	})
	// Neighbors are looked up again: growth may have moved them.
	l.attach(idx, l.item(idx), prev, next)
	return idx
}

// take unlinks and frees idx without recording metrics.
func (l *List[T]) take(idx Index) (T, bool) {
	it := l.item(idx)
	if it == nil {
		var zero T
		return zero, false
	}
	l.detach(it)
	removed, _ := l.items.Remove(idx)
	return removed.Value, true
}

// PushBack appends v and returns its Index.
func (l *List[T]) PushBack(v T) Index {
	idx := l.link(v, l.tail, Index{})
	l.metrics.RecordInsert(1)
	return idx
}

// PushFront prepends v and returns its Index.
func (l *List[T]) PushFront(v T) Index {
	idx := l.link(v, Index{}, l.head)
	l.metrics.RecordInsert(1)
	return idx
}

// InsertAfter links v right after at. It returns false, without changing
// the list, when at is stale.
func (l *List[T]) InsertAfter(at Index, v T) (Index, bool) {
	it := l.item(at)
	if it == nil {
		l.stale("insert_after", at)
		return Index{}, false
	}
	idx := l.link(v, at, it.next)
	l.metrics.RecordInsert(1)
	return idx, true
}

// InsertBefore links v right before at. It returns false, without changing
// the list, when at is stale.
func (l *List[T]) InsertBefore(at Index, v T) (Index, bool) {
	it := l.item(at)
	if it == nil {
		l.stale("insert_before", at)
		return Index{}, false
	}
	idx := l.link(v, it.prev, at)
	l.metrics.RecordInsert(1)
	return idx, true
}

// Remove unlinks the item behind idx and returns its value.
//
// Remove is idempotent: once an item is gone every further Remove with the
// same (or any copied) Index reports false.
func (l *List[T]) Remove(idx Index) (T, bool) {
	v, ok := l.take(idx)
	if !ok {
		l.stale("remove", idx)
	}
	l.metrics.RecordRemove(ok)
	return v, ok
}

// PopFront removes and returns the first value.
func (l *List[T]) PopFront() (T, bool) {
	if l.head.IsZero() {
		var zero T
		l.metrics.RecordRemove(false)
		return zero, false
	}
	return l.Remove(l.head)
}

// PopBack removes and returns the last value.
func (l *List[T]) PopBack() (T, bool) {
	if l.tail.IsZero() {
		var zero T
		l.metrics.RecordRemove(false)
		return zero, false
	}
	return l.Remove(l.tail)
}

// Extend appends values in order and returns their indices in the same order.
//
// The returned slice is an owned snapshot of handles: it stays meaningful
// while other goroutines mutate the list, which makes it the way to hand out
// work before a concurrent phase.
func (l *List[T]) Extend(values ...T) []Index {
	idxs := make([]Index, 0, len(values))
	for _, v := range values {
		idxs = append(idxs, l.link(v, l.tail, Index{}))
	}
	l.metrics.RecordInsert(len(idxs))
	return idxs
}

// ExtendSeq appends every value produced by seq.
func (l *List[T]) ExtendSeq(seq iter.Seq[T]) []Index {
	var idxs []Index
	for v := range seq {
		idxs = append(idxs, l.link(v, l.tail, Index{}))
	}
	l.metrics.RecordInsert(len(idxs))
	return idxs
}

// ExtendFront pushes each value to the front in turn, so the last value ends
// up first. Indices are returned in argument order.
func (l *List[T]) ExtendFront(values ...T) []Index {
	idxs := make([]Index, 0, len(values))
	for _, v := range values {
		idxs = append(idxs, l.link(v, Index{}, l.head))
	}
	l.metrics.RecordInsert(len(idxs))
	return idxs
}

// MoveToFront relinks idx as the first item.
func (l *List[T]) MoveToFront(idx Index) bool {
	it := l.item(idx)
	if it == nil {
		return l.moveFailed(idx)
	}
	if l.head != idx {
		l.detach(it)
		l.attach(idx, it, Index{}, l.head)
	}
	l.metrics.RecordMove(true)
	return true
}

// MoveToBack relinks idx as the last item.
func (l *List[T]) MoveToBack(idx Index) bool {
	it := l.item(idx)
	if it == nil {
		return l.moveFailed(idx)
	}
	if l.tail != idx {
		l.detach(it)
		l.attach(idx, it, l.tail, Index{})
	}
	l.metrics.RecordMove(true)
	return true
}

// MoveAfter relinks idx right after mark. Both handles must be live and
// distinct.
func (l *List[T]) MoveAfter(idx, mark Index) bool {
	it, m, ok := l.movePair(idx, mark)
	if !ok {
		return false
	}
	if m.next != idx {
		l.detach(it)
		l.attach(idx, it, mark, m.next)
	}
	l.metrics.RecordMove(true)
	return true
}

// MoveBefore relinks idx right before mark. Both handles must be live and
// distinct.
func (l *List[T]) MoveBefore(idx, mark Index) bool {
	it, m, ok := l.movePair(idx, mark)
	if !ok {
		return false
	}
	if m.prev != idx {
		l.detach(it)
		l.attach(idx, it, m.prev, mark)
	}
	l.metrics.RecordMove(true)
	return true
}

func (l *List[T]) movePair(idx, mark Index) (*Item[T], *Item[T], bool) {
	if idx == mark {
		l.metrics.RecordMove(false)
		return nil, nil, false
	}
	it := l.item(idx)
	if it == nil {
		return nil, nil, l.moveFailed(idx)
	}
	m := l.item(mark)
	if m == nil {
		return nil, nil, l.moveFailed(mark)
	}
	return it, m, true
}

func (l *List[T]) moveFailed(idx Index) bool {
	l.stale("move", idx)
	l.metrics.RecordMove(false)
	return false
}

// SplitOff moves at and every item after it into a new list, which is
// returned. Moved items get new indices in the new list; their old indices
// become stale. A stale at yields an empty list and leaves l unchanged.
func (l *List[T]) SplitOff(at Index) *List[T] {
	out := l.derive()
	if !l.items.Contains(at) {
		l.stale("split_off", at)
		return out
	}

	moved := 0
	for cur := at; !cur.IsZero(); moved++ {
		next := l.item(cur).next
		v, _ := l.take(cur)
		out.link(v, out.tail, Index{})
		cur = next
	}

	if l.logger != nil {
		l.logger.LogSplit(at, moved)
	}
	return out
}

// Retain removes every item for which keep returns false. keep may modify
// the value it is given.
func (l *List[T]) Retain(keep func(v *T) bool) {
	dropped := l.retain(keep)
	for range dropped {
		l.metrics.RecordRemove(true)
	}
}

// Filter returns a copy of the list holding only the items for which keep
// returns true. l is left unchanged; keep sees the copy's values. Kept items
// have the same indices in the copy as in l.
func (l *List[T]) Filter(keep func(v *T) bool) *List[T] {
	out := l.Clone()
	out.retain(keep)
	return out
}

// retain unlinks every item rejected by keep and returns how many it dropped.
func (l *List[T]) retain(keep func(v *T) bool) int {
	dropped := 0
	for cur := l.head; !cur.IsZero(); {
		it := l.item(cur)
		next := it.next
		if !keep(&it.Value) {
			l.take(cur)
			dropped++
		}
		cur = next
	}
	return dropped
}

// Clear removes every item. All outstanding indices become stale.
func (l *List[T]) Clear() {
	l.items.Clear()
	l.head, l.tail = Index{}, Index{}
}

// Clone returns a copy of the list. Values are copied with plain assignment,
// and every Index valid in l is valid, for the same value, in the clone.
func (l *List[T]) Clone() *List[T] {
	return &List[T]{
		items:   l.items.Clone(),
		head:    l.head,
		tail:    l.tail,
		logger:  l.logger,
		metrics: l.metrics,
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int { return l.items.Len() }

// IsEmpty reports whether the list has no items.
func (l *List[T]) IsEmpty() bool { return l.head.IsZero() }

// Contains reports whether idx refers to a live item.
func (l *List[T]) Contains(idx Index) bool { return l.items.Contains(idx) }

// HeadIndex returns the handle of the first item.
func (l *List[T]) HeadIndex() (Index, bool) { return l.head, !l.head.IsZero() }

// TailIndex returns the handle of the last item.
func (l *List[T]) TailIndex() (Index, bool) { return l.tail, !l.tail.IsZero() }

// Head returns the first item.
func (l *List[T]) Head() (*Item[T], bool) { return l.Get(l.head) }

// Tail returns the last item.
func (l *List[T]) Tail() (*Item[T], bool) { return l.Get(l.tail) }

// Get returns the item behind idx.
//
// The pointer is only valid until the next insertion when the list uses
// BackendSlice; links must not be relied on across mutations.
func (l *List[T]) Get(idx Index) (*Item[T], bool) {
	it := l.item(idx)
	return it, it != nil
}

// GetMut returns a pointer to the value behind idx.
func (l *List[T]) GetMut(idx Index) (*T, bool) {
	it := l.item(idx)
	if it == nil {
		return nil, false
	}
	return &it.Value, true
}

// NextOf returns the item following idx.
func (l *List[T]) NextOf(idx Index) (*Item[T], bool) {
	next, ok := l.CursorNext(idx)
	if !ok {
		return nil, false
	}
	return l.Get(next)
}

// PrevOf returns the item preceding idx.
func (l *List[T]) PrevOf(idx Index) (*Item[T], bool) {
	prev, ok := l.CursorPrev(idx)
	if !ok {
		return nil, false
	}
	return l.Get(prev)
}

// CursorNext returns the handle following idx.
func (l *List[T]) CursorNext(idx Index) (Index, bool) {
	it := l.item(idx)
	if it == nil {
		return Index{}, false
	}
	return it.Next()
}

// CursorPrev returns the handle preceding idx.
func (l *List[T]) CursorPrev(idx Index) (Index, bool) {
	it := l.item(idx)
	if it == nil {
		return Index{}, false
	}
	return it.Prev()
}

// Nth returns the handle at position n, walking from whichever end is closer.
func (l *List[T]) Nth(n int) (Index, bool) {
	size := l.Len()
	if n < 0 || n >= size {
		return Index{}, false
	}

	if n < size/2 {
		cur := l.head
		for range n {
			cur = l.item(cur).next
		}
		return cur, true
	}

	cur := l.tail
	for range size - n - 1 {
		cur = l.item(cur).prev
	}
	return cur, true
}

// Stats returns slot usage of the underlying arena.
func (l *List[T]) Stats() ArenaStats {
	return l.items.Stats()
}

func (l *List[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for cur, first := l.head, true; !cur.IsZero(); first = false {
		it := l.item(cur)
		if !first {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, it.Value)
		cur = it.next
	}
	sb.WriteByte(']')
	return sb.String()
}
