// Package fastlist provides a doubly linked list with stable, generation-tagged
// handles.
//
// Items live in an arena (a slot map) instead of individual heap nodes, and
// are addressed by Index values rather than pointers. An Index stays valid
// until its item is removed; after that it is stale forever, even when the
// slot is reused by a later insertion. Operations given a stale Index report
// "not found" instead of touching the wrong item.
//
// # Quick Start
//
//	l := fastlist.New[string]()
//	a := l.PushBack("a")
//	b := l.PushBack("b")
//	l.InsertAfter(a, "a2")
//	l.Remove(b)
//	l.Remove(b) // false: already gone
//
//	for it := range l.Items() {
//	    fmt.Println(it.Index(), it.Value)
//	}
//
// # Handles
//
// Index values are comparable, can be copied freely and passed between
// goroutines. Extend returns the handles of the appended values, which makes
// it the natural way to hand out work before a concurrent phase.
//
// # Traversal
//
// Iterators (Items, Values, All, Forward, Backward) resolve links on every
// step. The item just yielded may be removed from inside the loop. Walker
// keeps traversal state without holding the list, for callers that need to
// mutate the list between steps.
//
// # Concurrency
//
// List has no internal synchronization. Share it through Locked, which
// guards it with a single sync.RWMutex and offers RemoveAll for fan-out
// removal with golang.org/x/sync/errgroup.
//
// # Storage Backends
//
//   - BackendSlice (default): one contiguous slice
//   - BackendSegmented: fixed-size segments; *Item pointers survive growth
//   - BackendHash: hash map keyed by slot position
//
// Live slots are tracked in a roaring bitmap, so Clear and Unordered only
// visit occupied slots.
//
// # Persistence
//
// The snapshot subpackage writes a list to a checksummed, optionally
// LZ4- or Zstandard-compressed stream and reads it back.
package fastlist
