// Package arena provides a generation-tagged slot map.
//
// Values are stored in slots of a backing storage and addressed by an Index,
// the pair (slot position, generation). Freed slots are recycled through an
// intrusive free list; every time a slot is freed its generation is bumped,
// so an Index issued before the free can never resolve to the slot's next
// occupant.
//
// # Features
//
//   - O(1) insert, remove and lookup
//   - Pluggable backing storage (slice, segmented, hash)
//   - Roaring occupancy bitmap for ordered iteration over live slots
//   - Generation exhaustion retires a slot instead of wrapping
//
// # Safety
//
// No method panics on an invalid Index; lookups on stale or unknown indices
// simply miss.
//
// # Concurrency Model
//
// Arena performs no synchronization. Callers that share an Arena between
// goroutines must serialize every call, reads included, behind one lock.
//
// # Memory Management
//
// Slots are created lazily when the free list is empty and recycled through
// the free list afterwards. Storage is never shrunk; Clear frees every live
// slot but keeps the backing storage for reuse.
package arena
