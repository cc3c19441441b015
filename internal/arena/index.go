package arena

import "fmt"

// Index is a generation-tagged handle to an arena slot.
//
// The zero Index is never issued and never resolves; it doubles as "none".
type Index struct {
	slot uint32
	gen  uint32
}

// NewIndex builds an Index from its raw parts.
func NewIndex(slot, gen uint32) Index {
	return Index{slot: slot, gen: gen}
}

// IndexFromUint64 unpacks an Index produced by Index.Uint64.
func IndexFromUint64(v uint64) Index {
	return Index{slot: uint32(v), gen: uint32(v >> 32)} //nolint:gosec // intentional truncation
}

// Slot returns the slot position.
func (i Index) Slot() uint32 { return i.slot }

// Generation returns the generation the slot had when the Index was issued.
func (i Index) Generation() uint32 { return i.gen }

// IsZero reports whether i is the zero ("none") Index.
func (i Index) IsZero() bool { return i.gen == 0 }

// Uint64 packs the Index as generation<<32 | slot.
func (i Index) Uint64() uint64 {
	return uint64(i.gen)<<32 | uint64(i.slot)
}

func (i Index) String() string {
	if i.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", i.slot, i.gen)
}
