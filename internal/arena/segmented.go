package arena

const (
	// segmentBits determines the size of each segment.
	// 10 bits = 1024 slots per segment.
	segmentBits = 10
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1
)

// segment is a fixed-size array of slots.
type segment[T any] struct {
	items [segmentSize]slot[T]
}

// segmentedStorage supports append-only growth and random access without
// ever moving a slot once allocated.
type segmentedStorage[T any] struct {
	segments []*segment[T]
	n        int
}

func (s *segmentedStorage[T]) len() int { return s.n }

func (s *segmentedStorage[T]) at(pos uint32) *slot[T] {
	return &s.segments[pos>>segmentBits].items[pos&segmentMask]
}

func (s *segmentedStorage[T]) grow() *slot[T] {
	segIdx := s.n >> segmentBits
	if segIdx >= len(s.segments) {
		s.segments = append(s.segments, &segment[T]{})
	}
	sl := &s.segments[segIdx].items[s.n&segmentMask]
	s.n++
	return sl
}

func (s *segmentedStorage[T]) reserve(n int) {
	if n <= 0 {
		return
	}
	need := (s.n + n + segmentMask) >> segmentBits
	for len(s.segments) < need {
		s.segments = append(s.segments, &segment[T]{})
	}
}

func (s *segmentedStorage[T]) clone() storage[T] {
	cp := &segmentedStorage[T]{segments: make([]*segment[T], len(s.segments)), n: s.n}
	for i, seg := range s.segments {
		dup := *seg
		cp.segments[i] = &dup
	}
	return cp
}
