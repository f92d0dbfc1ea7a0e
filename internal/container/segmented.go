// Package container implements container data structures.
package container

const (
	// segmentBits determines the size of each segment.
	// 10 bits = 1024 items per segment.
	segmentBits = 10
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1
)

// Segmented is an append-only array stored in fixed-size segments.
//
// Growing never moves existing items: a new segment is allocated when the
// last one is full and only the small segment directory is reallocated.
// It is not safe for concurrent mutation.
type Segmented[T any] struct {
	segments []*segment[T]
	n        int
}

type segment[T any] struct {
	items [segmentSize]T
}

// NewSegmented creates a Segmented array with room for capacity items
// before the segment directory has to grow.
func NewSegmented[T any](capacity int) *Segmented[T] {
	dirs := 0
	if capacity > 0 {
		dirs = (capacity + segmentMask) >> segmentBits
	}
	return &Segmented[T]{
		segments: make([]*segment[T], 0, dirs),
	}
}

// Len returns the number of items.
func (s *Segmented[T]) Len() int { return s.n }

// Cap returns the number of items that fit into the allocated segments.
func (s *Segmented[T]) Cap() int { return len(s.segments) << segmentBits }

// Segments returns the number of allocated segments.
func (s *Segmented[T]) Segments() int { return len(s.segments) }

// Append adds v at index Len() and returns that index.
func (s *Segmented[T]) Append(v T) int {
	idx := s.n
	segIdx := idx >> segmentBits
	if segIdx == len(s.segments) {
		s.segments = append(s.segments, &segment[T]{})
	}
	s.segments[segIdx].items[idx&segmentMask] = v
	s.n++
	return idx
}

// Get returns the item at the given index.
// Returns the zero value and false if index is out of bounds.
func (s *Segmented[T]) Get(index int) (T, bool) {
	if index < 0 || index >= s.n {
		var zero T
		return zero, false
	}
	return s.segments[index>>segmentBits].items[index&segmentMask], true
}

// At returns the item at the given index without a length check.
// It panics if index addresses an unallocated segment.
func (s *Segmented[T]) At(index int) T {
	return s.segments[index>>segmentBits].items[index&segmentMask]
}

// Clone returns a deep copy.
func (s *Segmented[T]) Clone() *Segmented[T] {
	c := &Segmented[T]{
		segments: make([]*segment[T], len(s.segments), cap(s.segments)),
		n:        s.n,
	}
	for i, seg := range s.segments {
		cp := *seg
		c.segments[i] = &cp
	}
	return c
}

// ShrinkToFit trims the segment directory to the allocated segments.
func (s *Segmented[T]) ShrinkToFit() {
	if cap(s.segments) == len(s.segments) {
		return
	}
	dirs := make([]*segment[T], len(s.segments))
	copy(dirs, s.segments)
	s.segments = dirs
}
