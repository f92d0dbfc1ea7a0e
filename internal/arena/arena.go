package arena

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/hupe1980/hashintern/internal/conv"
	"github.com/hupe1980/hashintern/internal/mem"
)

// ErrCapacity is returned when an append would exceed the arena's limits.
var ErrCapacity = errors.New("arena: capacity exceeded")

const (
	// DefaultWordLen is the average entry length assumed when only an entry
	// count is given as a capacity hint.
	DefaultWordLen = 10

	minBufferCap = 64
	minEndsCap   = 8
)

// Component names reported in GrowEvent.
const (
	ComponentBuffer = "buffer"
	ComponentEnds   = "ends"
)

// Limits bounds the number of entries and the number of stored bytes.
// A zero field means "no limit beyond the int range".
type Limits struct {
	MaxEntries int
	MaxBytes   int
}

// GrowEvent describes one reallocation of the buffer or the end offsets.
type GrowEvent struct {
	Component string
	OldCap    int
	NewCap    int
}

// Stats tracks arena memory usage.
type Stats struct {
	Entries       int    // number of stored entries
	BytesUsed     int    // bytes occupied by entries
	BytesReserved int    // buffer capacity
	EndsReserved  int    // capacity of the end offsets
	BufferGrows   uint64 // buffer reallocations
	EndsGrows     uint64 // end offset reallocations
}

// Arena is an append-only byte arena with index addressing.
type Arena struct {
	buf         []byte
	ends        []int
	limits      Limits
	onGrow      func(GrowEvent)
	bufferGrows uint64
	endsGrows   uint64
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithLimits sets the entry and byte limits.
func WithLimits(l Limits) Option {
	return func(a *Arena) {
		a.limits = l
	}
}

// WithGrowHook registers fn to be called after every reallocation.
func WithGrowHook(fn func(GrowEvent)) Option {
	return func(a *Arena) {
		a.onGrow = fn
	}
}

// New creates an Arena with room for the given number of entries and bytes.
// If bytes is 0, it is derived from entries using DefaultWordLen.
func New(entries, bytes int, opts ...Option) *Arena {
	a := &Arena{}
	for _, opt := range opts {
		opt(a)
	}
	if a.limits.MaxEntries <= 0 {
		a.limits.MaxEntries = math.MaxInt
	}
	if a.limits.MaxBytes <= 0 {
		a.limits.MaxBytes = math.MaxInt
	}

	if entries < 0 {
		entries = 0
	}
	if bytes <= 0 && entries > 0 && entries <= math.MaxInt/DefaultWordLen {
		bytes = entries * DefaultWordLen
	}
	if entries > 0 {
		a.ends = make([]int, 0, entries)
	}
	if bytes > 0 {
		a.buf = mem.AllocAligned(bytes)[:0]
	}
	return a
}

// Len returns the number of entries.
func (a *Arena) Len() int { return len(a.ends) }

// IsEmpty reports whether the arena holds no entries.
func (a *Arena) IsEmpty() bool { return len(a.ends) == 0 }

// Size returns the number of bytes occupied by entries.
func (a *Arena) Size() int { return len(a.buf) }

// Cap returns the capacity of the byte buffer.
func (a *Arena) Cap() int { return cap(a.buf) }

// Limits returns the configured limits.
func (a *Arena) Limits() Limits { return a.limits }

// Append stores b after the last entry and returns the new entry's index.
// The bytes are copied; b may be reused by the caller afterwards.
func (a *Arena) Append(b []byte) (int, error) {
	idx := len(a.ends)
	if idx >= a.limits.MaxEntries {
		return 0, fmt.Errorf("%w: entry limit %d reached", ErrCapacity, a.limits.MaxEntries)
	}

	end, err := conv.AddInt(len(a.buf), len(b))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	if end > a.limits.MaxBytes {
		return 0, fmt.Errorf("%w: %d bytes exceed byte limit %d", ErrCapacity, end, a.limits.MaxBytes)
	}

	if end > cap(a.buf) {
		a.growBuffer(end)
	}
	if idx == cap(a.ends) {
		a.growEnds(idx + 1)
	}

	a.buf = append(a.buf, b...)
	a.ends = append(a.ends, end)
	return idx, nil
}

// Span returns the half-open byte range [start, end) of entry i.
func (a *Arena) Span(i int) (start, end int, ok bool) {
	if i < 0 || i >= len(a.ends) {
		return 0, 0, false
	}
	end = a.ends[i]
	if i > 0 {
		start = a.ends[i-1]
	}
	return start, end, true
}

// Bytes returns the bytes of entry i. The returned slice is capacity-capped
// and must not be modified.
func (a *Arena) Bytes(i int) ([]byte, bool) {
	start, end, ok := a.Span(i)
	if !ok {
		return nil, false
	}
	return a.buf[start:end:end], true
}

// BytesUnchecked returns the bytes of entry i without a bounds check on i
// beyond Go's own; it panics for an index that was never issued.
func (a *Arena) BytesUnchecked(i int) []byte {
	end := a.ends[i]
	start := 0
	if i > 0 {
		start = a.ends[i-1]
	}
	return a.buf[start:end:end]
}

// All yields every entry index with its bytes in insertion order.
func (a *Arena) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		start := 0
		for i, end := range a.ends {
			if !yield(i, a.buf[start:end:end]) {
				return
			}
			start = end
		}
	}
}

// Reserve makes room for at least the given number of additional entries
// and bytes without further reallocation.
func (a *Arena) Reserve(entries, bytes int) {
	if bytes > 0 && len(a.buf)+bytes > cap(a.buf) && len(a.buf) <= math.MaxInt-bytes {
		a.growBuffer(len(a.buf) + bytes)
	}
	if entries > 0 && len(a.ends)+entries > cap(a.ends) && len(a.ends) <= math.MaxInt-entries {
		a.growEnds(len(a.ends) + entries)
	}
}

// ShrinkToFit reallocates the buffer and the end offsets to their lengths.
func (a *Arena) ShrinkToFit() {
	if cap(a.buf) > len(a.buf) {
		nb := mem.AllocAligned(len(a.buf))
		copy(nb, a.buf)
		a.buf = nb
	}
	if cap(a.ends) > len(a.ends) {
		ne := make([]int, len(a.ends))
		copy(ne, a.ends)
		a.ends = ne
	}
}

// Clone returns a deep copy sharing no memory with a.
func (a *Arena) Clone() *Arena {
	c := &Arena{
		limits:      a.limits,
		onGrow:      a.onGrow,
		bufferGrows: a.bufferGrows,
		endsGrows:   a.endsGrows,
	}
	if cap(a.buf) > 0 {
		c.buf = mem.AllocAligned(cap(a.buf))[:len(a.buf)]
		copy(c.buf, a.buf)
	}
	if cap(a.ends) > 0 {
		c.ends = make([]int, len(a.ends), cap(a.ends))
		copy(c.ends, a.ends)
	}
	return c
}

// SetGrowHook replaces the growth callback (used after Clone).
func (a *Arena) SetGrowHook(fn func(GrowEvent)) { a.onGrow = fn }

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return Stats{
		Entries:       len(a.ends),
		BytesUsed:     len(a.buf),
		BytesReserved: cap(a.buf),
		EndsReserved:  cap(a.ends),
		BufferGrows:   a.bufferGrows,
		EndsGrows:     a.endsGrows,
	}
}

// Usage returns the buffer usage percentage.
func (a *Arena) Usage() float64 {
	if cap(a.buf) == 0 {
		return 0
	}
	return float64(len(a.buf)) / float64(cap(a.buf)) * 100
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf(
		"Arena{entries: %d, used: %d B, reserved: %d B, usage: %.1f%%, grows: %d/%d}",
		s.Entries, s.BytesUsed, s.BytesReserved, a.Usage(), s.BufferGrows, s.EndsGrows,
	)
}

func (a *Arena) growBuffer(need int) {
	oldCap := cap(a.buf)
	newCap := nextCap(oldCap, need, minBufferCap)

	nb := mem.AllocAligned(newCap)[:len(a.buf)]
	copy(nb, a.buf)
	a.buf = nb
	a.bufferGrows++

	if a.onGrow != nil {
		a.onGrow(GrowEvent{Component: ComponentBuffer, OldCap: oldCap, NewCap: newCap})
	}
}

func (a *Arena) growEnds(need int) {
	oldCap := cap(a.ends)
	newCap := nextCap(oldCap, need, minEndsCap)

	ne := make([]int, len(a.ends), newCap)
	copy(ne, a.ends)
	a.ends = ne
	a.endsGrows++

	if a.onGrow != nil {
		a.onGrow(GrowEvent{Component: ComponentEnds, OldCap: oldCap, NewCap: newCap})
	}
}

// nextCap doubles oldCap until it covers need, starting at minCap.
func nextCap(oldCap, need, minCap int) int {
	newCap := oldCap
	if newCap < minCap {
		newCap = minCap
	}
	for newCap < need {
		if newCap > math.MaxInt/2 {
			return need
		}
		newCap *= 2
	}
	return newCap
}
