package hashintern

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
//
// Interners time operations only when a collector is configured.
type MetricsCollector interface {
	// RecordIntern is called after each successful GetOrIntern.
	// hit is true if the value was already interned.
	RecordIntern(hit bool, duration time.Duration)

	// RecordRefused is called when a value is not interned.
	RecordRefused(err error)

	// RecordGrowth is called when the arena buffer, the end offsets or the
	// lookup table is reallocated.
	RecordGrowth(component string, oldCap, newCap int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIntern(bool, time.Duration) {}
func (NoopMetricsCollector) RecordRefused(error)              {}
func (NoopMetricsCollector) RecordGrowth(string, int, int)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InternCount      atomic.Int64
	InternHits       atomic.Int64
	InternTotalNanos atomic.Int64
	Refused          atomic.Int64
	Growths          atomic.Int64
}

// RecordIntern implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntern(hit bool, duration time.Duration) {
	b.InternCount.Add(1)
	b.InternTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.InternHits.Add(1)
	}
}

// RecordRefused implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefused(error) {
	b.Refused.Add(1)
}

// RecordGrowth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrowth(string, int, int) {
	b.Growths.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InternCount:    b.InternCount.Load(),
		InternHits:     b.InternHits.Load(),
		InternAvgNanos: b.getAvgInternNanos(),
		Refused:        b.Refused.Load(),
		Growths:        b.Growths.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInternNanos() int64 {
	count := b.InternCount.Load()
	if count == 0 {
		return 0
	}
	return b.InternTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InternCount    int64
	InternHits     int64
	InternAvgNanos int64
	Refused        int64
	Growths        int64
}
