package hashintern

import (
	"log/slog"

	"github.com/hupe1980/hashintern/hasher"
)

type options struct {
	hasher           hasher.Hasher
	entries          int
	bytes            int
	maxEntries       int
	maxBytes         int
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		hasher: hasher.Default,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures an Interner.
type Option func(*options)

// WithHasher configures the hash function. Every hash an interner caches
// and reports comes from this hasher.
//
// If nil is passed, hasher.Default is used.
func WithHasher(h hasher.Hasher) Option {
	return func(o *options) {
		if h == nil {
			h = hasher.Default
		}
		o.hasher = h
	}
}

// WithCapacity pre-sizes the interner for the given number of entries and
// arena bytes. If bytes is 0 it is estimated from entries.
func WithCapacity(entries, bytes int) Option {
	return func(o *options) {
		o.entries = entries
		o.bytes = bytes
	}
}

// WithLimits caps the number of entries and arena bytes. Inserts beyond
// either limit fail with ErrCapacityOverflow. Zero means "no limit beyond
// the symbol range".
//
// Example:
//
//	in := hashintern.NewString(hashintern.WithLimits(1<<20, 64<<20))
func WithLimits(maxEntries, maxBytes int) Option {
	return func(o *options) {
		o.maxEntries = maxEntries
		o.maxBytes = maxBytes
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hashintern.BasicMetricsCollector{}
//	in := hashintern.NewString(hashintern.WithMetricsCollector(metrics))
//	// ... use in ...
//	stats := metrics.GetStats()
//	fmt.Printf("Interns: %d, hits: %d\n", stats.InternCount, stats.InternHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hashintern.NewJSONLogger(slog.LevelDebug)
//	in := hashintern.NewString(hashintern.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}
