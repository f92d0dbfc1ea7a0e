// Package prometheus exports interner metrics through
// github.com/prometheus/client_golang.
//
//	c, err := prometheus.New(prom.DefaultRegisterer, "myapp")
//	in := hashintern.NewString(hashintern.WithMetricsCollector(c))
package prometheus

import (
	"errors"
	"time"

	"github.com/hupe1980/hashintern"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Collector implements hashintern.MetricsCollector.
type Collector struct {
	interns  *prom.CounterVec
	latency  prom.Histogram
	refused  *prom.CounterVec
	growths  *prom.CounterVec
	capacity *prom.GaugeVec
}

var _ hashintern.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. namespace
// prefixes every metric name and may be empty.
func New(reg prom.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		interns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "interner",
			Name:      "interns_total",
			Help:      "Successful intern calls by result (hit or miss).",
		}, []string{"result"}),
		latency: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: "interner",
			Name:      "intern_duration_seconds",
			Help:      "Latency of successful intern calls.",
			Buckets:   prom.ExponentialBuckets(25e-9, 2, 14),
		}),
		refused: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "interner",
			Name:      "refused_total",
			Help:      "Values that were not interned, by reason.",
		}, []string{"reason"}),
		growths: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "interner",
			Name:      "growths_total",
			Help:      "Reallocations by component.",
		}, []string{"component"}),
		capacity: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Subsystem: "interner",
			Name:      "capacity",
			Help:      "Capacity after the latest reallocation, by component.",
		}, []string{"component"}),
	}

	for _, m := range []prom.Collector{c.interns, c.latency, c.refused, c.growths, c.capacity} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordIntern implements hashintern.MetricsCollector.
func (c *Collector) RecordIntern(hit bool, d time.Duration) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.interns.WithLabelValues(result).Inc()
	c.latency.Observe(d.Seconds())
}

// RecordRefused implements hashintern.MetricsCollector.
func (c *Collector) RecordRefused(err error) {
	c.refused.WithLabelValues(reason(err)).Inc()
}

// RecordGrowth implements hashintern.MetricsCollector.
func (c *Collector) RecordGrowth(component string, _, newCap int) {
	c.growths.WithLabelValues(component).Inc()
	c.capacity.WithLabelValues(component).Set(float64(newCap))
}

func reason(err error) string {
	switch {
	case errors.Is(err, hashintern.ErrCapacity):
		return "capacity"
	case errors.Is(err, hashintern.ErrEncoding):
		return "encoding"
	default:
		return "other"
	}
}
