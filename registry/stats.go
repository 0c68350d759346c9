package registry

import (
	metrics "github.com/rcrowley/go-metrics"
)

// Metric names registered by NewStats.
const (
	MetricAdded      = "registry.keys.added"
	MetricDuplicates = "registry.keys.duplicate"
	MetricRejected   = "registry.decode.rejected"
	MetricSize       = "registry.keys.size"
)

// Stats tracks registry activity.
type Stats struct {
	added      metrics.Counter
	duplicates metrics.Counter
	rejected   metrics.Counter
	size       metrics.Gauge
}

// NewStats registers the registry metrics on r.
func NewStats(r metrics.Registry) *Stats {
	return &Stats{
		added:      metrics.NewRegisteredCounter(MetricAdded, r),
		duplicates: metrics.NewRegisteredCounter(MetricDuplicates, r),
		rejected:   metrics.NewRegisteredCounter(MetricRejected, r),
		size:       metrics.NewRegisteredGauge(MetricSize, r),
	}
}

// Added returns the number of keys added.
func (s *Stats) Added() int64 { return s.added.Count() }

// Duplicates returns the number of Add calls for keys already present.
func (s *Stats) Duplicates() int64 { return s.duplicates.Count() }

// Rejected returns the number of inputs that failed to decode.
func (s *Stats) Rejected() int64 { return s.rejected.Count() }

// Size returns the last recorded number of keys.
func (s *Stats) Size() int64 { return s.size.Value() }
