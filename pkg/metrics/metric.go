package metrics

import "time"

// Metric is a single value reported on the health endpoint. Values are
// strings so large counters survive JSON decoding on the receiver side.
type Metric interface {
	// Name returns the key used in the metrics map.
	Name() string
	// Value returns the current metric value encoded as a string.
	Value() string
}

// MetricFactory aggregates registered metrics into a single map.
type MetricFactory struct {
	metrics []Metric
}

// NewMetricsFactory returns a factory filled with process runtime metrics
// plus any extra metrics supplied by the caller.
func NewMetricsFactory(startTime time.Time, extra ...Metric) *MetricFactory {
	m := []Metric{
		NewUptimeMetric(startTime),
		NewMemoryMetric(),
		NewGoroutinesMetric(),
	}
	return &MetricFactory{metrics: append(m, extra...)}
}

// Collect walks through all registered metrics and returns their current
// values.
func (f *MetricFactory) Collect() map[string]string {
	results := make(map[string]string, len(f.metrics))
	for _, m := range f.metrics {
		results[m.Name()] = m.Value()
	}
	return results
}
