package metrics

import (
	"runtime"
	"strconv"
	"time"
)

// UptimeMetric reports the process uptime in whole seconds.
type UptimeMetric struct {
	startTime time.Time
}

// NewUptimeMetric returns a new UptimeMetric counting from startTime.
func NewUptimeMetric(startTime time.Time) *UptimeMetric {
	return &UptimeMetric{startTime: startTime}
}

// Name implements Metric.
func (m *UptimeMetric) Name() string { return "process_uptime_seconds" }

// Value implements Metric.
func (m *UptimeMetric) Value() string {
	return strconv.FormatInt(int64(time.Since(m.startTime).Seconds()), 10)
}

// MemoryMetric reports the current heap allocation in bytes.
type MemoryMetric struct{}

// NewMemoryMetric returns a new MemoryMetric.
func NewMemoryMetric() *MemoryMetric { return &MemoryMetric{} }

// Name implements Metric.
func (m *MemoryMetric) Name() string { return "process_memory_heap_bytes" }

// Value implements Metric.
func (m *MemoryMetric) Value() string {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return strconv.FormatUint(stats.HeapAlloc, 10)
}

// GoroutinesMetric reports the current number of goroutines.
type GoroutinesMetric struct{}

// NewGoroutinesMetric returns a new GoroutinesMetric.
func NewGoroutinesMetric() *GoroutinesMetric { return &GoroutinesMetric{} }

// Name implements Metric.
func (m *GoroutinesMetric) Name() string { return "process_goroutines_count" }

// Value implements Metric.
func (m *GoroutinesMetric) Value() string {
	return strconv.Itoa(runtime.NumGoroutine())
}
