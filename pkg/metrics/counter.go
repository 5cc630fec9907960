package metrics

import (
	"strconv"
	"sync/atomic"
)

// Counter is a monotonically increasing Metric safe for concurrent use.
type Counter struct {
	name string
	n    atomic.Uint64
}

// NewCounter returns a Counter reported under name.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one to the counter.
func (c *Counter) Inc() { c.n.Add(1) }

// Load returns the current count.
func (c *Counter) Load() uint64 { return c.n.Load() }

// Name implements Metric.
func (c *Counter) Name() string { return c.name }

// Value implements Metric.
func (c *Counter) Value() string { return strconv.FormatUint(c.n.Load(), 10) }
