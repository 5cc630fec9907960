package metrics

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestCollect(t *testing.T) {
	pushes := NewCounter("pushes_succeeded_total")
	f := NewMetricsFactory(time.Now().Add(-90*time.Second), pushes)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pushes.Inc()
		}()
	}
	wg.Wait()

	got := f.Collect()
	if got["pushes_succeeded_total"] != "10" {
		t.Errorf("pushes_succeeded_total = %q, want 10", got["pushes_succeeded_total"])
	}
	uptime, err := strconv.Atoi(got["process_uptime_seconds"])
	if err != nil || uptime < 90 {
		t.Errorf("process_uptime_seconds = %q", got["process_uptime_seconds"])
	}
	for _, key := range []string{"process_memory_heap_bytes", "process_goroutines_count"} {
		if n, err := strconv.ParseUint(got[key], 10, 64); err != nil || n == 0 {
			t.Errorf("%s = %q", key, got[key])
		}
	}
}
