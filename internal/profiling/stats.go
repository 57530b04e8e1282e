package profiling

import (
	"sync"
	"time"
)

// RenderStats accumulates render durations. The zero value is ready to use
// and RenderStats is safe for concurrent use.
type RenderStats struct {
	count int
	total time.Duration
	min   time.Duration
	max   time.Duration
	last  time.Duration
	mu    sync.Mutex
}

// StatsSnapshot is a point-in-time copy of RenderStats.
type StatsSnapshot struct {
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Average returns the mean render duration, or 0 before the first render.
func (s StatsSnapshot) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Record adds one render duration.
func (r *RenderStats) Record(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 || d < r.min {
		r.min = d
	}
	if d > r.max {
		r.max = d
	}
	r.count++
	r.total += d
	r.last = d
}

// Time records the duration since start. It is meant for
// defer stats.Time(time.Now()).
func (r *RenderStats) Time(start time.Time) {
	r.Record(time.Since(start))
}

// Snapshot returns the current totals.
func (r *RenderStats) Snapshot() StatsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return StatsSnapshot{Count: r.count, Total: r.total, Min: r.min, Max: r.max, Last: r.last}
}

// Reset clears all totals.
func (r *RenderStats) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count, r.total, r.min, r.max, r.last = 0, 0, 0, 0, 0
}
