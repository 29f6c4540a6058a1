// Package timing records how long repeated operations take.
package timing

import (
	"sync"
	"time"
)

// Tracker keeps every recorded duration per operation name.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		now:     time.Now,
	}
}

// Start begins timing operation. The returned func records and returns the
// elapsed time; call it once.
func (tt *Tracker) Start(operation string) func() time.Duration {
	start := tt.now()
	return func() time.Duration {
		d := tt.now().Sub(start)
		tt.mu.Lock()
		tt.timings[operation] = append(tt.timings[operation], d)
		tt.mu.Unlock()
		return d
	}
}

func (tt *Tracker) Timings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}
	return append([]time.Duration(nil), timings...)
}

func (tt *Tracker) Average(operation string) time.Duration {
	timings := tt.Timings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range timings {
		total += d
	}
	return total / time.Duration(len(timings))
}

// Averages returns the mean duration of every operation seen so far, in
// milliseconds, ready to be logged as fields.
func (tt *Tracker) Averages() map[string]interface{} {
	tt.mu.RLock()
	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	tt.mu.RUnlock()

	out := make(map[string]interface{}, len(ops))
	for _, op := range ops {
		out[op+"_avg_ms"] = tt.Average(op).Milliseconds()
	}
	return out
}

// Reset forgets operation, or everything when operation is empty.
func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
