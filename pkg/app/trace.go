package app

import (
	"sync"
	"time"
)

const (
	passTraceSamplesDefault  = 240
	defaultSlowPassThreshold = 16667 * time.Microsecond
)

// PassPhases captures time spent in each phase of an update pass (ms).
type PassPhases struct {
	TimersMs float64 `json:"timersMs"`
	VarsMs   float64 `json:"varsMs"`
	EventsMs float64 `json:"eventsMs"`
	UpdateMs float64 `json:"updateMs"`
	InfoMs   float64 `json:"infoMs"`
	LayoutMs float64 `json:"layoutMs"`
	RenderMs float64 `json:"renderMs"`
}

// PassCounts captures per-pass workload indicators.
type PassCounts struct {
	Events      int    `json:"events"`
	TimersFired uint64 `json:"timersFired"`
}

// PassSample is a single update pass trace sample.
type PassSample struct {
	Pass      uint64     `json:"pass"`
	Timestamp int64      `json:"ts"`
	PassMs    float64    `json:"passMs"`
	Flags     string     `json:"flags"`
	Phases    PassPhases `json:"phases"`
	Counts    PassCounts `json:"counts"`
	Rendered  bool       `json:"rendered"`
	Panicked  bool       `json:"panicked,omitempty"`
}

// PassTimeline is a chronological copy of the recent samples.
type PassTimeline struct {
	Samples     []PassSample `json:"samples"`
	SlowPasses  int          `json:"slowPasses"`
	ThresholdMs float64      `json:"thresholdMs"`
}

// PassTraceBuffer stores recent pass samples in a ring buffer.
type PassTraceBuffer struct {
	mu        sync.RWMutex
	samples   []PassSample
	index     int
	count     int
	slow      int
	threshold time.Duration
}

// NewPassTraceBuffer creates a new pass trace buffer.
func NewPassTraceBuffer(capacity int, threshold time.Duration) *PassTraceBuffer {
	if capacity <= 0 {
		capacity = passTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultSlowPassThreshold
	}
	return &PassTraceBuffer{
		samples:   make([]PassSample, capacity),
		threshold: threshold,
	}
}

// Capacity returns the buffer capacity.
func (b *PassTraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Threshold returns the slow pass threshold.
func (b *PassTraceBuffer) Threshold() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.threshold
}

// Add records a sample and reports whether the pass was slow.
func (b *PassTraceBuffer) Add(sample PassSample, passDuration time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if passDuration > b.threshold {
		b.slow++
		return true
	}
	return false
}

// Snapshot returns a chronological copy of samples and stats.
func (b *PassTraceBuffer) Snapshot() PassTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return PassTimeline{ThresholdMs: durationToMillis(b.threshold)}
	}

	result := make([]PassSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return PassTimeline{
		Samples:     result,
		SlowPasses:  b.slow,
		ThresholdMs: durationToMillis(b.threshold),
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
