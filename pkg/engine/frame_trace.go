package engine

import (
	"sync"
	"time"
)

const (
	defaultTraceCapacity = 240
	// defaultFrameBudget is one 60Hz vsync interval.
	defaultFrameBudget = 16667 * time.Microsecond
)

// FramePhases is the time one frame spent in each phase.
type FramePhases struct {
	Dispatch time.Duration
	Layout   time.Duration
	Paint    time.Duration
	Present  time.Duration
}

// FrameSample records one painted frame.
type FrameSample struct {
	FrameID    uint64
	At         time.Time
	Total      time.Duration
	Phases     FramePhases
	Dispatched int
	DirtyPaint int
}

// FrameStats summarizes a FrameTrace.
type FrameStats struct {
	// Frames is the number of samples currently held.
	Frames int
	// Slow counts every frame recorded over the budget, including samples
	// already overwritten.
	Slow   int
	Mean   time.Duration
	Max    time.Duration
	Budget time.Duration
}

// FrameTrace keeps the most recent frame samples in a ring.
type FrameTrace struct {
	mu     sync.Mutex
	ring   []FrameSample
	next   int
	full   bool
	slow   int
	budget time.Duration
}

// NewFrameTrace returns a trace holding up to capacity samples. Frames
// taking longer than budget count as slow. Non-positive arguments take
// defaults.
func NewFrameTrace(capacity int, budget time.Duration) *FrameTrace {
	if capacity <= 0 {
		capacity = defaultTraceCapacity
	}
	if budget <= 0 {
		budget = defaultFrameBudget
	}
	return &FrameTrace{ring: make([]FrameSample, capacity), budget: budget}
}

// Record appends s, overwriting the oldest sample when full.
func (t *FrameTrace) Record(s FrameSample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ring[t.next] = s
	t.next++
	if t.next == len(t.ring) {
		t.next = 0
		t.full = true
	}
	if s.Total > t.budget {
		t.slow++
	}
}

// Samples returns the held samples, oldest first.
func (t *FrameTrace) Samples() []FrameSample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.samplesLocked()
}

func (t *FrameTrace) samplesLocked() []FrameSample {
	if !t.full {
		return append([]FrameSample(nil), t.ring[:t.next]...)
	}
	out := make([]FrameSample, 0, len(t.ring))
	out = append(out, t.ring[t.next:]...)
	return append(out, t.ring[:t.next]...)
}

// Stats summarizes the held samples.
func (t *FrameTrace) Stats() FrameStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := FrameStats{Slow: t.slow, Budget: t.budget}
	var total time.Duration
	for _, s := range t.samplesLocked() {
		st.Frames++
		total += s.Total
		st.Max = max(st.Max, s.Total)
	}
	if st.Frames > 0 {
		st.Mean = total / time.Duration(st.Frames)
	}
	return st
}
