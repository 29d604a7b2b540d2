package clockface

import (
	"time"

	"github.com/go-drift/driftclock/pkg/animation"
)

// Dispatcher runs callbacks on the UI goroutine. Dispatch must not block
// and may be called from any goroutine.
type Dispatcher interface {
	Dispatch(callback func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(callback func())

// Dispatch calls f(callback).
func (f DispatcherFunc) Dispatch(callback func()) { f(callback) }

// FrameScheduler requests one repaint a fixed delay after each completed
// paint. At most one request is outstanding; a newer paint replaces the
// pending one.
//
// FrameCompleted and Stop are called on the UI goroutine. The timer fires
// on the factory's goroutine and only posts to the dispatcher.
type FrameScheduler struct {
	delay      time.Duration
	timers     animation.TimerFactory
	dispatcher Dispatcher
	request    func()

	pending    animation.Timer
	generation uint64
	scheduled  int
	stopped    bool
}

// NewFrameScheduler returns a scheduler that posts request through
// dispatcher. A nil timers uses animation.Timers().
func NewFrameScheduler(delay time.Duration, timers animation.TimerFactory, dispatcher Dispatcher, request func()) *FrameScheduler {
	if timers == nil {
		timers = animation.Timers()
	}
	return &FrameScheduler{delay: delay, timers: timers, dispatcher: dispatcher, request: request}
}

// FrameCompleted arms the follow-up for the paint that just finished.
func (s *FrameScheduler) FrameCompleted() {
	if s.stopped {
		return
	}
	if s.pending != nil {
		s.pending.Stop()
	}
	s.generation++
	gen := s.generation
	s.scheduled++
	s.pending = s.timers.AfterFunc(s.delay, func() {
		s.dispatcher.Dispatch(func() { s.fire(gen) })
	})
}

// fire runs on the UI goroutine. A callback from a replaced or stopped
// timer that was already queued is dropped.
func (s *FrameScheduler) fire(gen uint64) {
	if s.stopped || gen != s.generation {
		return
	}
	s.pending = nil
	if s.request != nil {
		s.request()
	}
}

// Stop cancels the pending follow-up and disables the scheduler. It is
// safe to call more than once.
func (s *FrameScheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// Pending reports whether a follow-up is outstanding.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Scheduled returns how many follow-ups have been armed.
func (s *FrameScheduler) Scheduled() int {
	return s.scheduled
}

// Stopped reports whether Stop has been called.
func (s *FrameScheduler) Stopped() bool {
	return s.stopped
}
