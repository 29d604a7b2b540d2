package animation

import "time"

// Clock provides the current time. The default implementation uses system
// time. Tests can inject a fake clock via SetClock to control timing
// deterministically.
type Clock interface {
	Now() time.Time
}

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool
}

// TimerFactory schedules callbacks after a delay. Callbacks run on a
// goroutine owned by the factory, never on the caller's.
type TimerFactory interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the real-time Clock and TimerFactory.
var SystemClock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// clock is the package-level time source, replaceable for testing.
var clock Clock = SystemClock

// SetClock replaces the package clock. Returns the previous clock
// so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = SystemClock
	}
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

// Timers returns the package clock as a TimerFactory, falling back to the
// system clock when the active clock cannot schedule.
func Timers() TimerFactory {
	if tf, ok := clock.(TimerFactory); ok {
		return tf
	}
	return SystemClock
}
