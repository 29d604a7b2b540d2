package clockface

import (
	"time"

	"github.com/go-drift/driftclock/pkg/animation"
)

// TimeReading is a wall-clock reading on a 12-hour dial.
type TimeReading struct {
	Hour12 int // 0..11
	Minute int
	Second int
}

// ReadingOf converts t to a TimeReading in t's location.
func ReadingOf(t time.Time) TimeReading {
	h, m, s := t.Clock()
	return TimeReading{Hour12: h % 12, Minute: m, Second: s}
}

// TimeSource supplies the current reading for each frame.
type TimeSource interface {
	Now() (TimeReading, error)
}

// TimeSourceFunc adapts a function to TimeSource.
type TimeSourceFunc func() (TimeReading, error)

// Now calls f.
func (f TimeSourceFunc) Now() (TimeReading, error) { return f() }

// FixedTime always reports the same reading.
type FixedTime TimeReading

// Now returns the fixed reading.
func (f FixedTime) Now() (TimeReading, error) { return TimeReading(f), nil }

// SystemTime reads an animation.Clock. A nil Clock uses the package clock
// in pkg/animation, which tests can replace with animation.SetClock. A nil
// Location uses the clock's own location.
type SystemTime struct {
	Clock    animation.Clock
	Location *time.Location
}

// Now returns the current reading.
func (s SystemTime) Now() (TimeReading, error) {
	var t time.Time
	if s.Clock != nil {
		t = s.Clock.Now()
	} else {
		t = animation.Now()
	}
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return ReadingOf(t), nil
}
