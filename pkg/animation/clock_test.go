package animation

import (
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestSetClock(t *testing.T) {
	want := time.Date(2024, 1, 1, 3, 30, 0, 0, time.UTC)
	prev := SetClock(fixedClock{now: want})
	defer SetClock(prev)

	if got := Now(); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
	if _, ok := Timers().(systemClock); !ok {
		t.Errorf("Timers() should fall back to the system clock for a clock without timers, got %T", Timers())
	}
}

func TestSetClockNilRestoresSystem(t *testing.T) {
	prev := SetClock(nil)
	defer SetClock(prev)

	if _, ok := clock.(systemClock); !ok {
		t.Errorf("SetClock(nil) installed %T, want systemClock", clock)
	}
}

func TestSystemClockAfterFunc(t *testing.T) {
	fired := make(chan struct{})
	SystemClock.AfterFunc(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	timer := SystemClock.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
	if !timer.Stop() {
		t.Error("Stop() on pending timer should return true")
	}
}
