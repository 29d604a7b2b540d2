package clockface

import (
	"testing"
	"time"

	"github.com/go-drift/driftclock/pkg/animation"
	drifttest "github.com/go-drift/driftclock/pkg/testing"
)

func TestReadingOf(t *testing.T) {
	tests := []struct {
		at   time.Time
		want TimeReading
	}{
		{time.Date(2024, 1, 1, 15, 30, 45, 0, time.UTC), TimeReading{Hour12: 3, Minute: 30, Second: 45}},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TimeReading{}},
		{time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC), TimeReading{Hour12: 0, Minute: 5}},
		{time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC), TimeReading{Hour12: 11, Minute: 59, Second: 59}},
	}
	for _, tt := range tests {
		if got := ReadingOf(tt.at); got != tt.want {
			t.Errorf("ReadingOf(%v) = %+v, want %+v", tt.at, got, tt.want)
		}
	}
}

func TestSystemTime(t *testing.T) {
	clock := drifttest.NewFakeClock()
	clock.Set(time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC))

	got, err := SystemTime{Clock: clock}.Now()
	if err != nil {
		t.Fatalf("Now: %v", err)
	}
	if want := (TimeReading{Hour12: 9, Minute: 15}); got != want {
		t.Errorf("Now() = %+v, want %+v", got, want)
	}

	plus2 := time.FixedZone("UTC+2", 2*60*60)
	got, _ = SystemTime{Clock: clock, Location: plus2}.Now()
	if got.Hour12 != 11 {
		t.Errorf("Hour12 in UTC+2 = %d, want 11", got.Hour12)
	}
}

func TestSystemTime_UsesPackageClock(t *testing.T) {
	clock := drifttest.NewFakeClock()
	clock.Set(time.Date(2024, 1, 1, 4, 20, 10, 0, time.UTC))
	prev := animation.SetClock(clock)
	t.Cleanup(func() { animation.SetClock(prev) })

	got, err := SystemTime{}.Now()
	if err != nil {
		t.Fatalf("Now: %v", err)
	}
	if want := (TimeReading{Hour12: 4, Minute: 20, Second: 10}); got != want {
		t.Errorf("Now() = %+v, want %+v", got, want)
	}
}

func TestFixedTime(t *testing.T) {
	src := FixedTime{Hour12: 3, Minute: 30}
	got, err := src.Now()
	if err != nil || got != (TimeReading{Hour12: 3, Minute: 30}) {
		t.Errorf("Now() = %+v, %v", got, err)
	}
}
