package clockface

import (
	"math"

	"github.com/go-drift/driftclock/pkg/graphics"
)

// HandKind identifies a clock hand.
type HandKind int

const (
	HandHour HandKind = iota
	HandMinute
	HandSecond
)

func (k HandKind) String() string {
	switch k {
	case HandHour:
		return "hour"
	case HandMinute:
		return "minute"
	case HandSecond:
		return "second"
	default:
		return "unknown"
	}
}

// Hand is a computed hand segment in the dial-centered frame. Start is
// always the origin.
type Hand struct {
	Kind           HandKind
	Value          float64
	StrokeWidth    float64
	Color          graphics.Color
	LengthFraction float64
	Length         float64
	Angle          float64
	Start          graphics.Offset
	End            graphics.Offset
}

// HandAngle maps a value on the 60-unit dial to radians. 0 points at twelve
// o'clock and values grow clockwise.
func HandAngle(value float64) float64 {
	return math.Pi*value/30 - math.Pi/2
}

// HourValue places the hour hand on the 60-unit dial, advancing it
// continuously with the minutes.
func HourValue(hour12, minute int) float64 {
	return (float64(hour12) + float64(minute)/60) * 5
}

// ComputeHand returns the segment for a hand at value. Any finite value is
// accepted; values outside 0..60 wrap around the dial.
func ComputeHand(value float64, kind HandKind, radius float64, style Style) Hand {
	hs := style.HandStyle(kind)
	angle := HandAngle(value)
	length := radius * hs.LengthFraction
	return Hand{
		Kind:           kind,
		Value:          value,
		StrokeWidth:    style.Scale * hs.StrokeFactor,
		Color:          hs.Color,
		LengthFraction: hs.LengthFraction,
		Length:         length,
		Angle:          angle,
		End:            graphics.Offset{X: math.Cos(angle) * length, Y: math.Sin(angle) * length},
	}
}

// HandsFor returns the hour, minute and second hands for a reading.
func HandsFor(reading TimeReading, radius float64, style Style) [3]Hand {
	return [3]Hand{
		ComputeHand(HourValue(reading.Hour12, reading.Minute), HandHour, radius, style),
		ComputeHand(float64(reading.Minute), HandMinute, radius, style),
		ComputeHand(float64(reading.Second), HandSecond, radius, style),
	}
}

// Paint returns the stroke paint for the hand.
func (h Hand) Paint() graphics.Paint {
	return graphics.Paint{
		Color:       h.Color,
		Style:       graphics.PaintStyleStroke,
		StrokeWidth: h.StrokeWidth,
		StrokeCap:   graphics.CapButt,
		AntiAlias:   true,
	}
}

// Draw strokes the hand with its origin mapped to center.
func (h Hand) Draw(canvas graphics.Canvas, center graphics.Offset) {
	canvas.DrawLine(graphics.Translate(h.Start, center), graphics.Translate(h.End, center), h.Paint())
}
