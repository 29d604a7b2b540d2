package clockface

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-drift/driftclock/pkg/graphics"
)

// NumeralCount is the number of numerals on the dial.
const NumeralCount = 12

// Numeral is one dial label. Position is the text baseline origin in the
// dial-centered frame.
type Numeral struct {
	Value    int
	Text     string
	Angle    float64
	Position graphics.Offset
	Bounds   graphics.Size
	Layout   *graphics.TextLayout
}

// Dial is the static part of a clock face in the dial-centered frame.
type Dial struct {
	Radius   float64
	Color    graphics.Color
	Numerals [NumeralCount]Numeral
}

// NumeralAngle returns the angle of numeral n, 1 through 12. Three o'clock
// is at angle 0.
func NumeralAngle(n int) float64 {
	return math.Pi / 6 * float64(n-3)
}

// LayoutDial measures and positions the twelve numerals for g. Each numeral
// is centered on the point at NumeralInset of the radius using its own ink
// bounds.
func LayoutDial(g Geometry, m graphics.TextMeasurer, style Style) (Dial, error) {
	d := Dial{Radius: g.Radius, Color: style.DialColor}
	textStyle := graphics.TextStyle{
		Color:      style.NumeralColor,
		FontFamily: style.FontFamily,
		FontSize:   style.NumeralFontSize(),
	}
	for i := range d.Numerals {
		n := i + 1
		text := strconv.Itoa(n)
		tl, err := m.LayoutText(text, textStyle)
		if err != nil {
			return Dial{}, fmt.Errorf("measure numeral %s: %w", text, err)
		}
		angle := NumeralAngle(n)
		w, h := tl.Size.Width, tl.Size.Height
		d.Numerals[i] = Numeral{
			Value: n,
			Text:  text,
			Angle: angle,
			Position: graphics.Offset{
				X: math.Cos(angle)*g.Radius*style.NumeralInset - w/2,
				Y: math.Sin(angle)*g.Radius*style.NumeralInset + h/2,
			},
			Bounds: tl.Size,
			Layout: tl,
		}
	}
	return d, nil
}

// Paint draws the dial with its center mapped to origin.
func (d Dial) Paint(canvas graphics.Canvas, origin graphics.Offset) {
	canvas.DrawCircle(graphics.Translate(graphics.Offset{}, origin), d.Radius, graphics.Paint{
		Color:     d.Color,
		Style:     graphics.PaintStyleFill,
		AntiAlias: true,
	})
	for _, n := range d.Numerals {
		if n.Layout == nil {
			continue
		}
		canvas.DrawText(n.Layout, graphics.Translate(n.Position, origin))
	}
}
