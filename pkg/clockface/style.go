package clockface

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/go-drift/driftclock/pkg/graphics"
	"gopkg.in/yaml.v3"
)

// HandStyle describes how one hand is stroked.
type HandStyle struct {
	// StrokeFactor is multiplied by Style.Scale to get the stroke width.
	StrokeFactor float64
	// LengthFraction is the hand length as a fraction of the dial radius.
	LengthFraction float64
	Color          graphics.Color
}

// Style holds the visual constants of a clock face.
type Style struct {
	// Scale is the base unit for hand strokes and numeral text.
	Scale float64
	// FallbackSide is used for an axis whose measure spec is unspecified.
	FallbackSide float64
	// NumeralInset places numerals at this fraction of the radius.
	NumeralInset float64
	// FontSizeFactor is multiplied by Scale to get the numeral font size.
	FontSizeFactor float64
	FontFamily     string
	DialColor      graphics.Color
	NumeralColor   graphics.Color
	Hour           HandStyle
	Minute         HandStyle
	Second         HandStyle
	// RedrawDelay is the delay between a completed paint and the next one.
	RedrawDelay time.Duration
}

// DefaultStyle returns the standard clock look: a black dial with white
// numerals, white hour and minute hands and a red second hand, repainted
// every 500ms.
func DefaultStyle() Style {
	return Style{
		Scale:          60,
		FallbackSide:   300,
		NumeralInset:   0.9,
		FontSizeFactor: 1.5,
		FontFamily:     "Go",
		DialColor:      graphics.ColorBlack,
		NumeralColor:   graphics.ColorWhite,
		Hour:           HandStyle{StrokeFactor: 0.5, LengthFraction: 0.7, Color: graphics.ColorWhite},
		Minute:         HandStyle{StrokeFactor: 0.3, LengthFraction: 0.9, Color: graphics.ColorWhite},
		Second:         HandStyle{StrokeFactor: 0.2, LengthFraction: 0.9, Color: graphics.ColorRed},
		RedrawDelay:    500 * time.Millisecond,
	}
}

// WithDefaults returns s with every zero size, fraction, delay and font
// family taken from DefaultStyle. A hand whose style is entirely zero takes
// the default hand. Colors are kept as given, so a transparent dial stays
// transparent.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&s.Scale, d.Scale)
	fill(&s.FallbackSide, d.FallbackSide)
	fill(&s.NumeralInset, d.NumeralInset)
	fill(&s.FontSizeFactor, d.FontSizeFactor)
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	for _, h := range []struct{ got, def *HandStyle }{
		{&s.Hour, &d.Hour}, {&s.Minute, &d.Minute}, {&s.Second, &d.Second},
	} {
		if *h.got == (HandStyle{}) {
			*h.got = *h.def
			continue
		}
		fill(&h.got.StrokeFactor, h.def.StrokeFactor)
		fill(&h.got.LengthFraction, h.def.LengthFraction)
	}
	if s.RedrawDelay == 0 {
		s.RedrawDelay = d.RedrawDelay
	}
	return s
}

// HandStyle returns the policy for the given hand kind.
func (s Style) HandStyle(kind HandKind) HandStyle {
	switch kind {
	case HandHour:
		return s.Hour
	case HandMinute:
		return s.Minute
	default:
		return s.Second
	}
}

// NumeralFontSize returns the numeral text size in pixels.
func (s Style) NumeralFontSize() float64 {
	return s.Scale * s.FontSizeFactor
}

// Validate checks that every size, fraction and delay is positive.
func (s Style) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"scale", s.Scale},
		{"fallback_side", s.FallbackSide},
		{"numeral_inset", s.NumeralInset},
		{"font_size_factor", s.FontSizeFactor},
		{"hour.stroke", s.Hour.StrokeFactor},
		{"hour.length", s.Hour.LengthFraction},
		{"minute.stroke", s.Minute.StrokeFactor},
		{"minute.length", s.Minute.LengthFraction},
		{"second.stroke", s.Second.StrokeFactor},
		{"second.length", s.Second.LengthFraction},
		{"redraw_delay", float64(s.RedrawDelay)},
	}
	var errs []error
	for _, c := range checks {
		if !(c.value > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", c.name, c.value))
		}
	}
	if err := stderrors.Join(errs...); err != nil {
		return errors.Wrap("clockface.Style.Validate", errors.KindConfig, err)
	}
	return nil
}

type handFile struct {
	Stroke float64 `yaml:"stroke"`
	Length float64 `yaml:"length"`
	Color  string  `yaml:"color"`
}

// styleFile is the YAML shape of a Style. Colors are hex strings and the
// delay is a Go duration string.
type styleFile struct {
	Scale          float64  `yaml:"scale"`
	FallbackSide   float64  `yaml:"fallback_side"`
	NumeralInset   float64  `yaml:"numeral_inset"`
	FontSizeFactor float64  `yaml:"font_size_factor"`
	FontFamily     string   `yaml:"font_family"`
	DialColor      string   `yaml:"dial_color"`
	NumeralColor   string   `yaml:"numeral_color"`
	Hour           handFile `yaml:"hour"`
	Minute         handFile `yaml:"minute"`
	Second         handFile `yaml:"second"`
	RedrawDelay    string   `yaml:"redraw_delay"`
}

func toFile(s Style) styleFile {
	hand := func(h HandStyle) handFile {
		return handFile{Stroke: h.StrokeFactor, Length: h.LengthFraction, Color: h.Color.String()}
	}
	return styleFile{
		Scale:          s.Scale,
		FallbackSide:   s.FallbackSide,
		NumeralInset:   s.NumeralInset,
		FontSizeFactor: s.FontSizeFactor,
		FontFamily:     s.FontFamily,
		DialColor:      s.DialColor.String(),
		NumeralColor:   s.NumeralColor.String(),
		Hour:           hand(s.Hour),
		Minute:         hand(s.Minute),
		Second:         hand(s.Second),
		RedrawDelay:    s.RedrawDelay.String(),
	}
}

func (f styleFile) style() (Style, error) {
	var errs []error
	color := func(name, v string) graphics.Color {
		c, err := graphics.ParseColor(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return c
	}
	hand := func(name string, h handFile) HandStyle {
		return HandStyle{
			StrokeFactor:   h.Stroke,
			LengthFraction: h.Length,
			Color:          color(name+".color", h.Color),
		}
	}
	s := Style{
		Scale:          f.Scale,
		FallbackSide:   f.FallbackSide,
		NumeralInset:   f.NumeralInset,
		FontSizeFactor: f.FontSizeFactor,
		FontFamily:     f.FontFamily,
		DialColor:      color("dial_color", f.DialColor),
		NumeralColor:   color("numeral_color", f.NumeralColor),
		Hour:           hand("hour", f.Hour),
		Minute:         hand("minute", f.Minute),
		Second:         hand("second", f.Second),
	}
	delay, err := time.ParseDuration(f.RedrawDelay)
	if err != nil {
		errs = append(errs, fmt.Errorf("redraw_delay: %w", err))
	}
	s.RedrawDelay = delay
	return s, stderrors.Join(errs...)
}

// ParseStyle decodes YAML over the default style. Keys that are absent keep
// their default value.
func ParseStyle(data []byte) (Style, error) {
	const op = "clockface.ParseStyle"
	f := toFile(DefaultStyle())
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Style{}, errors.Wrap(op, errors.KindConfig, fmt.Errorf("parse style: %w", err))
	}
	s, err := f.style()
	if err != nil {
		return Style{}, errors.Wrap(op, errors.KindConfig, err)
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// LoadStyle reads a YAML style file. A missing file yields DefaultStyle.
func LoadStyle(path string) (Style, error) {
	if path == "" {
		return DefaultStyle(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return DefaultStyle(), nil
		}
		return Style{}, errors.Wrap("clockface.LoadStyle", errors.KindConfig, fmt.Errorf("read %s: %w", path, err))
	}
	return ParseStyle(data)
}
