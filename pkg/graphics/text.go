package graphics

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-drift/driftclock/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// defaultFamily names the bundled Go Regular face.
	defaultFamily = "Go"

	// fontDPI makes one font point equal one pixel.
	fontDPI = 72
)

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color      Color
	FontFamily string
	FontSize   float64
}

// TextLayout contains measured text metrics and a resolved font face.
//
// Bounds is the ink rectangle relative to the baseline origin, so Size
// differs between glyphs of the same font ("1" is narrower than "12").
type TextLayout struct {
	Text    string
	Style   TextStyle
	Size    Size
	Bounds  Rect
	Advance float64
	Ascent  float64
	Descent float64
	Face    font.Face
}

// TextMeasurer lays out text for measurement and drawing.
type TextMeasurer interface {
	LayoutText(text string, style TextStyle) (*TextLayout, error)
}

type faceKey struct {
	family string
	size   float64
}

// FontManager manages font registration and face caching for text layout.
// Faces are not safe for concurrent drawing; callers share a manager from a
// single UI goroutine.
type FontManager struct {
	mu          sync.RWMutex
	fonts       map[string]*opentype.Font
	faces       map[faceKey]font.Face
	defaultName string
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go Regular font
// registered as the default family.
func NewFontManager() (*FontManager, error) {
	manager := &FontManager{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	if err := manager.RegisterFont(defaultFamily, goregular.TTF); err != nil {
		return nil, err
	}
	manager.defaultName = defaultFamily
	return manager, nil
}

// DefaultFontManagerErr returns a shared font manager with a bundled font.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.ClockError{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindInit,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// RegisterFont registers a new font family from TrueType or OpenType data.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[name] = parsed
	for key := range m.faces {
		if key.family == name {
			delete(m.faces, key)
		}
	}
	return nil
}

// Face resolves a font face for the given style.
func (m *FontManager) Face(style TextStyle) (font.Face, error) {
	family := style.FontFamily
	if family == "" {
		family = m.defaultName
	}
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	key := faceKey{family: family, size: size}

	m.mu.RLock()
	face, ok := m.faces[key]
	parsed := m.fonts[family]
	m.mu.RUnlock()
	if ok {
		return face, nil
	}
	if parsed == nil {
		return nil, fmt.Errorf("font family %q not registered", family)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %q@%v: %w", family, size, err)
	}
	m.mu.Lock()
	m.faces[key] = face
	m.mu.Unlock()
	return face, nil
}

// LayoutText measures text with the manager's fonts. It implements TextMeasurer.
func (m *FontManager) LayoutText(text string, style TextStyle) (*TextLayout, error) {
	return LayoutText(text, style, m)
}

// LayoutText measures text ink bounds and advance using the provided font manager.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	if style.FontSize <= 0 {
		style.FontSize = defaultFontSize
	}
	face, err := manager.Face(style)
	if err != nil {
		return nil, err
	}
	bounds, advance := font.BoundString(face, text)
	metrics := face.Metrics()
	ink := Rect{
		Left:   fixedToFloat(bounds.Min.X),
		Top:    fixedToFloat(bounds.Min.Y),
		Right:  fixedToFloat(bounds.Max.X),
		Bottom: fixedToFloat(bounds.Max.Y),
	}
	return &TextLayout{
		Text:    text,
		Style:   style,
		Size:    ink.Size(),
		Bounds:  ink,
		Advance: fixedToFloat(advance),
		Ascent:  fixedToFloat(metrics.Ascent),
		Descent: fixedToFloat(metrics.Descent),
		Face:    face,
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
