package clockface

import "github.com/go-drift/driftclock/pkg/layout"

// Geometry is the square drawing area of a clock face. Side is always
// 2*Radius and the center sits at (Side/2, Side/2).
type Geometry struct {
	Side    float64
	CenterX float64
	CenterY float64
	Radius  float64
}

// Center returns the dial center in view coordinates.
func (g Geometry) Center() (x, y float64) {
	return g.CenterX, g.CenterY
}

// ChooseDimension picks the usable extent of one axis. Exact and at-most
// specs use their size; an unspecified spec uses fallback.
func ChooseDimension(spec layout.MeasureSpec, fallback float64) float64 {
	switch spec.Mode {
	case layout.MeasureExact, layout.MeasureAtMost:
		return spec.Size
	default:
		return fallback
	}
}

// ResolveSize computes the largest square that fits both axes. A negative
// side is clamped to zero.
func ResolveSize(width, height layout.MeasureSpec, fallback float64) Geometry {
	side := max(min(ChooseDimension(width, fallback), ChooseDimension(height, fallback)), 0)
	return Geometry{
		Side:    side,
		CenterX: side / 2,
		CenterY: side / 2,
		Radius:  side / 2,
	}
}

// SizeResolver resolves geometry and remembers the previous result.
type SizeResolver struct {
	Fallback float64

	current  Geometry
	resolved bool
}

// Resolve returns the geometry for the given specs and whether it differs
// from the previous call. The first call always reports a change.
func (r *SizeResolver) Resolve(width, height layout.MeasureSpec) (Geometry, bool) {
	g := ResolveSize(width, height, r.Fallback)
	changed := !r.resolved || g != r.current
	r.current = g
	r.resolved = true
	return g, changed
}

// Current returns the last resolved geometry.
func (r *SizeResolver) Current() (Geometry, bool) {
	return r.current, r.resolved
}
