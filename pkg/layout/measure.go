package layout

import "fmt"

// MeasureMode says how a parent constrains one axis of a child.
type MeasureMode int

const (
	// MeasureUnspecified places no limit on the axis.
	MeasureUnspecified MeasureMode = iota
	// MeasureExact requires the child to use exactly Size.
	MeasureExact
	// MeasureAtMost allows the child to use up to Size.
	MeasureAtMost
)

// String returns a human-readable representation of the mode.
func (m MeasureMode) String() string {
	switch m {
	case MeasureUnspecified:
		return "unspecified"
	case MeasureExact:
		return "exact"
	case MeasureAtMost:
		return "at_most"
	default:
		return fmt.Sprintf("MeasureMode(%d)", int(m))
	}
}

// MeasureSpec pairs a mode with an extent for one axis.
type MeasureSpec struct {
	Mode MeasureMode
	Size float64
}

// Exactly returns an EXACT spec.
func Exactly(size float64) MeasureSpec {
	return MeasureSpec{Mode: MeasureExact, Size: size}
}

// AtMost returns an AT_MOST spec.
func AtMost(size float64) MeasureSpec {
	return MeasureSpec{Mode: MeasureAtMost, Size: size}
}

// Unspecified returns an UNSPECIFIED spec.
func Unspecified() MeasureSpec {
	return MeasureSpec{Mode: MeasureUnspecified}
}

// MeasureSpecsFor derives per-axis measure specs from box constraints:
// a tight axis is EXACT, a finite max is AT_MOST and an infinite max is
// UNSPECIFIED.
func MeasureSpecsFor(c Constraints) (width, height MeasureSpec) {
	return axisSpec(c.HasTightWidth(), c.HasBoundedWidth(), c.MaxWidth),
		axisSpec(c.HasTightHeight(), c.HasBoundedHeight(), c.MaxHeight)
}

func axisSpec(tight, bounded bool, extent float64) MeasureSpec {
	switch {
	case tight && bounded:
		return Exactly(extent)
	case bounded:
		return AtMost(extent)
	default:
		return Unspecified()
	}
}
