package clockface

import (
	"testing"

	"github.com/go-drift/driftclock/pkg/layout"
	"github.com/google/go-cmp/cmp"
)

func TestChooseDimension(t *testing.T) {
	tests := []struct {
		name string
		spec layout.MeasureSpec
		want float64
	}{
		{"exact", layout.Exactly(400), 400},
		{"at most", layout.AtMost(250), 250},
		{"unspecified", layout.Unspecified(), 300},
		{"unspecified ignores size", layout.MeasureSpec{Mode: layout.MeasureUnspecified, Size: 999}, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseDimension(tt.spec, 300); got != tt.want {
				t.Errorf("ChooseDimension(%+v) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height layout.MeasureSpec
		want          Geometry
	}{
		{
			name:   "landscape exact",
			width:  layout.Exactly(400),
			height: layout.Exactly(300),
			want:   Geometry{Side: 300, CenterX: 150, CenterY: 150, Radius: 150},
		},
		{
			name:   "portrait at most",
			width:  layout.AtMost(200),
			height: layout.AtMost(800),
			want:   Geometry{Side: 200, CenterX: 100, CenterY: 100, Radius: 100},
		},
		{
			name:   "both unspecified",
			width:  layout.Unspecified(),
			height: layout.Unspecified(),
			want:   Geometry{Side: 300, CenterX: 150, CenterY: 150, Radius: 150},
		},
		{
			name:   "unspecified beats larger exact",
			width:  layout.Exactly(1000),
			height: layout.Unspecified(),
			want:   Geometry{Side: 300, CenterX: 150, CenterY: 150, Radius: 150},
		},
		{
			name:   "zero",
			width:  layout.Exactly(0),
			height: layout.Exactly(300),
			want:   Geometry{},
		},
		{
			name:   "negative clamps to zero",
			width:  layout.Exactly(-20),
			height: layout.AtMost(300),
			want:   Geometry{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSize(tt.width, tt.height, 300)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveSize mismatch (-want +got):\n%s", diff)
			}
			if got.Side != 2*got.Radius || got.CenterX != got.Side/2 || got.CenterY != got.Side/2 {
				t.Errorf("geometry invariant broken: %+v", got)
			}
		})
	}
}

func TestSizeResolver_ReportsChanges(t *testing.T) {
	r := SizeResolver{Fallback: 300}

	if _, ok := r.Current(); ok {
		t.Fatal("fresh resolver should have no geometry")
	}
	if _, changed := r.Resolve(layout.Exactly(400), layout.Exactly(300)); !changed {
		t.Error("first resolve should report a change")
	}
	if _, changed := r.Resolve(layout.Exactly(500), layout.AtMost(300)); changed {
		t.Error("same side should not report a change")
	}
	g, changed := r.Resolve(layout.Exactly(200), layout.Exactly(300))
	if !changed {
		t.Error("new side should report a change")
	}
	if cur, _ := r.Current(); cur != g || g.Side != 200 {
		t.Errorf("Current() = %+v, want side 200", cur)
	}
}
