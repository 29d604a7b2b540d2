package graphics

import "testing"

func TestTranslate(t *testing.T) {
	origin := Offset{X: 150, Y: 150}
	tests := []struct {
		point Offset
		want  Offset
	}{
		{Offset{}, Offset{X: 150, Y: 150}},
		{Offset{X: 105}, Offset{X: 255, Y: 150}},
		{Offset{Y: -135}, Offset{X: 150, Y: 15}},
	}
	for _, tt := range tests {
		if got := Translate(tt.point, origin); got != tt.want {
			t.Errorf("Translate(%v, %v) = %v, want %v", tt.point, origin, got, tt.want)
		}
	}
}

func TestRectFromLTWH(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %v", r.Size())
	}
	if r.IsEmpty() {
		t.Error("expected non-empty rect")
	}
	if !RectFromLTWH(0, 0, 0, 10).IsEmpty() {
		t.Error("expected zero-width rect to be empty")
	}
}
