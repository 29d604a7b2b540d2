package layout

import (
	"testing"

	"github.com/go-drift/driftclock/pkg/graphics"
)

type testRenderBox struct {
	RenderBoxBase
	layoutCalls int
	paintCalls  int
}

func newTestRenderBox() *testRenderBox {
	r := &testRenderBox{}
	r.SetSelf(r)
	return r
}

func (r *testRenderBox) PerformLayout() {
	r.layoutCalls++
	r.SetSize(r.Constraints().Constrain(graphics.Size{Width: 10, Height: 10}))
}

func (r *testRenderBox) Paint(ctx *PaintContext) {
	r.paintCalls++
	ctx.Canvas.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.DefaultPaint())
}

func TestPaintChild_TranslatesAndRestores(t *testing.T) {
	child := newTestRenderBox()

	recorder := &graphics.PictureRecorder{}
	ctx := &PaintContext{Canvas: recorder.BeginRecording(graphics.Size{Width: 20, Height: 20})}
	ctx.PaintChild(child, graphics.Offset{X: 5, Y: 5})
	ctx.PaintChild(nil, graphics.Offset{})
	list := recorder.EndRecording()

	if child.paintCalls != 1 {
		t.Fatalf("expected child.Paint to be called once, got %d", child.paintCalls)
	}
	// save, translate, drawRect, restore
	if list.Len() != 4 {
		t.Errorf("expected 4 recorded ops, got %d", list.Len())
	}

	s, err := graphics.NewSurface(list.Size())
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	list.Paint(s.Canvas())
	if a := s.Image().RGBAAt(2, 2).A; a != 0 {
		t.Errorf("pixel outside translated rect alpha = %d, want 0", a)
	}
	if a := s.Image().RGBAAt(10, 10).A; a != 0xFF {
		t.Errorf("pixel inside translated rect alpha = %d, want 255", a)
	}
}
