package graphics

import "testing"

func TestPictureRecorder_ReplaysOntoRaster(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(Size{Width: 20, Height: 20})
	paint := DefaultPaint()
	paint.Color = ColorRed
	canvas.Save()
	canvas.Translate(10, 10)
	canvas.DrawCircle(Offset{}, 5, paint)
	canvas.Restore()
	list := recorder.EndRecording()

	if list.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", list.Len())
	}
	if list.Size() != (Size{Width: 20, Height: 20}) {
		t.Errorf("Size() = %v", list.Size())
	}

	s, err := NewSurface(list.Size())
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	list.Paint(s.Canvas())
	if got := s.Image().RGBAAt(10, 10); got.R != 0xFF || got.A != 0xFF {
		t.Errorf("replayed center pixel = %+v, want red", got)
	}
}

func TestPictureRecorder_EndWithoutBegin(t *testing.T) {
	recorder := &PictureRecorder{}
	if list := recorder.EndRecording(); list.Len() != 0 {
		t.Errorf("expected empty display list, got %d ops", list.Len())
	}
}
