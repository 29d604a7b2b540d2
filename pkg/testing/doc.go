// Package testing provides deterministic test helpers for the clock
// runtime: a FakeClock that drives timers by hand and a RecordingCanvas
// that captures canvas calls for assertions.
//
//	clk := testing.NewFakeClock()
//	view := clockface.NewClockView(clockface.Options{Timers: clk, ...})
//	canvas := testing.NewRecordingCanvas(graphics.Size{Width: 300, Height: 300})
//	view.Paint(&layout.PaintContext{Canvas: canvas})
//	lines := canvas.Find("drawLine")
package testing
