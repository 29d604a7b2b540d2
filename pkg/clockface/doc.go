// Package clockface implements an analog clock render box.
//
// A [ClockView] sizes itself to the largest square that fits the incoming
// layout constraints, paints a static dial (a filled circle and the numerals
// 1 through 12) once into a cached raster, and composites the hour, minute
// and second hands over that raster on every frame. After each paint a
// [FrameScheduler] posts a follow-up repaint through the host's UI-thread
// dispatcher, so a steady clock repaints every [Style.RedrawDelay].
//
// # Coordinate frames
//
// Dial and hand geometry is computed in a frame whose origin is the dial
// center, with the y axis pointing down. Angles are measured clockwise from
// the positive x axis, so twelve o'clock is -π/2. Results are mapped to
// canvas space with [graphics.Translate] rather than by mutating the canvas
// transform.
//
// # Basic usage
//
//	view := clockface.NewClockView(clockface.Options{
//	    Dispatcher: eng,
//	})
//	eng.SetRoot(view)
//	defer view.Detach()
package clockface
