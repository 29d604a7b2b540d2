package graphics

import "image"

// Canvas records or renders drawing commands.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawText draws a measured text layout with its baseline origin at position.
	DrawText(layout *TextLayout, position Offset)

	// DrawImage draws an image with its top-left corner at the given position.
	DrawImage(image image.Image, position Offset)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
