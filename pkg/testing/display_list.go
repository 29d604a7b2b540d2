package testing

import (
	"fmt"
	"image"
	"math"

	"github.com/go-drift/driftclock/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
	// Image is the drawn image for drawImage ops, kept for identity checks.
	Image image.Image `json:"-"`
	// Text is the drawn string for drawText ops.
	Text string `json:"text,omitempty"`
}

// Float returns a numeric parameter, or NaN when absent.
func (op DisplayOp) Float(key string) float64 {
	if v, ok := op.Params[key].(float64); ok {
		return v
	}
	return math.NaN()
}

// RecordingCanvas implements graphics.Canvas and records ops as DisplayOp.
// Coordinates are recorded as passed, before any translation.
type RecordingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewRecordingCanvas returns an empty recording canvas of the given size.
func NewRecordingCanvas(size graphics.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

// Ops returns all recorded operations in call order.
func (c *RecordingCanvas) Ops() []DisplayOp {
	return c.ops
}

// Find returns the recorded operations named op, in call order.
func (c *RecordingCanvas) Find(op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range c.ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// Reset drops all recorded operations.
func (c *RecordingCanvas) Reset() {
	c.ops = nil
}

func (c *RecordingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *RecordingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: params("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *RecordingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: params("color", serializeColor(color)),
	})
}

func (c *RecordingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawRect",
		Params: params(
			"left", round2(rect.Left), "top", round2(rect.Top),
			"right", round2(rect.Right), "bottom", round2(rect.Bottom),
			"color", serializeColor(paint.Color),
		),
	})
}

func (c *RecordingCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawCircle",
		Params: params(
			"cx", round2(center.X),
			"cy", round2(center.Y),
			"radius", round2(radius),
			"color", serializeColor(paint.Color),
			"style", paint.Style.String(),
		),
	})
}

func (c *RecordingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: params(
			"x1", round2(start.X), "y1", round2(start.Y),
			"x2", round2(end.X), "y2", round2(end.Y),
			"strokeWidth", round2(paint.StrokeWidth),
			"cap", paint.StrokeCap.String(),
			"color", serializeColor(paint.Color),
		),
	})
}

func (c *RecordingCanvas) DrawText(layout *graphics.TextLayout, position graphics.Offset) {
	op := DisplayOp{
		Op:     "drawText",
		Params: params("x", round2(position.X), "y", round2(position.Y)),
	}
	if layout != nil {
		op.Text = layout.Text
		op.Params["color"] = serializeColor(layout.Style.Color)
	}
	c.ops = append(c.ops, op)
}

func (c *RecordingCanvas) DrawImage(img image.Image, position graphics.Offset) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawImage",
		Params: params("x", round2(position.X), "y", round2(position.Y)),
		Image:  img,
	})
}

func (c *RecordingCanvas) Size() graphics.Size {
	return c.size
}

// SerializeDisplayList replays a DisplayList through a recording canvas.
func SerializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	canvas := &RecordingCanvas{size: dl.Size()}
	dl.Paint(canvas)
	return canvas.ops
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// params creates a map from alternating key-value pairs.
func params(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
