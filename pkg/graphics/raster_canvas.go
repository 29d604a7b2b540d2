package graphics

import (
	stderrors "errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maxSurfacePixels bounds offscreen allocations (64 megapixels).
const maxSurfacePixels = 1 << 26

// circleKappa is the cubic bezier control distance for a quarter circle.
var circleKappa = 4.0 / 3.0 * math.Tan(math.Pi/8)

var (
	// ErrInvalidSurfaceSize is returned for zero, negative or non-finite sizes.
	ErrInvalidSurfaceSize = stderrors.New("invalid surface size")

	// ErrSurfaceTooLarge is returned when a surface exceeds maxSurfacePixels.
	ErrSurfaceTooLarge = stderrors.New("surface too large")
)

// Surface is an offscreen RGBA raster with a canvas that draws into it.
type Surface struct {
	img    *image.RGBA
	canvas *RasterCanvas
}

// NewSurface allocates a transparent raster covering size, rounded up to
// whole pixels.
func NewSurface(size Size) (*Surface, error) {
	if math.IsNaN(size.Width) || math.IsNaN(size.Height) ||
		math.IsInf(size.Width, 0) || math.IsInf(size.Height, 0) || size.IsEmpty() {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidSurfaceSize, size.Width, size.Height)
	}
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	if w > maxSurfacePixels/h {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceTooLarge, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Surface{img: img, canvas: NewRasterCanvas(img)}, nil
}

// Canvas returns the canvas drawing into the surface.
func (s *Surface) Canvas() Canvas {
	return s.canvas
}

// Image returns the backing raster.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Size returns the pixel size of the surface.
func (s *Surface) Size() Size {
	b := s.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// SurfaceFactory allocates offscreen surfaces.
type SurfaceFactory interface {
	NewSurface(size Size) (*Surface, error)
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func(size Size) (*Surface, error)

// NewSurface calls f(size).
func (f SurfaceFactoryFunc) NewSurface(size Size) (*Surface, error) {
	return f(size)
}

// RasterSurfaces is the default SurfaceFactory backed by NewSurface.
var RasterSurfaces SurfaceFactory = SurfaceFactoryFunc(NewSurface)

// RasterCanvas renders drawing commands directly into an RGBA image.
// Only translation is supported as a transform.
type RasterCanvas struct {
	dst    *image.RGBA
	origin Offset
	stack  []Offset
	rast   *vector.Rasterizer
}

// NewRasterCanvas returns a canvas drawing into dst.
func NewRasterCanvas(dst *image.RGBA) *RasterCanvas {
	b := dst.Bounds()
	return &RasterCanvas{
		dst:  dst,
		rast: vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

func (c *RasterCanvas) Save() {
	c.stack = append(c.stack, c.origin)
}

func (c *RasterCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.origin = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	c.origin = c.origin.Add(Offset{X: dx, Y: dy})
}

func (c *RasterCanvas) Clear(color Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	r := rect.Translate(c.origin.X, c.origin.Y)
	if paint.Style != PaintStyleStroke {
		c.beginPath()
		c.moveTo(r.Left, r.Top)
		c.lineTo(r.Right, r.Top)
		c.lineTo(r.Right, r.Bottom)
		c.lineTo(r.Left, r.Bottom)
		c.rast.ClosePath()
		c.fill(paint.Color)
	}
	if paint.Style != PaintStyleFill {
		corners := []Offset{
			{X: r.Left, Y: r.Top}, {X: r.Right, Y: r.Top},
			{X: r.Right, Y: r.Bottom}, {X: r.Left, Y: r.Bottom},
		}
		for i := range corners {
			c.strokeSegment(corners[i], corners[(i+1)%len(corners)], paint)
		}
	}
}

func (c *RasterCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	p := center.Add(c.origin)
	if paint.Style != PaintStyleStroke {
		c.beginPath()
		c.circle(p, radius, false)
		c.fill(paint.Color)
	}
	if paint.Style != PaintStyleFill {
		half := strokeWidth(paint) / 2
		c.beginPath()
		c.circle(p, radius+half, false)
		if inner := radius - half; inner > 0 {
			c.circle(p, inner, true)
		}
		c.fill(paint.Color)
	}
}

func (c *RasterCanvas) DrawLine(start, end Offset, paint Paint) {
	c.strokeSegment(start.Add(c.origin), end.Add(c.origin), paint)
}

func (c *RasterCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.Face == nil || layout.Text == "" {
		return
	}
	p := position.Add(c.origin)
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(layout.Style.Color.NRGBA()),
		Face: layout.Face,
		Dot:  fixed.Point26_6{X: floatToFixed(p.X), Y: floatToFixed(p.Y)},
	}
	d.DrawString(layout.Text)
}

func (c *RasterCanvas) DrawImage(img image.Image, position Offset) {
	if img == nil {
		return
	}
	p := position.Add(c.origin)
	src := img.Bounds()
	at := image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	dr := image.Rectangle{Min: at, Max: at.Add(src.Size())}
	draw.Draw(c.dst, dr, img, src.Min, draw.Over)
}

func (c *RasterCanvas) Size() Size {
	b := c.dst.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// strokeSegment fills the quad (plus caps) covering a stroked segment.
// Endpoints are already in device space.
func (c *RasterCanvas) strokeSegment(start, end Offset, paint Paint) {
	half := strokeWidth(paint) / 2
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		if paint.StrokeCap == CapButt {
			return
		}
		c.beginPath()
		c.circle(start, half, false)
		c.fill(paint.Color)
		return
	}
	ux, uy := dx/length, dy/length
	if paint.StrokeCap == CapSquare {
		start = Offset{X: start.X - ux*half, Y: start.Y - uy*half}
		end = Offset{X: end.X + ux*half, Y: end.Y + uy*half}
	}
	nx, ny := -uy*half, ux*half

	c.beginPath()
	c.moveTo(start.X+nx, start.Y+ny)
	c.lineTo(end.X+nx, end.Y+ny)
	c.lineTo(end.X-nx, end.Y-ny)
	c.lineTo(start.X-nx, start.Y-ny)
	c.rast.ClosePath()
	if paint.StrokeCap == CapRound {
		c.circle(start, half, false)
		c.circle(end, half, false)
	}
	c.fill(paint.Color)
}

// circle appends a closed circle contour made of four cubic segments.
// reverse winds counter-clockwise so the contour cuts a hole.
func (c *RasterCanvas) circle(center Offset, radius float64, reverse bool) {
	k := circleKappa * radius
	cx, cy := center.X, center.Y
	c.moveTo(cx+radius, cy)
	if !reverse {
		c.cubeTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
		c.cubeTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
		c.cubeTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
		c.cubeTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	} else {
		c.cubeTo(cx+radius, cy-k, cx+k, cy-radius, cx, cy-radius)
		c.cubeTo(cx-k, cy-radius, cx-radius, cy-k, cx-radius, cy)
		c.cubeTo(cx-radius, cy+k, cx-k, cy+radius, cx, cy+radius)
		c.cubeTo(cx+k, cy+radius, cx+radius, cy+k, cx+radius, cy)
	}
	c.rast.ClosePath()
}

func (c *RasterCanvas) beginPath() {
	b := c.dst.Bounds()
	c.rast.Reset(b.Dx(), b.Dy())
}

func (c *RasterCanvas) fill(color Color) {
	c.rast.DrawOp = draw.Over
	c.rast.Draw(c.dst, c.dst.Bounds(), image.NewUniform(color.NRGBA()), image.Point{})
}

func (c *RasterCanvas) moveTo(x, y float64) {
	c.rast.MoveTo(float32(x), float32(y))
}

func (c *RasterCanvas) lineTo(x, y float64) {
	c.rast.LineTo(float32(x), float32(y))
}

func (c *RasterCanvas) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	c.rast.CubeTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))
}

// strokeWidth treats zero-width strokes as one-pixel hairlines.
func strokeWidth(paint Paint) float64 {
	if paint.StrokeWidth <= 0 {
		return 1
	}
	return paint.StrokeWidth
}
