package clockface

import (
	stderrors "errors"
	"fmt"
	"image"

	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/go-drift/driftclock/pkg/graphics"
)

// ErrSurfaceAlloc is wrapped by every dial allocation failure.
var ErrSurfaceAlloc = stderrors.New("dial surface allocation failed")

// DialImage is an immutable rendered dial and the geometry it was built for.
// Picture holds the drawing commands that produced Image, with the dial
// center at (CenterX, CenterY).
type DialImage struct {
	Geometry Geometry
	Image    image.Image
	Picture  *graphics.DisplayList
}

// DialCache renders the dial once per geometry. It holds either nothing or
// a single DialImage, replaced wholesale on rebuild.
type DialCache struct {
	style    Style
	measurer graphics.TextMeasurer
	surfaces graphics.SurfaceFactory

	entry  *DialImage
	builds int
}

// NewDialCache returns an empty cache. A nil surfaces uses
// graphics.RasterSurfaces.
func NewDialCache(style Style, measurer graphics.TextMeasurer, surfaces graphics.SurfaceFactory) *DialCache {
	if surfaces == nil {
		surfaces = graphics.RasterSurfaces
	}
	return &DialCache{style: style, measurer: measurer, surfaces: surfaces}
}

// Dial returns the cached image for g, rendering it first if the cache is
// empty or holds a different geometry. On error the previous entry is
// dropped and nothing partial is stored.
func (c *DialCache) Dial(g Geometry) (*DialImage, error) {
	const op = "clockface.DialCache.Dial"
	if c.entry != nil && c.entry.Geometry == g {
		return c.entry, nil
	}
	c.entry = nil

	size := graphics.Size{Width: 2 * g.CenterX, Height: 2 * g.CenterY}
	if !(g.Radius > 0) {
		return nil, errors.Wrap(op, errors.KindAlloc,
			fmt.Errorf("%w: side %v", ErrSurfaceAlloc, g.Side))
	}
	surface, err := c.surfaces.NewSurface(size)
	if err != nil {
		return nil, errors.Wrap(op, errors.KindAlloc, fmt.Errorf("%w: %w", ErrSurfaceAlloc, err))
	}
	if c.measurer == nil {
		return nil, errors.Wrap(op, errors.KindInit, stderrors.New("no text measurer"))
	}
	dial, err := LayoutDial(g, c.measurer, c.style)
	if err != nil {
		return nil, errors.Wrap(op, errors.KindRender, err)
	}
	var recorder graphics.PictureRecorder
	dial.Paint(recorder.BeginRecording(size), graphics.Offset{X: g.CenterX, Y: g.CenterY})
	picture := recorder.EndRecording()
	picture.Paint(surface.Canvas())

	c.entry = &DialImage{Geometry: g, Image: surface.Image(), Picture: picture}
	c.builds++
	return c.entry, nil
}

// Cached returns the current entry, or nil when empty.
func (c *DialCache) Cached() *DialImage {
	return c.entry
}

// Invalidate empties the cache.
func (c *DialCache) Invalidate() {
	c.entry = nil
}

// Builds returns how many dials have been rendered.
func (c *DialCache) Builds() int {
	return c.builds
}
