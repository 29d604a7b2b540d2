package clockface

import (
	stderrors "errors"

	"github.com/go-drift/driftclock/pkg/animation"
	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/go-drift/driftclock/pkg/graphics"
	"github.com/go-drift/driftclock/pkg/layout"
)

// ViewState is the lifecycle stage of a ClockView.
type ViewState int

const (
	// StateUninitialized is the state before the first layout.
	StateUninitialized ViewState = iota
	// StateSized means geometry is known but no dial is cached for it.
	StateSized
	// StateDialCached means the dial is cached and the first frame is in
	// progress.
	StateDialCached
	// StateSteady means a full frame was painted and a follow-up is armed.
	StateSteady
	// StateDetached is terminal; no further repaints are scheduled.
	StateDetached
)

func (s ViewState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSized:
		return "sized"
	case StateDialCached:
		return "dial_cached"
	case StateSteady:
		return "steady"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Options configures a ClockView. Nil fields take defaults.
type Options struct {
	// Style defaults to DefaultStyle(). Zero fields of a partial style are
	// filled by Style.WithDefaults.
	Style Style
	// Time defaults to SystemTime{}.
	Time TimeSource
	// Measurer defaults to graphics.DefaultFontManagerErr.
	Measurer graphics.TextMeasurer
	// Surfaces defaults to graphics.RasterSurfaces.
	Surfaces graphics.SurfaceFactory
	// Timers defaults to animation.Timers().
	Timers animation.TimerFactory
	// Dispatcher receives follow-up repaint requests. Nil disables the
	// redraw loop, which suits single-frame renders.
	Dispatcher Dispatcher
}

// ClockView is a render box that draws an analog clock.
type ClockView struct {
	layout.RenderBoxBase

	style     Style
	time      TimeSource
	resolver  SizeResolver
	cache     *DialCache
	scheduler *FrameScheduler
	state     ViewState
}

// NewClockView creates a clock view ready to be attached to a pipeline.
func NewClockView(opts Options) *ClockView {
	if opts.Style == (Style{}) {
		opts.Style = DefaultStyle()
	} else {
		opts.Style = opts.Style.WithDefaults()
	}
	if opts.Time == nil {
		opts.Time = SystemTime{}
	}
	if opts.Measurer == nil {
		if fm, err := graphics.DefaultFontManagerErr(); err == nil {
			opts.Measurer = fm
		}
	}
	v := &ClockView{
		style:    opts.Style,
		time:     opts.Time,
		resolver: SizeResolver{Fallback: opts.Style.FallbackSide},
		cache:    NewDialCache(opts.Style, opts.Measurer, opts.Surfaces),
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = DispatcherFunc(func(func()) {})
	}
	v.scheduler = NewFrameScheduler(opts.Style.RedrawDelay, opts.Timers, dispatcher, v.MarkNeedsPaint)
	if opts.Dispatcher == nil {
		v.scheduler.Stop()
	}
	v.SetSelf(v)
	return v
}

// PerformLayout resolves the square geometry from the constraints. A new
// side drops the cached dial.
func (v *ClockView) PerformLayout() {
	c := v.Constraints()
	g, changed := v.resolver.Resolve(layout.MeasureSpecsFor(c))
	if changed {
		v.cache.Invalidate()
		if v.state != StateDetached {
			v.state = StateSized
		}
		v.MarkNeedsPaint()
	}
	v.SetSize(c.Constrain(graphics.Size{Width: g.Side, Height: g.Side}))
}

// Paint draws the cached dial and the current hands, then arms the next
// repaint. Failures skip the rest of the frame but still arm it.
func (v *ClockView) Paint(ctx *layout.PaintContext) {
	v.ClearNeedsPaint()
	g, ok := v.resolver.Current()
	if !ok {
		return
	}
	defer v.scheduler.FrameCompleted()

	dial, err := v.cache.Dial(g)
	if err != nil {
		report("clockface.ClockView.Paint", errors.KindRender, err)
		return
	}
	if v.state == StateSized {
		v.state = StateDialCached
	}
	ctx.Canvas.DrawImage(dial.Image, graphics.Offset{X: g.CenterX - g.Radius, Y: g.CenterY - g.Radius})

	reading, err := v.time.Now()
	if err != nil {
		report("clockface.ClockView.Paint", errors.KindTime, err)
		return
	}
	center := graphics.Offset{X: g.CenterX, Y: g.CenterY}
	for _, hand := range HandsFor(reading, g.Radius, v.style) {
		hand.Draw(ctx.Canvas, center)
	}
	if v.state == StateDialCached {
		v.state = StateSteady
	}
}

// Detach stops the redraw loop and releases the cached dial.
func (v *ClockView) Detach() {
	v.scheduler.Stop()
	v.cache.Invalidate()
	v.state = StateDetached
}

// Dispose implements layout.Disposer.
func (v *ClockView) Dispose() {
	v.Detach()
}

// State returns the lifecycle stage.
func (v *ClockView) State() ViewState {
	return v.state
}

// Geometry returns the last resolved geometry.
func (v *ClockView) Geometry() Geometry {
	g, _ := v.resolver.Current()
	return g
}

// DialCache exposes the dial cache for diagnostics.
func (v *ClockView) DialCache() *DialCache {
	return v.cache
}

// Scheduler exposes the frame scheduler for diagnostics.
func (v *ClockView) Scheduler() *FrameScheduler {
	return v.scheduler
}

// report forwards err to the global handler, keeping an existing
// ClockError intact.
func report(op string, kind errors.ErrorKind, err error) {
	var ce *errors.ClockError
	if stderrors.As(err, &ce) {
		errors.Report(ce)
		return
	}
	errors.Report(&errors.ClockError{Op: op, Kind: kind, Err: err})
}
