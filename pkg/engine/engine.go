// Package engine hosts a render tree on a raster surface. It owns the UI
// goroutine: queued callbacks, layout, paint and presentation all run inside
// StepFrame, which Run calls whenever work is pending.
package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/go-drift/driftclock/pkg/graphics"
	"github.com/go-drift/driftclock/pkg/layout"
)

// Presenter receives every painted frame. The image is reused by the next
// frame; copy it to keep it.
type Presenter interface {
	Present(frame FrameSnapshot, img *image.RGBA) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(frame FrameSnapshot, img *image.RGBA) error

// Present calls f.
func (f PresenterFunc) Present(frame FrameSnapshot, img *image.RGBA) error {
	return f(frame, img)
}

// Config configures an Engine.
type Config struct {
	// Constraints passed to the root each frame. Zero means loose
	// constraints of 300x300.
	Constraints layout.Constraints
	// Background clears the surface before each paint. Nil means black;
	// graphics.ColorTransparent leaves uncovered pixels transparent.
	Background *graphics.Color
	// Presenter receives painted frames. Nil discards them.
	Presenter Presenter
	// Surfaces allocates the frame surface. Nil uses graphics.RasterSurfaces.
	Surfaces graphics.SurfaceFactory
	// Logger receives frame diagnostics at debug level. Nil discards them.
	Logger *log.Logger
	// TraceCapacity bounds the frame trace.
	TraceCapacity int
	// FrameBudget is the duration above which a frame counts as slow.
	FrameBudget time.Duration
}

// Engine drives one root render box.
type Engine struct {
	// frameLock guards everything a frame touches.
	frameLock   sync.Mutex
	pipeline    *layout.PipelineOwner
	root        layout.RenderBox
	constraints layout.Constraints
	surface     *graphics.Surface
	surfaces    graphics.SurfaceFactory
	presenter   Presenter
	logger      *log.Logger
	trace       *FrameTrace
	background  graphics.Color

	frames atomic.Uint64
	closed atomic.Bool

	dispatchMu          sync.Mutex
	dispatchQueue       []func()
	pendingFrameRequest atomic.Bool
	wake                chan struct{}
}

// New creates an engine with no root.
func New(cfg Config) *Engine {
	if cfg.Constraints == (layout.Constraints{}) {
		cfg.Constraints = layout.Loose(graphics.Size{Width: 300, Height: 300})
	}
	background := graphics.ColorBlack
	if cfg.Background != nil {
		background = *cfg.Background
	}
	if cfg.Surfaces == nil {
		cfg.Surfaces = graphics.RasterSurfaces
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	e := &Engine{
		pipeline:    &layout.PipelineOwner{},
		constraints: cfg.Constraints,
		surfaces:    cfg.Surfaces,
		presenter:   cfg.Presenter,
		logger:      cfg.Logger,
		trace:       NewFrameTrace(cfg.TraceCapacity, cfg.FrameBudget),
		background:  background,
		wake:        make(chan struct{}, 1),
	}
	e.pipeline.SetOnNeedsVisualUpdate(e.signal)
	return e
}

// SetRoot installs the root render box, disposing any previous root.
func (e *Engine) SetRoot(root layout.RenderBox) {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	if e.root != nil {
		e.root.SetOwner(nil)
		if d, ok := e.root.(layout.Disposer); ok {
			d.Dispose()
		}
	}
	e.root = root
	if root != nil {
		root.SetOwner(e.pipeline)
		root.MarkNeedsLayout()
		root.MarkNeedsPaint()
	}
	e.signal()
}

// SetConstraints changes the constraints given to the root.
func (e *Engine) SetConstraints(c layout.Constraints) {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	e.constraints = c
	e.pendingFrameRequest.Store(true)
	e.signal()
}

// Dispatch schedules a callback to run on the UI goroutine during the next
// frame. Safe from any goroutine; never blocks.
func (e *Engine) Dispatch(callback func()) {
	if callback == nil || e.closed.Load() {
		return
	}
	e.dispatchMu.Lock()
	e.dispatchQueue = append(e.dispatchQueue, callback)
	e.dispatchMu.Unlock()
	e.signal()
}

// RequestFrame forces the root to repaint on the next frame.
func (e *Engine) RequestFrame() {
	e.pendingFrameRequest.Store(true)
	e.signal()
}

// NeedsFrame reports whether StepFrame has work to do. If a frame is in
// progress it returns true rather than blocking.
func (e *Engine) NeedsFrame() bool {
	if !e.frameLock.TryLock() {
		return true
	}
	defer e.frameLock.Unlock()
	return e.needsFrameLocked()
}

func (e *Engine) needsFrameLocked() bool {
	e.dispatchMu.Lock()
	hasCallbacks := len(e.dispatchQueue) > 0
	e.dispatchMu.Unlock()
	if hasCallbacks || e.pendingFrameRequest.Load() {
		return true
	}
	return e.root != nil && (e.pipeline.NeedsLayout() || e.pipeline.NeedsPaint())
}

// Frames returns how many frames have been presented.
func (e *Engine) Frames() uint64 {
	return e.frames.Load()
}

// Trace returns the frame timing trace.
func (e *Engine) Trace() *FrameTrace {
	return e.trace
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) drainDispatchQueue() []func() {
	e.dispatchMu.Lock()
	callbacks := e.dispatchQueue
	e.dispatchQueue = nil
	e.dispatchMu.Unlock()
	return callbacks
}

// StepFrame runs queued callbacks, lays out and paints the root if dirty,
// and hands the result to the presenter. A panic inside the frame is
// reported and returned as a KindPanic error.
func (e *Engine) StepFrame() (snapshot *FrameSnapshot, err error) {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	defer errors.RecoverWithCallback("engine.StepFrame", func(r any) {
		snapshot = nil
		err = &errors.ClockError{Op: "engine.StepFrame", Kind: errors.KindPanic, Err: fmt.Errorf("%v", r)}
	})

	start := time.Now()
	sample := FrameSample{At: start}
	snapshot = &FrameSnapshot{}

	// Dispatch
	phaseStart := start
	callbacks := e.drainDispatchQueue()
	for _, callback := range callbacks {
		callback()
	}
	snapshot.Dispatched = len(callbacks)
	sample.Dispatched = len(callbacks)
	if e.pendingFrameRequest.Swap(false) && e.root != nil {
		e.root.MarkNeedsPaint()
	}
	sample.Phases.Dispatch = time.Since(phaseStart)

	if e.root == nil {
		return snapshot, nil
	}

	// Layout
	phaseStart = time.Now()
	e.pipeline.FlushLayoutForRoot(e.root, e.constraints)
	sample.Phases.Layout = time.Since(phaseStart)

	// Paint
	phaseStart = time.Now()
	dirty := e.pipeline.FlushPaint()
	sample.DirtyPaint = len(dirty)
	if len(dirty) == 0 {
		return snapshot, nil
	}
	size := e.root.Size()
	if size.IsEmpty() {
		// Nothing can be presented, but the root still paints so it can
		// report the failure and arm its own retry.
		e.paintDiscarded(size)
		e.logger.Debug("empty root, frame not presented", "width", size.Width, "height", size.Height)
		return snapshot, nil
	}
	surface, err := e.ensureSurface(size)
	if err != nil {
		return nil, err
	}
	canvas := surface.Canvas()
	canvas.Clear(e.background)
	ctx := &layout.PaintContext{Canvas: canvas}
	ctx.PaintChild(e.root, graphics.Offset{})
	sample.Phases.Paint = time.Since(phaseStart)

	snapshot.FrameID = e.frames.Add(1)
	snapshot.Size = surface.Size()
	snapshot.Painted = true
	sample.FrameID = snapshot.FrameID

	// Present
	phaseStart = time.Now()
	if e.presenter != nil {
		if err := e.presenter.Present(*snapshot, surface.Image()); err != nil {
			return snapshot, errors.Wrap("engine.Present", errors.KindRender, err)
		}
	}
	sample.Phases.Present = time.Since(phaseStart)

	sample.Total = time.Since(start)
	e.trace.Record(sample)
	e.logger.Debug("frame", "id", snapshot.FrameID, "dispatched", snapshot.Dispatched,
		"took", sample.Total.Round(10*time.Microsecond))
	return snapshot, nil
}

// paintDiscarded paints the root into a recording that is dropped.
func (e *Engine) paintDiscarded(size graphics.Size) {
	var recorder graphics.PictureRecorder
	ctx := &layout.PaintContext{Canvas: recorder.BeginRecording(size)}
	ctx.PaintChild(e.root, graphics.Offset{})
	recorder.EndRecording()
}

// ensureSurface reuses the frame surface while its pixel size matches.
func (e *Engine) ensureSurface(size graphics.Size) (*graphics.Surface, error) {
	want := graphics.Size{Width: math.Ceil(size.Width), Height: math.Ceil(size.Height)}
	if e.surface != nil && e.surface.Size() == want {
		return e.surface, nil
	}
	surface, err := e.surfaces.NewSurface(size)
	if err != nil {
		return nil, errors.Wrap("engine.ensureSurface", errors.KindAlloc, err)
	}
	e.surface = surface
	return surface, nil
}

// Run steps frames whenever work is pending until ctx is done or Close is
// called. Frame errors are reported and the loop continues.
func (e *Engine) Run(ctx context.Context) error {
	e.signal()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.wake:
		}
		if e.closed.Load() {
			return nil
		}
		for e.NeedsFrame() {
			if _, err := e.StepFrame(); err != nil {
				reportFrameError(err)
			}
			if e.closed.Load() || ctx.Err() != nil {
				break
			}
		}
	}
}

// Close stops Run, disposes the root and drops queued callbacks.
func (e *Engine) Close() {
	if e.closed.Swap(true) {
		return
	}
	e.frameLock.Lock()
	if e.root != nil {
		if d, ok := e.root.(layout.Disposer); ok {
			d.Dispose()
		}
		e.root.SetOwner(nil)
	}
	e.frameLock.Unlock()
	e.drainDispatchQueue()
	e.signal()
}

func reportFrameError(err error) {
	if errors.KindOf(err) == errors.KindPanic {
		// already reported by RecoverWithCallback
		return
	}
	if ce, ok := err.(*errors.ClockError); ok {
		errors.Report(ce)
		return
	}
	errors.Report(&errors.ClockError{Op: "engine.Run", Kind: errors.KindRender, Err: err})
}
