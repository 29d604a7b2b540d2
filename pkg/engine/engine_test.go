package engine

import (
	"context"
	stderrors "errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/driftclock/pkg/clockface"
	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/go-drift/driftclock/pkg/graphics"
	"github.com/go-drift/driftclock/pkg/layout"
	drifttest "github.com/go-drift/driftclock/pkg/testing"
)

type frameLog struct {
	mu     sync.Mutex
	frames []FrameSnapshot
	sizes  []image.Rectangle
	corner []color.RGBA
	ch     chan FrameSnapshot
}

func newFrameLog() *frameLog {
	return &frameLog{ch: make(chan FrameSnapshot, 16)}
}

func (l *frameLog) Present(frame FrameSnapshot, img *image.RGBA) error {
	l.mu.Lock()
	l.frames = append(l.frames, frame)
	l.sizes = append(l.sizes, img.Bounds())
	l.corner = append(l.corner, img.RGBAAt(0, 0))
	l.mu.Unlock()
	select {
	case l.ch <- frame:
	default:
	}
	return nil
}

func (l *frameLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

func newClock(t *testing.T, e *Engine, timers *drifttest.FakeClock) *clockface.ClockView {
	t.Helper()
	fm, err := graphics.NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	return clockface.NewClockView(clockface.Options{
		Time:       clockface.FixedTime{Hour12: 3, Minute: 30},
		Measurer:   fm,
		Timers:     timers,
		Dispatcher: e,
	})
}

type panicBox struct {
	layout.RenderBoxBase
	panics bool
}

func newPanicBox() *panicBox {
	b := &panicBox{panics: true}
	b.SetSelf(b)
	return b
}

func (b *panicBox) PerformLayout() {
	b.SetSize(b.Constraints().Constrain(graphics.Size{Width: 10, Height: 10}))
}

func (b *panicBox) Paint(ctx *layout.PaintContext) {
	if b.panics {
		panic("paint exploded")
	}
}

type panicRecorder struct {
	mu     sync.Mutex
	panics []*errors.PanicError
	errs   []*errors.ClockError
}

func (h *panicRecorder) HandleError(err *errors.ClockError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *panicRecorder) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func TestStepFrame_NoRoot(t *testing.T) {
	e := New(Config{})
	snap, err := e.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if snap.Painted || e.Frames() != 0 {
		t.Error("nothing should be painted without a root")
	}
}

func TestStepFrame_PaintsOnlyWhenDirty(t *testing.T) {
	frames := newFrameLog()
	blue := graphics.ColorBlue
	e := New(Config{Presenter: frames, Background: &blue})
	clock := drifttest.NewFakeClock()
	e.SetRoot(newClock(t, e, clock))

	if !e.NeedsFrame() {
		t.Fatal("a new root should need a frame")
	}
	snap, err := e.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if !snap.Painted || snap.FrameID != 1 {
		t.Errorf("snapshot = %+v, want painted frame 1", snap)
	}
	if got := frames.sizes[0]; got.Dx() != 300 || got.Dy() != 300 {
		t.Errorf("frame bounds = %v, want 300x300", got)
	}
	if got := frames.corner[0]; got != (color.RGBA{B: 0xFF, A: 0xFF}) {
		t.Errorf("corner pixel = %v, want background blue", got)
	}

	if e.NeedsFrame() {
		t.Error("no work should remain after painting")
	}
	snap, err = e.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if snap.Painted || frames.count() != 1 {
		t.Error("clean frame should not be presented")
	}
}

func TestStepFrame_ClockFollowUpThroughDispatch(t *testing.T) {
	frames := newFrameLog()
	e := New(Config{Presenter: frames})
	clock := drifttest.NewFakeClock()
	e.SetRoot(newClock(t, e, clock))

	if _, err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	for i := 0; i < 3; i++ {
		if e.NeedsFrame() {
			t.Fatalf("cycle %d: frame needed before the delay elapsed", i)
		}
		clock.Advance(500 * time.Millisecond)
		if !e.NeedsFrame() {
			t.Fatalf("cycle %d: follow-up did not request a frame", i)
		}
		snap, err := e.StepFrame()
		if err != nil {
			t.Fatalf("StepFrame: %v", err)
		}
		if !snap.Painted || snap.Dispatched != 1 {
			t.Errorf("cycle %d: snapshot = %+v, want painted with one dispatch", i, snap)
		}
	}
	if e.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", e.Frames())
	}
	samples := e.Trace().Samples()
	if len(samples) != 4 {
		t.Fatalf("trace samples = %d, want 4", len(samples))
	}
	for i, s := range samples {
		if s.FrameID != uint64(i+1) {
			t.Errorf("sample %d FrameID = %d, want %d", i, s.FrameID, i+1)
		}
	}
	if st := e.Trace().Stats(); st.Frames != 4 || st.Max < st.Mean {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestDispatch_FromOtherGoroutine(t *testing.T) {
	e := New(Config{})
	ran := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Dispatch(func() { close(ran) })
	}()
	wg.Wait()

	snap, err := e.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	select {
	case <-ran:
	default:
		t.Fatal("callback did not run on StepFrame")
	}
	if snap.Dispatched != 1 {
		t.Errorf("Dispatched = %d, want 1", snap.Dispatched)
	}
}

func TestSetConstraints_ResizesSurface(t *testing.T) {
	frames := newFrameLog()
	e := New(Config{Presenter: frames})
	e.SetRoot(newClock(t, e, drifttest.NewFakeClock()))
	if _, err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame: %v", err)
	}

	e.SetConstraints(layout.Tight(graphics.Size{Width: 200, Height: 120}))
	if _, err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if got := frames.sizes[1]; got.Dx() != 200 || got.Dy() != 120 {
		t.Errorf("frame bounds = %v, want 200x120", got)
	}
}

func TestStepFrame_RecoversPanics(t *testing.T) {
	h := &panicRecorder{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	e := New(Config{})
	box := newPanicBox()
	e.SetRoot(box)

	_, err := e.StepFrame()
	if errors.KindOf(err) != errors.KindPanic {
		t.Fatalf("StepFrame error = %v, want panic kind", err)
	}
	if len(h.panics) != 1 || h.panics[0].Op != "engine.StepFrame" {
		t.Errorf("reported panics = %+v", h.panics)
	}

	box.panics = false
	box.MarkNeedsPaint()
	if _, err := e.StepFrame(); err != nil {
		t.Errorf("engine should keep working after a panic: %v", err)
	}
}

func TestStepFrame_SurfaceFailure(t *testing.T) {
	boom := stderrors.New("no memory")
	e := New(Config{Surfaces: graphics.SurfaceFactoryFunc(func(graphics.Size) (*graphics.Surface, error) {
		return nil, boom
	})})
	e.SetRoot(newPanicBox())

	_, err := e.StepFrame()
	if errors.KindOf(err) != errors.KindAlloc || !stderrors.Is(err, boom) {
		t.Errorf("StepFrame error = %v, want alloc wrapping %v", err, boom)
	}
}

func TestRun_DrivesClockUntilCancelled(t *testing.T) {
	frames := newFrameLog()
	e := New(Config{Presenter: frames})
	clock := drifttest.NewFakeClock()
	view := newClock(t, e, clock)
	e.SetRoot(view)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-frames.ch:
		case <-time.After(5 * time.Second):
			t.Fatalf("frame %d not presented", i)
		}
		clock.Advance(500 * time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if !stderrors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
	e.Close()
	if view.State() != clockface.StateDetached {
		t.Errorf("Close should detach the clock, state = %v", view.State())
	}
}

func TestRun_StopsOnClose(t *testing.T) {
	e := New(Config{})
	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()
	e.Close()
	e.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after Close")
	}
}

func TestFrameTrace_WrapsAndCountsSlowFrames(t *testing.T) {
	tr := NewFrameTrace(2, time.Millisecond)
	tr.Record(FrameSample{FrameID: 1, Total: time.Millisecond / 2})
	tr.Record(FrameSample{FrameID: 2, Total: 3 * time.Millisecond})
	tr.Record(FrameSample{FrameID: 3, Total: time.Millisecond})

	samples := tr.Samples()
	if len(samples) != 2 || samples[0].FrameID != 2 || samples[1].FrameID != 3 {
		t.Errorf("samples = %+v, want frames 2, 3", samples)
	}
	want := FrameStats{Frames: 2, Slow: 1, Mean: 2 * time.Millisecond, Max: 3 * time.Millisecond, Budget: time.Millisecond}
	if got := tr.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestFrameTrace_Empty(t *testing.T) {
	tr := NewFrameTrace(0, 0)
	if got := tr.Stats(); got != (FrameStats{Budget: defaultFrameBudget}) {
		t.Errorf("Stats() = %+v, want zero with default budget", got)
	}
	if len(tr.Samples()) != 0 {
		t.Error("new trace should hold no samples")
	}
}

func TestStepFrame_TransparentBackground(t *testing.T) {
	frames := newFrameLog()
	transparent := graphics.ColorTransparent
	e := New(Config{Presenter: frames, Background: &transparent})
	e.SetRoot(newClock(t, e, drifttest.NewFakeClock()))
	if _, err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if got := frames.corner[0]; got != (color.RGBA{}) {
		t.Errorf("corner pixel = %v, want transparent", got)
	}
}

func TestStepFrame_EmptyRootKeepsRetrying(t *testing.T) {
	h := &panicRecorder{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	frames := newFrameLog()
	e := New(Config{Presenter: frames})
	e.SetConstraints(layout.Tight(graphics.Size{}))
	clock := drifttest.NewFakeClock()
	view := newClock(t, e, clock)
	e.SetRoot(view)

	snap, err := e.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if snap.Painted || frames.count() != 0 {
		t.Error("an empty root should not be presented")
	}
	if len(h.errs) != 1 || h.errs[0].Kind != errors.KindAlloc {
		t.Fatalf("reported errors = %+v, want one alloc error", h.errs)
	}
	if !view.Scheduler().Pending() {
		t.Fatal("the clock should arm a retry after an empty paint")
	}

	clock.Advance(500 * time.Millisecond)
	if _, err := e.StepFrame(); err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if len(h.errs) != 2 {
		t.Errorf("retry should report again, got %d errors", len(h.errs))
	}

	e.SetConstraints(layout.Tight(graphics.Size{Width: 100, Height: 100}))
	snap, err = e.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if !snap.Painted || frames.count() != 1 {
		t.Errorf("snapshot = %+v, want the first presented frame after resize", snap)
	}
}
