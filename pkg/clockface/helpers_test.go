package clockface

import (
	stderrors "errors"
	"sync"

	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/go-drift/driftclock/pkg/graphics"
)

// stubMeasurer reports 10px per character and a 20px cap height so numeral
// placement is predictable.
type stubMeasurer struct {
	calls int
	err   error
}

func (m *stubMeasurer) LayoutText(text string, style graphics.TextStyle) (*graphics.TextLayout, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	w := 10 * float64(len(text))
	return &graphics.TextLayout{
		Text:   text,
		Style:  style,
		Size:   graphics.Size{Width: w, Height: 20},
		Bounds: graphics.RectFromLTWH(0, -20, w, 20),
	}, nil
}

// countingSurfaces wraps graphics.NewSurface and records requested sizes.
type countingSurfaces struct {
	sizes []graphics.Size
	err   error
}

func (f *countingSurfaces) NewSurface(size graphics.Size) (*graphics.Surface, error) {
	f.sizes = append(f.sizes, size)
	if f.err != nil {
		return nil, f.err
	}
	return graphics.NewSurface(size)
}

// recordingHandler captures reported errors.
type recordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.ClockError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.ClockError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func (h *recordingHandler) kinds() []errors.ErrorKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []errors.ErrorKind
	for _, e := range h.errs {
		out = append(out, e.Kind)
	}
	return out
}

type cleanup interface{ Cleanup(func()) }

func installHandler(t cleanup) *recordingHandler {
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

var errClockUnavailable = stderrors.New("clock unavailable")

// queue is a single-goroutine stand-in for the engine's dispatch queue.
type queue struct {
	fns []func()
}

func (q *queue) Dispatch(f func()) {
	q.fns = append(q.fns, f)
}

// drain runs queued callbacks and returns how many ran.
func (q *queue) drain() int {
	fns := q.fns
	q.fns = nil
	for _, f := range fns {
		f()
	}
	return len(fns)
}
