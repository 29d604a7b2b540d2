package layout

import "slices"

// PipelineOwner tracks render objects that need layout or paint.
type PipelineOwner struct {
	dirtyLayout    []RenderObject
	dirtyLayoutSet map[RenderObject]bool
	dirtyPaint     []RenderObject
	dirtyPaintSet  map[RenderObject]bool
	needsLayout    bool
	needsPaint     bool
	onNeedsVisual  func()
}

// SetOnNeedsVisualUpdate registers a callback invoked whenever new layout or
// paint work is scheduled. The engine uses it to wake its frame loop.
func (p *PipelineOwner) SetOnNeedsVisualUpdate(fn func()) {
	p.onNeedsVisual = fn
}

// ScheduleLayout marks a render object as needing layout.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[RenderObject]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
	p.needsPaint = true
	p.notify()
}

// SchedulePaint marks a render object as needing paint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaintSet == nil {
		p.dirtyPaintSet = make(map[RenderObject]bool)
	}
	if p.dirtyPaintSet[object] {
		return
	}
	p.dirtyPaintSet[object] = true
	p.dirtyPaint = append(p.dirtyPaint, object)
	p.needsPaint = true
	p.notify()
}

func (p *PipelineOwner) notify() {
	if p.onNeedsVisual != nil {
		p.onNeedsVisual()
	}
}

// NeedsLayout reports if any render objects need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if any render objects need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushLayoutForRoot runs layout starting from the root with the host
// constraints. The root is laid out with parentUsesSize=false.
func (p *PipelineOwner) FlushLayoutForRoot(root RenderObject, constraints Constraints) {
	if root == nil {
		return
	}
	root.Layout(constraints, false)
	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false
}

// FlushPaint returns the render objects that still need paint, in the
// order they were scheduled, and clears the paint queue.
func (p *PipelineOwner) FlushPaint() []RenderObject {
	dirty := p.dirtyPaint
	p.dirtyPaint = nil
	p.dirtyPaintSet = nil
	p.needsPaint = false
	return slices.DeleteFunc(dirty, func(obj RenderObject) bool {
		np, ok := obj.(interface{ NeedsPaint() bool })
		return ok && !np.NeedsPaint()
	})
}
