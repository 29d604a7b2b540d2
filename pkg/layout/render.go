package layout

import "github.com/go-drift/driftclock/pkg/graphics"

// RenderObject handles layout and painting.
type RenderObject interface {
	Layout(constraints Constraints, parentUsesSize bool)
	Size() graphics.Size
	Paint(ctx *PaintContext)
	MarkNeedsLayout()
	MarkNeedsPaint()
	SetOwner(owner *PipelineOwner)
}

// RenderBox is a RenderObject with box layout.
type RenderBox interface {
	RenderObject
}

// Disposer is implemented by render objects holding resources that must be
// released when they leave the tree.
type Disposer interface {
	Dispose()
}

// RenderBoxBase provides base behavior for render boxes. Concrete types
// embed it, call SetSelf in their constructor and implement PerformLayout
// and Paint.
type RenderBoxBase struct {
	size        graphics.Size
	owner       *PipelineOwner
	self        RenderObject
	needsLayout bool        // local dirty flag
	constraints Constraints // last received constraints
	needsPaint  bool        // local dirty flag for paint
}

// Size returns the current size of the render box.
func (r *RenderBoxBase) Size() graphics.Size {
	return r.size
}

// SetSize updates the render box size.
// If the size changes, marks paint as dirty.
func (r *RenderBoxBase) SetSize(size graphics.Size) {
	if r.size == size {
		return
	}
	r.size = size
	r.MarkNeedsPaint()
}

// MarkNeedsLayout marks this render box as needing layout and schedules it
// with the owner, if attached.
func (r *RenderBoxBase) MarkNeedsLayout() {
	if r.needsLayout {
		return
	}
	r.needsLayout = true
	if r.owner != nil && r.self != nil {
		r.owner.ScheduleLayout(r.self)
	}
}

// MarkNeedsPaint marks this render box as needing paint and schedules it
// with the owner, if attached. SchedulePaint deduplicates.
func (r *RenderBoxBase) MarkNeedsPaint() {
	r.needsPaint = true
	if r.owner != nil && r.self != nil {
		r.owner.SchedulePaint(r.self)
	}
}

// SetOwner assigns the pipeline owner for scheduling layout and paint.
// Pending dirty state is scheduled with the new owner.
func (r *RenderBoxBase) SetOwner(owner *PipelineOwner) {
	r.owner = owner
	if owner == nil || r.self == nil {
		return
	}
	if r.needsLayout {
		owner.ScheduleLayout(r.self)
	}
	if r.needsPaint {
		owner.SchedulePaint(r.self)
	}
}

// SetSelf registers the concrete render object for scheduling.
func (r *RenderBoxBase) SetSelf(self RenderObject) {
	r.self = self
	r.needsLayout = true // New render objects always need initial layout
	r.needsPaint = true  // New render objects always need initial paint
}

// NeedsLayout returns true if this render box needs layout.
func (r *RenderBoxBase) NeedsLayout() bool {
	return r.needsLayout
}

// NeedsPaint returns true if this render box needs painting.
func (r *RenderBoxBase) NeedsPaint() bool {
	return r.needsPaint
}

// ClearNeedsPaint marks this render object as painted.
func (r *RenderBoxBase) ClearNeedsPaint() {
	r.needsPaint = false
}

// Constraints returns the last received constraints.
func (r *RenderBoxBase) Constraints() Constraints {
	return r.constraints
}

// Layout stores the constraints and delegates to PerformLayout.
// Layout is skipped when the box is clean and the constraints are unchanged.
func (r *RenderBoxBase) Layout(constraints Constraints, parentUsesSize bool) {
	if !r.needsLayout && r.constraints == constraints {
		return
	}
	r.constraints = constraints
	r.needsLayout = false

	if performer, ok := r.self.(interface{ PerformLayout() }); ok {
		performer.PerformLayout()
	}
}
