package engine

import "github.com/go-drift/driftclock/pkg/graphics"

// FrameSnapshot describes the outcome of one StepFrame.
type FrameSnapshot struct {
	FrameID uint64        `json:"frameId"`
	Size    graphics.Size `json:"size"`
	// Painted is false when nothing was dirty and no image was presented.
	Painted bool `json:"painted"`
	// Dispatched is the number of queued callbacks run this frame.
	Dispatched int `json:"dispatched"`
}
