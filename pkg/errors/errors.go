// Package errors provides structured error handling for the clock runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates an initialization error.
	KindInit
	// KindAlloc indicates a failed raster allocation.
	KindAlloc
	// KindTime indicates the time source could not be read.
	KindTime
	// KindRender indicates a rendering error.
	KindRender
	// KindConfig indicates invalid or unreadable configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindAlloc:
		return "alloc"
	case KindTime:
		return "time"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error raised while laying out or
// painting a clock.
type ClockError struct {
	// Op is the operation that failed (e.g., "clockface.DialCache.Dial").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.StepFrame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// KindOf returns the kind of the first ClockError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if ce, ok := err.(*ClockError); ok {
			return ce.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindUnknown
		}
		err = u.Unwrap()
	}
	return KindUnknown
}
