package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes errors to a structured logger.
type LogHandler struct {
	// Logger receives the entries. Nil logs to stderr.
	Logger *log.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "driftclock"})
}

// HandleError logs a ClockError.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	l := h.logger()
	if h.Verbose {
		l.Error("clock error", "op", err.Op, "kind", err.Kind, "err", err.Err)
		if err.StackTrace != "" {
			l.Debug("stack trace", "stack", err.StackTrace)
		}
		return
	}
	l.Error("clock error", "op", err.Op, "err", err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	if err.Op != "" {
		l.Error("clock panic", "op", err.Op, "value", err.Value)
	} else {
		l.Error("clock panic", "value", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		l.Debug("stack trace", "stack", err.StackTrace)
	}
}
