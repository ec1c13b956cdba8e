package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler and returns the previous one.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := DefaultHandler
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
	return prev
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *WeaveError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	dispatch(func(h ErrorHandler) { h.HandleError(err) })
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	dispatch(func(h ErrorHandler) { h.HandlePanic(err) })
}

// ReportContract sends a contract violation to the global handler.
func ReportContract(err *ContractError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	dispatch(func(h ErrorHandler) { h.HandleContract(err) })
}

// Contractf is shorthand for reporting a formatted contract violation.
func Contractf(op, widget, format string, args ...any) {
	ReportContract(&ContractError{
		Op:     op,
		Widget: widget,
		Detail: fmt.Sprintf(format, args...),
	})
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

func dispatch(f func(ErrorHandler)) {
	if h := getHandler(); h != nil {
		f(h)
	}
}

// NewPanic wraps a recovered value, capturing the stack of the caller.
func NewPanic(op string, value any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: captureStack(4),
		Timestamp:  time.Now(),
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("timer.notify")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(NewPanic(op, r))
	}
}

// RecoverWithCallback is like Recover but also calls callback with the
// panic value after reporting it.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		ReportPanic(NewPanic(op, r))
		if callback != nil {
			callback(r)
		}
	}
}

// Guard runs fn, reporting and swallowing any panic under op.
// It returns false if fn panicked.
func Guard(op string, fn func()) (ok bool) {
	defer RecoverWithCallback(op, func(any) { ok = false })
	fn()
	return true
}

// CaptureStack returns the call stack of its caller, one function and
// file:line pair per frame.
func CaptureStack() string {
	return captureStack(3)
}

func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
