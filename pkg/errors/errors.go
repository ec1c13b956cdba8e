// Package errors provides structured error reporting for the weave runtime.
//
// Nothing in the scheduling, layout or dispatch core returns these errors to
// the caller. They are reported through a global [ErrorHandler] and the
// runtime continues with a fallback value.
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
	// KindContract indicates a programmer-contract violation, such as a
	// node returning a size without delegating.
	KindContract
	// KindTimer indicates a timer scheduling error.
	KindTimer
	// KindEvent indicates an event dispatch error.
	KindEvent
	// KindVar indicates a variable update error.
	KindVar
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindTimer:
		return "timer"
	case KindEvent:
		return "event"
	case KindVar:
		return "var"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// WeaveError represents a structured runtime error.
type WeaveError struct {
	// Op is the operation that failed (e.g., "vars.ApplyUpdates").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Widget is the widget that was active when the error happened, if any.
	Widget string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WeaveError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WeaveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "timer.Notify").
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

// ContractError reports misuse of a framework protocol, for example a
// match node closure that sets a measured size but does not claim it.
type ContractError struct {
	// Op is the protocol operation (e.g., "widget.MatchNode.Measure").
	Op string
	// Widget is the widget that was active, if any.
	Widget string
	// Detail describes what went wrong.
	Detail string
	// Timestamp is when the violation was detected.
	Timestamp time.Time
}

func (e *ContractError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("contract violation in %s (widget %s): %s", e.Op, e.Widget, e.Detail)
	}
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Detail)
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WeaveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleContract is called when a protocol violation is detected.
	HandleContract(err *ContractError)
}
