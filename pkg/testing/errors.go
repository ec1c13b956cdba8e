package testing

import (
	"sync"
	"testing"

	"github.com/go-drift/weave/pkg/errors"
)

// ErrorRecorder is an errors.ErrorHandler that keeps everything it receives.
type ErrorRecorder struct {
	mu        sync.Mutex
	errs      []*errors.WeaveError
	panics    []*errors.PanicError
	contracts []*errors.ContractError
}

// RecordErrors installs a new recorder as the global error handler until
// the test ends.
func RecordErrors(t testing.TB) *ErrorRecorder {
	t.Helper()
	rec := &ErrorRecorder{}
	prev := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return rec
}

// HandleError implements errors.ErrorHandler.
func (r *ErrorRecorder) HandleError(err *errors.WeaveError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// HandlePanic implements errors.ErrorHandler.
func (r *ErrorRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// HandleContract implements errors.ErrorHandler.
func (r *ErrorRecorder) HandleContract(err *errors.ContractError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts = append(r.contracts, err)
}

// Errors returns the recorded errors.
func (r *ErrorRecorder) Errors() []*errors.WeaveError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.WeaveError(nil), r.errs...)
}

// Panics returns the recorded panics.
func (r *ErrorRecorder) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.PanicError(nil), r.panics...)
}

// Contracts returns the recorded contract violations.
func (r *ErrorRecorder) Contracts() []*errors.ContractError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.ContractError(nil), r.contracts...)
}

// Reset forgets everything recorded so far.
func (r *ErrorRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs, r.panics, r.contracts = nil, nil, nil
}
