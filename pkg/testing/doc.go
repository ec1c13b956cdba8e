// Package testing provides helpers for testing code built on weave.
//
// # Deterministic Time
//
// FakeClock replaces the runtime clock so timers only elapse when the test
// advances time:
//
//	func TestBlink(t *testing.T) {
//	    clock := weavetest.NewFakeClock()
//	    clock.Install(t)
//
//	    h := timer.Current().OnDeadline(timing.Timeout(time.Second), onBlink)
//	    defer h.Release()
//
//	    clock.Advance(time.Second)
//	    // run an app update pass
//	}
//
// # Reported Errors
//
// ErrorRecorder captures contract violations and recovered panics reported
// through pkg/errors:
//
//	rec := weavetest.RecordErrors(t)
//	// exercise nodes
//	if n := len(rec.Contracts()); n != 0 {
//	    t.Errorf("unexpected contract violations: %v", rec.Contracts())
//	}
//
// # Probe Nodes
//
// ProbeNode records every operation it receives, and the recording builders
// stand in for the info, frame and frame update collaborators.
package testing
