// Package timer implements the app timer service: one-shot deadline vars,
// deadline waiters, repeating interval vars and callback timers.
//
// # Core Components
//
//   - [Service]: owns every registered timer. The app installs one with
//     [Install]; [Current] returns it.
//
//   - [DeadlineVar] and [TimerVar]: read-only vars that update when a
//     deadline elapses or an interval ticks. They stay registered while the
//     var is reachable.
//
//   - [Waiter]: a deadline that can be awaited from any goroutine with
//     [Waiter.Wait] or selected on through [Waiter.Done].
//
//   - [DeadlineHandle] and [TimerHandle]: callback timers registered with
//     [Service.OnDeadline] and [Service.OnInterval]. Releasing the last
//     handle cancels the timer; [TimerHandle.Perm] keeps it running without
//     one.
//
//   - [Timer]: pause, play, count and interval control shared by interval
//     vars and interval handles.
//
// # Loop Integration
//
// The app loop drives the service in three steps per iteration:
//
//   - [Service.NextDeadline], before sleeping, registers the earliest
//     pending deadline into the loop timer.
//   - [Service.ApplyUpdates], after waking, detects every elapsed timer,
//     updates vars, releases waiters, flags handlers as pending and purges
//     dead entries.
//   - [Service.Notify] runs the pending handlers.
//
// Detection and execution are split so handlers can register new timers
// without disturbing the scan. A handler registered while Notify runs is
// first considered on the next iteration.
//
// # Basic Usage
//
// Blink a cursor from inside a widget and stop when the widget goes away:
//
//	// On init
//	blink := timer.Current().OnInterval(500*time.Millisecond, false, func(args timer.TimerArgs) {
//	    visible.Modify(func(v *bool) bool {
//	        *v = !*v
//	        return true
//	    })
//	})
//
//	// On deinit
//	blink.Release()
//
// A one-shot callback that must outlive its caller:
//
//	h := timer.Current().OnDeadline(timing.Timeout(2*time.Second), func(timer.DeadlineArgs) {
//	    toast.Set("")
//	})
//	h.Perm()
package timer
