// Package scheduler runs cancellable delayed actions.
//
// A Scheduler hands out Tasks: After(d, fn) runs fn once after d unless the
// returned Task is cancelled first. Timers is the production implementation
// on top of a github.com/jonboulle/clockwork clock; Manual drives a clockwork
// fake clock for tests and only runs work when Advance is called. Both also
// implement Clock, so owners can timestamp work on the clock that runs their
// timers.
//
// A Slot keeps at most one pending task per purpose (a banner auto-dismiss,
// a form reset): setting a new task cancels the previous one.
//
// Cancellation is best effort. A task whose timer already fired may still be
// running or about to run, so callers that need "fires only if still
// current" semantics should also carry a generation token in the closure.
//
// # Usage
//
//	s := scheduler.NewTimers()
//	var dismiss scheduler.Slot
//	dismiss.Set(s.After(5*time.Second, func() { hideBanner(gen) }))
//	// later, when the user closes the banner early:
//	dismiss.Stop()
package scheduler
