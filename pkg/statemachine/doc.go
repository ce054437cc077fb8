// Package statemachine is a small finite-state machine over caller-defined
// state and event types.
//
//	type status string
//	type trigger string
//
//	m := statemachine.New[status, trigger]("idle",
//		statemachine.Allow[status, trigger]("idle", "submitting", "submit", formIsValid),
//		statemachine.Allow[status, trigger]("submitting", "success", "succeed"),
//		statemachine.WithObserver(func(ctx context.Context, from, to status, ev trigger) {
//			log.DebugContext(ctx, "status changed", "from", from, "to", to)
//		}),
//	)
//
//	switch err := m.Fire(ctx, "submit", valid); {
//	case errors.Is(err, statemachine.ErrRejected):
//		// a guard said no
//	case errors.Is(err, statemachine.ErrNoTransition):
//		// not allowed in this state
//	}
//
// Guards and actions run under the machine's lock and must not call back into
// it. Observers run after the lock is released.
package statemachine
