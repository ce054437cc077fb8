// Package async runs a single function in the background and hands its
// result back through a Future.
//
// Callers block with Await, bound the wait with AwaitContext, select on
// Done, or register a callback with Then:
//
//	async.Async(ctx, submission, submitter.Submit).Then(func(_ struct{}, err error) {
//		_ = form.Dispatch(ctx, done{err: err})
//	})
//
// A context that is already cancelled when the goroutine starts resolves the
// Future to the context error without calling the function.
package async
