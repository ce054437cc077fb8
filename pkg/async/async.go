package async

import "context"

// Future holds the outcome of a function started by Async. The result
// fields are written once, before done is closed.
type Future[U any] struct {
	done chan struct{}
	val  U
	err  error
}

// Async calls fn(ctx, param) on a new goroutine. If ctx is already done
// fn is not called and the future resolves to ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.val, f.err = fn(ctx, param)
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the function returns.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.val, f.err
}

// AwaitContext is Await bounded by ctx. The function keeps running when
// ctx ends first; a later Await still gets its result.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Then calls fn with the result on its own goroutine once it is ready.
func (f *Future[U]) Then(fn func(U, error)) {
	go func() { fn(f.Await()) }()
}
