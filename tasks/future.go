package tasks

import (
	"context"
	"fmt"

	"task-middleware/errors"
)

// Future is the eventual outcome of an asynchronous capability call.
type Future[R any] struct {
	done   chan struct{}
	result R
	err    error
}

// Async runs fn on its own goroutine. A panic in fn rejects the future.
func Async[R any](fn func() (R, error)) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = errors.NewEffectError("capability panicked", fmt.Errorf("%v", r))
			}
		}()
		f.result, f.err = fn()
	}()
	return f
}

func Resolved[R any](result R) *Future[R] {
	f := &Future[R]{done: make(chan struct{}), result: result}
	close(f.done)
	return f
}

func Rejected[R any](err error) *Future[R] {
	f := &Future[R]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Then calls fn with the outcome on a separate goroutine once it is known.
func (f *Future[R]) Then(fn func(result R, err error)) {
	go func() {
		<-f.done
		fn(f.result, f.err)
	}()
}

// Await blocks until the future resolves or ctx is done.
func (f *Future[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
