package tasks

import "sync/atomic"

// Completion delivers the outcome of one Perform call. Only the first
// Succeed, Fail or Settle has an effect; the rest return false.
type Completion[R, S any] struct {
	handlers Handlers[R, S]
	dispatch Dispatch[S]
	getState GetState[S]
	settled  atomic.Bool
	done     chan struct{}
}

// Succeed dispatches Success(result, state) where state is read now.
func (c *Completion[R, S]) Succeed(result R) bool {
	if !c.settled.CompareAndSwap(false, true) {
		return false
	}
	defer close(c.done)

	c.dispatch(c.handlers.Success(result, c.getState()))
	return true
}

// Fail dispatches Failure(err, state) where state is read now.
func (c *Completion[R, S]) Fail(err error) bool {
	if !c.settled.CompareAndSwap(false, true) {
		return false
	}
	defer close(c.done)

	c.dispatch(c.handlers.Failure(err, c.getState()))
	return true
}

// Settle fails when err is non-nil and succeeds otherwise.
func (c *Completion[R, S]) Settle(result R, err error) bool {
	if err != nil {
		return c.Fail(err)
	}
	return c.Succeed(result)
}

// Follow settles the completion once future resolves.
func (c *Completion[R, S]) Follow(future *Future[R]) {
	future.Then(func(result R, err error) {
		c.Settle(result, err)
	})
}

// Settled reports whether the follow-up message has been claimed.
func (c *Completion[R, S]) Settled() bool {
	return c.settled.Load()
}

// Done is closed after the follow-up dispatch has returned.
func (c *Completion[R, S]) Done() <-chan struct{} {
	return c.done
}
