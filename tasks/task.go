package tasks

import "task-middleware/errors"

// Handlers converts the outcome of an effect into the next message.
// Both fields are required.
type Handlers[R, S any] struct {
	Success func(result R, state S) Message[S]
	Failure func(err error, state S) Message[S]
}

// Task stores the handlers of one effect. Concrete effects embed it and
// provide their own Perform; the embedded one panics.
type Task[R, S any] struct {
	handlers Handlers[R, S]
}

// NewTask stores handlers without performing any side effect.
func NewTask[R, S any](handlers Handlers[R, S]) Task[R, S] {
	if handlers.Success == nil {
		panic(errors.NewMisuseError("task requires a success handler"))
	}
	if handlers.Failure == nil {
		panic(errors.NewMisuseError("task requires a failure handler"))
	}
	return Task[R, S]{handlers: handlers}
}

// Perform always panics with errors.ErrNotImplemented.
func (t Task[R, S]) Perform(Services, Dispatch[S], GetState[S]) {
	panic(errors.ErrNotImplemented)
}

// Begin returns the completion token for a single Perform call.
func (t Task[R, S]) Begin(dispatch Dispatch[S], getState GetState[S]) *Completion[R, S] {
	if t.handlers.Success == nil || t.handlers.Failure == nil {
		panic(errors.NewMisuseError("task was not constructed with NewTask"))
	}
	return &Completion[R, S]{
		handlers: t.handlers,
		dispatch: dispatch,
		getState: getState,
		done:     make(chan struct{}),
	}
}
