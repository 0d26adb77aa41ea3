package tasks

// Dispatch submits a message to the top of the pipeline.
type Dispatch[S any] func(msg Message[S]) any

// GetState reads the current state snapshot.
type GetState[S any] func() S

// Store is the contract middleware attaches to.
type Store[S any] interface {
	GetState() S
	Dispatch(msg Message[S]) any
}

// Middleware is one pipeline stage. Given the store it returns a wrapper
// which, given the rest of the pipeline, returns the stage's dispatch.
type Middleware[S any] func(store Store[S]) func(next Dispatch[S]) Dispatch[S]

// Effect is deferred side-effecting work.
//
// Perform is called exactly once per dispatch of the effect. Implementations
// must eventually call dispatch exactly once with the message produced by
// their success or failure handler, and must read capabilities only from
// services. Embedding Task and settling through its Completion satisfies both.
type Effect[S any] interface {
	Perform(services Services, dispatch Dispatch[S], getState GetState[S])
}
