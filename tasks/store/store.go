package store

import "task-middleware/tasks"

// Reducer computes the next state from the current one. It must not mutate
// state in place and must not dispatch.
type Reducer[S any] func(state S, action tasks.Action) S

// Listener is notified after every reduced update.
type Listener func()
