package store

import (
	"context"
	"sync"

	"task-middleware/errors"
	"task-middleware/tasks"
)

// Compile-time check to ensure MemoryStore satisfies the store contract
var _ tasks.Store[struct{}] = (*MemoryStore[struct{}])(nil)

// MemoryStore owns the application state in memory. Dispatch runs the
// middleware chain; only the innermost stage touches the state, under a lock,
// so effects completing on different goroutines can dispatch concurrently.
type MemoryStore[S any] struct {
	mu      sync.RWMutex
	state   S
	reducer Reducer[S]

	dispatch tasks.Dispatch[S]

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// New builds a store. Middlewares compose left to right: the first one sees
// every message first, the reducer sees it last.
func New[S any](reducer Reducer[S], initial S, middlewares ...tasks.Middleware[S]) *MemoryStore[S] {
	s := &MemoryStore[S]{
		state:     initial,
		reducer:   reducer,
		listeners: make(map[int]Listener),
	}

	s.dispatch = s.reduce
	for i := len(middlewares) - 1; i >= 0; i-- {
		s.dispatch = middlewares[i](s)(s.dispatch)
	}
	return s
}

// GetState returns the current state snapshot.
func (s *MemoryStore[S]) GetState() S {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Dispatch submits msg to the top of the middleware chain.
func (s *MemoryStore[S]) Dispatch(msg tasks.Message[S]) any {
	return s.dispatch(msg)
}

// Subscribe registers l and returns a function removing it again.
func (s *MemoryStore[S]) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// reduce is the innermost stage; it returns the reduced action.
func (s *MemoryStore[S]) reduce(msg tasks.Message[S]) any {
	action, ok := msg.Action()
	if !ok {
		effect, _ := msg.Effect()
		panic(errors.NewMisuseError("effect reached the reducer: no effect middleware installed", map[string]any{
			"effect": effect,
		}))
	}

	s.mu.Lock()
	s.state = s.reducer(s.state, action)
	s.mu.Unlock()

	s.notify()
	return action
}

func (s *MemoryStore[S]) notify() {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l()
	}
}

// WaitFor blocks until ready holds for the store's state or ctx is done.
func WaitFor[S any](ctx context.Context, s *MemoryStore[S], ready func(S) bool) (S, error) {
	changed := make(chan struct{}, 1)
	unsubscribe := s.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		state := s.GetState()
		if ready(state) {
			return state, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}
