package middleware

import (
	"fmt"

	"task-middleware/logger"
	"task-middleware/tasks"
)

// Logging records every update with the state before and after it was
// reduced. Effects pass through unlogged; place it after the effect
// middleware to only see updates.
//
// The two states are separate snapshots taken without a lock held across
// next, so when effects complete concurrently next_state may already include
// another goroutine's update. The output is diagnostic only.
func Logging[S any](lg *logger.Logger) tasks.Middleware[S] {
	return func(store tasks.Store[S]) func(next tasks.Dispatch[S]) tasks.Dispatch[S] {
		return func(next tasks.Dispatch[S]) tasks.Dispatch[S] {
			return func(msg tasks.Message[S]) any {
				action, ok := msg.Action()
				if !ok || !lg.Enabled(logger.DEBUG) {
					return next(msg)
				}

				prev := store.GetState()
				result := next(msg)

				lg.Action(action.Type, map[string]any{
					"payload_type": fmt.Sprintf("%T", action.Payload),
					"prev_state":   prev,
					"next_state":   store.GetState(),
				})
				return result
			}
		}
	}
}
