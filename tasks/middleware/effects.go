// Package middleware provides dispatch pipeline stages: the effect
// interceptor and a state logger.
package middleware

import (
	"fmt"

	"task-middleware/logger"
	"task-middleware/tasks"

	"github.com/google/uuid"
)

// Option configures the effect middleware.
type Option func(*options)

type options struct {
	logger *logger.Logger
}

// WithLogger logs every intercepted effect under a fresh execution id.
func WithLogger(lg *logger.Logger) Option {
	return func(o *options) {
		o.logger = lg
	}
}

// New captures services once and returns a store-agnostic middleware.
//
// Effects are performed with (services, store.Dispatch, store.GetState) and
// never reach next; their follow-up messages re-enter the pipeline through
// store.Dispatch. Updates are forwarded to next untouched and its result is
// returned as is. Panics raised by Perform are not recovered.
func New[S any](services tasks.Services, opts ...Option) tasks.Middleware[S] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(store tasks.Store[S]) func(next tasks.Dispatch[S]) tasks.Dispatch[S] {
		return func(next tasks.Dispatch[S]) tasks.Dispatch[S] {
			return func(msg tasks.Message[S]) any {
				switch msg.Kind() {
				case tasks.KindEffect:
					effect, _ := msg.Effect()
					if o.logger != nil {
						o.logger.Effect(uuid.NewString(), "performing effect", map[string]any{
							"effect": fmt.Sprintf("%T", effect),
						})
					}
					effect.Perform(services, store.Dispatch, store.GetState)
					return nil
				default:
					return next(msg)
				}
			}
		}
	}
}
