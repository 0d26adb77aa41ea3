// Package tasks lets side effects travel through a dispatch pipeline as data.
//
// A producer wraps either an ordinary Action (Update) or deferred work
// (Run) into a Message. The effect middleware performs effects with an
// injected services bundle; each effect settles by dispatching exactly one
// follow-up Message built by its success or failure handler.
package tasks

import "task-middleware/errors"

// Action is an ordinary state-update message consumed by a reducer.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Kind discriminates the two shapes a Message can take.
type Kind int

const (
	KindUpdate Kind = iota
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Message is the unit flowing through the pipeline. The zero value is an
// Update carrying an empty Action.
type Message[S any] struct {
	kind   Kind
	action Action
	effect Effect[S]
}

// Update wraps an ordinary action.
func Update[S any](action Action) Message[S] {
	return Message[S]{kind: KindUpdate, action: action}
}

// Run wraps an effect for the effect middleware to perform.
func Run[S any](effect Effect[S]) Message[S] {
	if effect == nil {
		panic(errors.NewMisuseError("cannot dispatch a nil effect"))
	}
	return Message[S]{kind: KindEffect, effect: effect}
}

func (m Message[S]) Kind() Kind {
	return m.kind
}

// Action returns the wrapped action; ok is false for effects.
func (m Message[S]) Action() (Action, bool) {
	return m.action, m.kind == KindUpdate
}

// Effect returns the wrapped effect; ok is false for updates.
func (m Message[S]) Effect() (Effect[S], bool) {
	return m.effect, m.kind == KindEffect
}
