package tasks

import (
	"fmt"
	"reflect"

	"task-middleware/errors"
)

// Services is the read-only capability bundle handed to every effect.
type Services interface {
	Capability(name string) (any, bool)
}

// Lookup resolves a named capability and asserts its type.
func Lookup[T any](services Services, name string) (T, error) {
	var zero T
	if services == nil {
		return zero, errors.NewNotFoundError("no services bundle provided")
	}

	capability, ok := services.Capability(name)
	if !ok {
		return zero, errors.NewNotFoundError("capability not registered: " + name)
	}

	typed, ok := capability.(T)
	if !ok {
		return zero, errors.NewValidationError("capability has unexpected type", map[string]any{
			"capability": name,
			"got":        fmt.Sprintf("%T", capability),
			"want":       reflect.TypeOf((*T)(nil)).Elem().String(),
		})
	}
	return typed, nil
}
