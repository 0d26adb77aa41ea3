package effects

import (
	"context"

	"task-middleware/tasks"
)

var (
	_ tasks.Effect[struct{}] = (*GetValue[struct{}])(nil)
	_ tasks.Effect[struct{}] = (*SetValue[struct{}])(nil)
)

// GetValue reads key through the "storage" capability. A missing key is a
// success with Item.Found set to false. Storage errors reach the failure
// handler unchanged.
type GetValue[S any] struct {
	tasks.Task[Item, S]
	key string
}

func NewGetValue[S any](key string, handlers tasks.Handlers[Item, S]) *GetValue[S] {
	return &GetValue[S]{
		Task: tasks.NewTask(handlers),
		key:  key,
	}
}

func (g *GetValue[S]) Key() string {
	return g.key
}

func (g *GetValue[S]) Perform(services tasks.Services, dispatch tasks.Dispatch[S], getState tasks.GetState[S]) {
	completion := g.Begin(dispatch, getState)

	storage, err := tasks.Lookup[Storage](services, StorageCapability)
	if err != nil {
		completion.Fail(err)
		return
	}

	completion.Follow(tasks.Async(func() (Item, error) {
		value, found, err := storage.GetItem(context.Background(), g.key)
		if err != nil {
			return Item{}, err
		}
		return Item{Key: g.key, Value: value, Found: found}, nil
	}))
}

// SetValue writes value under key through the "storage" capability. Storage
// errors reach the failure handler unchanged.
type SetValue[S any] struct {
	tasks.Task[Item, S]
	key   string
	value string
}

func NewSetValue[S any](key, value string, handlers tasks.Handlers[Item, S]) *SetValue[S] {
	return &SetValue[S]{
		Task:  tasks.NewTask(handlers),
		key:   key,
		value: value,
	}
}

func (s *SetValue[S]) Key() string {
	return s.key
}

func (s *SetValue[S]) Perform(services tasks.Services, dispatch tasks.Dispatch[S], getState tasks.GetState[S]) {
	completion := s.Begin(dispatch, getState)

	storage, err := tasks.Lookup[Storage](services, StorageCapability)
	if err != nil {
		completion.Fail(err)
		return
	}

	completion.Follow(tasks.Async(func() (Item, error) {
		if err := storage.SetItem(context.Background(), s.key, s.value); err != nil {
			return Item{}, err
		}
		return Item{Key: s.key, Value: s.value, Found: true}, nil
	}))
}
