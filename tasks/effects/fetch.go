package effects

import (
	"context"
	"encoding/json"

	"task-middleware/errors"
	"task-middleware/tasks"
)

var _ tasks.Effect[struct{}] = (*Fetch[any, struct{}])(nil)

// Fetch requests url through the "fetch" capability and decodes the JSON
// response into R. Capability errors reach the failure handler unchanged;
// an undecodable body fails with an effect error.
type Fetch[R, S any] struct {
	tasks.Task[R, S]
	url string
}

func NewFetch[R, S any](url string, handlers tasks.Handlers[R, S]) *Fetch[R, S] {
	return &Fetch[R, S]{
		Task: tasks.NewTask(handlers),
		url:  url,
	}
}

func (f *Fetch[R, S]) URL() string {
	return f.url
}

func (f *Fetch[R, S]) Perform(services tasks.Services, dispatch tasks.Dispatch[S], getState tasks.GetState[S]) {
	completion := f.Begin(dispatch, getState)

	fetcher, err := tasks.Lookup[Fetcher](services, FetchCapability)
	if err != nil {
		completion.Fail(err)
		return
	}

	completion.Follow(tasks.Async(func() (R, error) {
		var result R
		body, err := fetcher.Fetch(context.Background(), f.url)
		if err != nil {
			return result, err
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return result, errors.NewEffectError("invalid JSON response", err, map[string]any{
				"url": f.url,
			})
		}
		return result, nil
	}))
}
