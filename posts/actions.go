package posts

import (
	"encoding/json"

	"task-middleware/tasks"
	"task-middleware/tasks/effects"
)

// Requested marks a refresh as in flight.
func Requested() tasks.Message[State] {
	return Update(ActionPostsRequested, nil)
}

// LoadInitialState hydrates the posts cached under key. An absent key
// loads an empty list.
func LoadInitialState(key string) tasks.Message[State] {
	return tasks.Run[State](effects.NewGetValue(key, tasks.Handlers[effects.Item, State]{
		Success: func(item effects.Item, _ State) tasks.Message[State] {
			if !item.Found || item.Value == "" {
				return Update(ActionPostsInitialLoad, []Post{})
			}
			var cached []Post
			if err := json.Unmarshal([]byte(item.Value), &cached); err != nil {
				return Update(ActionStorageError, "corrupt cached posts: "+err.Error())
			}
			return Update(ActionPostsInitialLoad, cached)
		},
		Failure: func(err error, _ State) tasks.Message[State] {
			return Update(ActionStorageError, err.Error())
		},
	}))
}

// RequestPosts fetches posts from url, caches them under key and only then
// adds them to the state.
func RequestPosts(url, key string) tasks.Message[State] {
	return tasks.Run[State](effects.NewFetch(url, tasks.Handlers[[]Post, State]{
		Success: func(result []Post, _ State) tasks.Message[State] {
			return cachePosts(key, result)
		},
		Failure: func(err error, _ State) tasks.Message[State] {
			return Update(ActionFetchFailure, err.Error())
		},
	}))
}

func cachePosts(key string, fetched []Post) tasks.Message[State] {
	encoded, err := json.Marshal(fetched)
	if err != nil {
		return Update(ActionStorageError, err.Error())
	}

	return tasks.Run[State](effects.NewSetValue(key, string(encoded), tasks.Handlers[effects.Item, State]{
		Success: func(effects.Item, State) tasks.Message[State] {
			return Update(ActionPostsAdd, fetched)
		},
		Failure: func(err error, _ State) tasks.Message[State] {
			return Update(ActionStorageError, err.Error())
		},
	}))
}
