// Package posts is the demo domain: a list of posts fetched over HTTP and
// cached in key/value storage, driven entirely through dispatched messages.
package posts

import "task-middleware/tasks"

type Post struct {
	UserID int    `json:"userId,omitempty"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type State struct {
	Posts     []Post `json:"posts"`
	Loading   bool   `json:"loading"`
	Hydrated  bool   `json:"hydrated"`
	LastError string `json:"last_error,omitempty"`
}

const (
	ActionPostsRequested   = "POSTS_REQUESTED"
	ActionPostsAdd         = "POSTS_ADD"
	ActionPostsInitialLoad = "POSTS_INITIAL_LOAD"
	ActionFetchFailure     = "FETCH_FAILURE"
	ActionStorageError     = "LOCAL_STORAGE_ERROR"
	ActionNoop             = "noop"
)

// InitialState is the state before anything was loaded.
func InitialState() State {
	return State{Posts: []Post{}}
}

// Update builds an ordinary message for this domain.
func Update(actionType string, payload any) tasks.Message[State] {
	return tasks.Update[State](tasks.Action{Type: actionType, Payload: payload})
}

func postsPayload(payload any) []Post {
	if p, ok := payload.([]Post); ok && p != nil {
		return p
	}
	return []Post{}
}

// Reduce is the store reducer. It never mutates state in place.
func Reduce(state State, action tasks.Action) State {
	switch action.Type {
	case ActionPostsRequested:
		state.Loading = true
		state.LastError = ""

	case ActionPostsAdd:
		state.Posts = postsPayload(action.Payload)
		state.Loading = false
		state.LastError = ""

	case ActionPostsInitialLoad:
		state.Posts = postsPayload(action.Payload)
		state.Hydrated = true

	case ActionFetchFailure:
		state.Loading = false
		state.LastError, _ = action.Payload.(string)

	case ActionStorageError:
		state.Loading = false
		state.Hydrated = true
		state.LastError, _ = action.Payload.(string)
	}
	return state
}
