package api

import (
	"net/http"

	"task-middleware/logger"
	"task-middleware/posts"
	"task-middleware/tasks"
)

// NewPostsHandler serves the current posts state.
func NewPostsHandler(store tasks.Store[posts.State], lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet, lg)
			return
		}

		writeJSON(w, http.StatusOK, store.GetState(), lg)
	}
}
