package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"task-middleware/errors"
	"task-middleware/logger"
	"task-middleware/posts"
	"task-middleware/tasks"
)

const (
	maxBodySize = 1024 * 16 // 16 KB
	maxURLLen   = 2048
)

type refreshRequest struct {
	URL string `json:"url"`
}

// RefreshResponse is returned once a refresh has been dispatched. The
// fetch itself completes in the background.
type RefreshResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// RefreshSource describes where a refresh fetches from and caches to.
type RefreshSource struct {
	URL        string
	StorageKey string
}

// NewRefreshHandler returns a handler that dispatches a posts refresh.
// An optional JSON body {"url": "..."} overrides the configured source.
func NewRefreshHandler(store tasks.Store[posts.State], src RefreshSource, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost, lg)
			return
		}

		// Limit request body size - this will cause Decode to fail if exceeded
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				respondWithError(w, errors.NewValidationError("request body too large", map[string]any{
					"max_size_bytes": maxBodySize,
				}), lg)
				return
			}

			respondWithError(w, errors.NewValidationError("invalid JSON payload", map[string]any{
				"error": err.Error(),
			}), lg)
			return
		}

		target := src.URL
		if req.URL = strings.TrimSpace(req.URL); req.URL != "" {
			if taskErr := validateURL(req.URL); taskErr != nil {
				respondWithError(w, taskErr, lg)
				return
			}
			target = req.URL
		}

		store.Dispatch(posts.Requested())
		store.Dispatch(posts.RequestPosts(target, src.StorageKey))

		lg.Info("Posts refresh dispatched", map[string]any{
			"url": target,
		})

		writeJSON(w, http.StatusAccepted, RefreshResponse{
			Status: "accepted",
			URL:    target,
		}, lg)
	}
}

func validateURL(raw string) *errors.TaskError {
	if len(raw) > maxURLLen {
		return errors.NewValidationError("url too long", map[string]any{
			"max_length":    maxURLLen,
			"actual_length": len(raw),
		})
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewValidationError("url must be an absolute http(s) URL", map[string]any{
			"url": raw,
		})
	}
	return nil
}
