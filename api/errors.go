package api

import (
	"encoding/json"
	"net/http"

	"task-middleware/errors"
	"task-middleware/logger"
)

// ErrorResponse defines the JSON structure for error responses
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    string         `json:"type,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// respondWithError sends a structured error response
func respondWithError(w http.ResponseWriter, taskErr *errors.TaskError, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(taskErr.Code)

	lg.Error("HTTP error response", map[string]any{
		"error_type":    string(taskErr.Type),
		"error_message": taskErr.Message,
		"status_code":   taskErr.Code,
		"error_details": taskErr.Details,
	})

	resp := ErrorResponse{
		Error:   taskErr.Message,
		Type:    string(taskErr.Type),
		Details: taskErr.Details,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers are already written; nothing left to recover.
		lg.Error("failed to encode error response", map[string]any{
			"error": err.Error(),
		})
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string, lg *logger.Logger) {
	w.Header().Set("Allow", allowed)
	err := errors.NewValidationError("method not allowed", map[string]any{
		"method": r.Method,
	})
	err.Code = http.StatusMethodNotAllowed
	respondWithError(w, err, lg)
}

func writeJSON(w http.ResponseWriter, status int, body any, lg *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		lg.Error("failed to encode response", map[string]any{
			"error": err.Error(),
		})
	}
}
