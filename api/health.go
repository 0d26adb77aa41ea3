package api

import (
	"net/http"
	"time"

	"task-middleware/config"
	"task-middleware/logger"
)

var startTime = time.Now()

// CapabilityLister is the part of the services bundle the health check reports on.
type CapabilityLister interface {
	Names() []string
}

// HealthResponse provides detailed health information
type HealthResponse struct {
	Status       string   `json:"status"`
	Timestamp    string   `json:"timestamp"`
	Uptime       string   `json:"uptime"`
	Capabilities []string `json:"capabilities"`
	Storage      string   `json:"storage"`
	Version      string   `json:"version,omitempty"`
}

// NewHealthHandler returns a health check handler
func NewHealthHandler(cfg *config.Config, services CapabilityLister, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet, lg)
			return
		}

		writeJSON(w, http.StatusOK, HealthResponse{
			Status:       "healthy",
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Uptime:       time.Since(startTime).String(),
			Capabilities: services.Names(),
			Storage:      cfg.StorageBackend,
			Version:      cfg.Version,
		}, lg)
	}
}
