package handler

import (
	"net/http"
	"time"

	"github.com/sableashish494/ashish-primaspot-main/pkg/response"
)

// StatusHandler serves the service health endpoint.
type StatusHandler struct {
	version   string
	startedAt time.Time
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(version string) *StatusHandler {
	return &StatusHandler{
		version:   version,
		startedAt: time.Now(),
	}
}

// Status handles GET /api/status.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}
