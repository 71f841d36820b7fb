package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// isoMillis matches JavaScript's Date.toISOString for UTC times
const isoMillis = "2006-01-02T15:04:05.000Z"

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Health probes the database and reports whether the service can serve requests
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Health check failed")
		if timedOut(r) {
			return
		}
		h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}
