package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/status"
)

type statusErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Status serves the full aggregated network view.
//
// A check that exceeds its budget is reported as 503 with a distinct
// body: the caller should retry, not render three offline services.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		view, err := d.Status.Check(r.Context())
		if err != nil {
			if errors.Is(err, status.ErrCheckTimeout) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(statusErrorResponse{
					Error:   "status_unavailable",
					Message: "could not determine network state in time, try again",
				})
				return
			}
			// Client went away mid-check; nothing useful to write.
			d.Logger.Debug("status check aborted", logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		_ = json.NewEncoder(w).Encode(view)
	}
}
