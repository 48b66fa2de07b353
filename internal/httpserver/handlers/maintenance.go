package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/utils"
)

type maintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

type maintenanceResponse struct {
	Service string `json:"service"`
	Enabled bool   `json:"enabled"`
}

// GetMaintenance lists the current maintenance flags.
func GetMaintenance(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flags := d.Maintenance.Snapshot()

		out := make(map[string]bool, len(flags))
		for id, v := range flags {
			out[string(id)] = v
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// SetMaintenance flips the maintenance flag for one service.
// Authentication/authorization is the proxy's problem, not ours; the
// route is gated by the operator CIDR allow-list.
func SetMaintenance(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := domain.ParseServiceID(chi.URLParam(r, "service"))
		if !ok {
			http.Error(w, "unknown service", http.StatusNotFound)
			return
		}

		var req maintenanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		d.Maintenance.SetMaintenance(id, req.Enabled)

		d.Logger.Info("maintenance flag changed",
			logger.String("service", string(id)),
			logger.Bool("enabled", req.Enabled),
			logger.String("remote_ip", utils.ClientIP(r, d.TrustProxy)))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(maintenanceResponse{
			Service: string(id),
			Enabled: req.Enabled,
		})
	}
}
