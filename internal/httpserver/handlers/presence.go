package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
)

type presenceResponse struct {
	Presence string `json:"presence"`
}

// Presence serves the last synthesized ambient presence string.
func Presence(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(presenceResponse{
			Presence: d.Status.CurrentPresence(),
		})
	}
}
