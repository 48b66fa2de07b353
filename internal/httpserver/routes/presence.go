package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
	"github.com/lyzrex/lythrion-status/internal/httpserver/handlers"
	"github.com/lyzrex/lythrion-status/internal/httpserver/mw"
)

func init() { Register(registerPresence) }

func registerPresence(r chi.Router, d deps.Deps) {
	rl := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefillPerMin,
		TrustProxy:        d.TrustProxy,
	})
	r.With(rl, mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/presence", handlers.Presence(d))
}
