package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
	"github.com/lyzrex/lythrion-status/internal/httpserver/handlers"
	"github.com/lyzrex/lythrion-status/internal/httpserver/mw"
)

func init() { Register(registerRecheck) }

func registerRecheck(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/recheck", handlers.Recheck(d))
}
