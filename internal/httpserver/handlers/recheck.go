package handlers

import (
	"net/http"

	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
	"github.com/lyzrex/lythrion-status/internal/logger"
)

// Recheck triggers an immediate status refresh outside the regular
// interval. The refresh still goes through the freshness cache, so the
// TTL keeps bounding upstream load.
func Recheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RecheckTrigger <- struct{}{}:
			d.Logger.Info("manual status refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("refresh triggered\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			d.Logger.Warn("status refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("refresh already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
