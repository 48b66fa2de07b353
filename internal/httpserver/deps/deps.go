package deps

import (
	"time"

	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/maintenance"
	"github.com/lyzrex/lythrion-status/internal/status"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Network   string
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Status      *status.Service       // aggregation service (status + presence)
	Maintenance *maintenance.Registry // operator maintenance flags

	RecheckTrigger chan struct{} // channel to trigger an immediate status refresh

	AllowedHosts []string // Host headers allowed to access the server
	AdminCIDRS   []string // IPs allowed to access operator endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	RateBurst        int // token bucket burst for the public status endpoint
	RateRefillPerMin int // token refill per IP per minute
}
