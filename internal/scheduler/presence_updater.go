package scheduler

import (
	"context"
	"time"

	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/status"
	redisstore "github.com/lyzrex/lythrion-status/internal/store/redis"
)

// presenceStoreTTL bounds how long a mirrored presence string is served
// after the process that wrote it dies.
const presenceStoreTTL = 10 * time.Minute

// PresenceUpdater periodically refreshes the aggregated view and the
// published presence string.
type PresenceUpdater struct {
	svc           *status.Service
	store         *redisstore.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPresenceUpdater creates a new presence updater.
func NewPresenceUpdater(
	svc *status.Service,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *PresenceUpdater {
	return &PresenceUpdater{
		svc:           svc,
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one refresh immediately, then keeps refreshing on the
// configured interval or on manual trigger. An initial failure is not
// fatal: the service must come up even while the whole network is down.
func (pu *PresenceUpdater) Start(ctx context.Context) error {
	if err := pu.Refresh(ctx); err != nil {
		pu.logger.Warn("initial presence refresh failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(pu.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := pu.Refresh(ctx); err != nil {
					pu.logger.Error("failed to refresh presence",
						logger.Error(err))
				}
			case <-pu.manualTrigger:
				pu.logger.Info("manual status refresh triggered")
				if err := pu.Refresh(ctx); err != nil {
					pu.logger.Error("failed to refresh presence",
						logger.Error(err))
				}
			case <-pu.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the updater.
func (pu *PresenceUpdater) Stop() {
	close(pu.stopCh)
}

// Refresh runs a full status check and publishes the resulting presence.
func (pu *PresenceUpdater) Refresh(ctx context.Context) error {
	view, err := pu.svc.Refresh(ctx)
	if err != nil {
		return err
	}

	presence := pu.svc.CurrentPresence()
	pu.logger.Info("refreshed network status",
		logger.String("health", string(view.Health)),
		logger.Int("load_percent", view.LoadPercent),
		logger.Int("players", view.TotalOnline),
		logger.String("presence", presence))

	// Mirror presence to Redis (best effort)
	if pu.store != nil {
		if err := pu.store.SavePresence(ctx, presence, presenceStoreTTL); err != nil {
			pu.logger.Warn("failed to save presence to redis",
				logger.Error(err))
		}
	}

	return nil
}
