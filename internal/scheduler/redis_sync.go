package scheduler

import (
	"context"

	"github.com/lyzrex/lythrion-status/internal/cache"
	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/status"
	redisstore "github.com/lyzrex/lythrion-status/internal/store/redis"
)

// RedisSyncer warm-starts the freshness cache and presence from Redis
// on startup, so a restart inside the TTL window does not re-probe
// every upstream immediately.
type RedisSyncer struct {
	store  *redisstore.Store
	cache  *cache.Freshness
	svc    *status.Service
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer.
func NewRedisSyncer(
	store *redisstore.Store,
	c *cache.Freshness,
	svc *status.Service,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		cache:  c,
		svc:    svc,
		logger: log,
	}
}

// Sync seeds cache entries and the presence string from Redis.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("warm-starting status cache from redis")

	seeded := 0
	for _, id := range domain.AllServices() {
		entry, ok, err := rs.store.GetEntry(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		rs.cache.Seed(cache.Entry(entry))
		seeded++
	}

	if presence, err := rs.store.GetPresence(ctx); err != nil {
		rs.logger.Warn("failed to load presence from redis",
			logger.Error(err))
	} else if presence != "" {
		rs.svc.SetCurrentPresence(presence)
	}

	if seeded == 0 {
		rs.logger.Info("no cached status entries found in redis")
		return nil
	}

	rs.logger.Info("seeded status cache from redis",
		logger.Int("count", seeded))

	return nil
}
