package status

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/maintenance"
)

// ErrCheckTimeout means the network state could not be determined within
// the check budget. Distinct from every service being offline: callers
// should retry instead of rendering misleading data.
var ErrCheckTimeout = errors.New("status check timed out")

// Cache serves memoized-or-fresh probe results.
type Cache interface {
	Get(ctx context.Context, id domain.ServiceID) domain.ServiceStatus
}

// Service computes the aggregated network view. It owns no probe state
// itself; the cache and the maintenance registry are its only inputs.
type Service struct {
	cache        Cache
	maint        *maintenance.Registry
	checkTimeout time.Duration
	networkAddr  string
	logger       logger.Logger
	now          func() time.Time

	presence atomic.Value // string
}

// NewService wires the aggregation service.
func NewService(cache Cache, maint *maintenance.Registry, checkTimeout time.Duration, networkAddr string, log logger.Logger) *Service {
	return &Service{
		cache:        cache,
		maint:        maint,
		checkTimeout: checkTimeout,
		networkAddr:  networkAddr,
		logger:       log,
		now:          time.Now,
	}
}

// Check fetches all three services concurrently and combines them with
// the maintenance flags into a network view.
//
// Each probe carries its own request timeout; the whole check runs under
// the outer check budget. If that budget expires before all three settle
// the caller gets ErrCheckTimeout, never a partial view. Abandoned
// probes keep running and may still land in the cache — nobody waits
// for them.
func (s *Service) Check(ctx context.Context) (*domain.NetworkView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	type result struct {
		id     domain.ServiceID
		status domain.ServiceStatus
	}

	services := domain.AllServices()
	results := make(chan result, len(services))
	for _, id := range services {
		go func(id domain.ServiceID) {
			results <- result{id: id, status: s.cache.Get(ctx, id)}
		}(id)
	}

	statuses := make(map[domain.ServiceID]domain.ServiceStatus, len(services))
	for range services {
		select {
		case r := <-results:
			statuses[r.id] = r.status
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, ctx.Err()
			}
			s.logger.Warn("status check exceeded budget",
				logger.Duration("budget", s.checkTimeout),
				logger.Int("settled", len(statuses)))
			return nil, ErrCheckTimeout
		}
	}

	return domain.BuildNetworkView(statuses, s.maint.Snapshot(), s.now()), nil
}

// Refresh runs a check and updates the published presence string.
func (s *Service) Refresh(ctx context.Context) (*domain.NetworkView, error) {
	view, err := s.Check(ctx)
	if err != nil {
		return nil, err
	}
	s.presence.Store(s.Presence(view))
	return view, nil
}

// CurrentPresence returns the last synthesized presence string, or the
// generic offline string before the first successful refresh.
func (s *Service) CurrentPresence() string {
	if v, ok := s.presence.Load().(string); ok && v != "" {
		return v
	}
	return s.networkAddr + " (offline)"
}

// SetCurrentPresence seeds the published presence (warm start).
func (s *Service) SetCurrentPresence(p string) {
	if p != "" {
		s.presence.Store(p)
	}
}
