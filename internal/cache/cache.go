package cache

import (
	"context"
	"sync"
	"time"

	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/logger"
	redisstore "github.com/lyzrex/lythrion-status/internal/store/redis"
)

// mirrorTimeout bounds best-effort Redis mirror operations.
const mirrorTimeout = 2 * time.Second

// Prober fetches a fresh status for one service.
type Prober interface {
	Fetch(ctx context.Context, id domain.ServiceID) domain.ServiceStatus
}

// Entry is one memoized probe result.
type Entry struct {
	Status    domain.ServiceStatus
	FetchedAt time.Time
}

// Freshness memoizes probe results per service for a fixed TTL.
//
// Failures are cached exactly like successes: a dead upstream is asked
// again at most once per TTL window. That trades freshness for bounded
// upstream load, deliberately.
//
// Entries are only ever overwritten, never deleted. Two goroutines
// racing on the same expired entry may both probe; both writes are
// idempotent overwrites, so that is tolerable noise.
type Freshness struct {
	mu      sync.RWMutex
	entries map[domain.ServiceID]Entry

	prober Prober
	ttl    time.Duration
	now    func() time.Time
	mirror *redisstore.Store
	logger logger.Logger
}

// Option customizes a Freshness cache.
type Option func(*Freshness)

// WithClock injects a time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Freshness) { c.now = now }
}

// WithMirror enables best-effort write-through to Redis so a restarted
// process can warm-start within the TTL window.
func WithMirror(store *redisstore.Store) Option {
	return func(c *Freshness) { c.mirror = store }
}

// New creates a freshness cache over the given prober.
func New(prober Prober, ttl time.Duration, log logger.Logger, opts ...Option) *Freshness {
	c := &Freshness{
		entries: make(map[domain.ServiceID]Entry, len(domain.AllServices())),
		prober:  prober,
		ttl:     ttl,
		now:     time.Now,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the memoized status for id if it is younger than the TTL,
// otherwise probes, stores the result (success or failure alike) and
// returns it.
func (c *Freshness) Get(ctx context.Context, id domain.ServiceID) domain.ServiceStatus {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.FetchedAt) <= c.ttl {
		return entry.Status
	}

	fresh := Entry{
		Status:    c.prober.Fetch(ctx, id),
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.entries[id] = fresh
	c.mu.Unlock()

	c.mirrorSave(fresh)

	return fresh.Status
}

// Peek returns the current entry without triggering a probe.
func (c *Freshness) Peek(id domain.ServiceID) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	return entry, ok
}

// Seed primes the cache with a previously stored entry. An existing
// newer entry wins; seeding never regresses the cache.
func (c *Freshness) Seed(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.entries[entry.Status.Service]
	if ok && current.FetchedAt.After(entry.FetchedAt) {
		return
	}
	c.entries[entry.Status.Service] = entry
}

// mirrorSave writes an entry to Redis, best effort. The mirror keeps
// its own context: cache consistency must not depend on the caller's
// deadline, and a mirror failure never fails a status check.
func (c *Freshness) mirrorSave(entry Entry) {
	if c.mirror == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := c.mirror.SaveEntry(ctx, redisstore.Entry(entry), c.ttl); err != nil {
		c.logger.Warn("failed to mirror status entry to redis",
			logger.String("service", string(entry.Status.Service)),
			logger.Error(err))
	}
}
