package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/utils"
)

const (
	// maxBodyBytes bounds how much of an upstream response we read.
	maxBodyBytes = 1 << 20

	// The main proxy's measured ping is smoothed into [2,23] ms for
	// display parity with the network dashboard. Shard pings are real.
	minMainPingMs = 2
	maxMainPingMs = 23
)

// Endpoint is one monitored upstream: where to ask and how to read the answer.
type Endpoint struct {
	URL    string
	Schema SchemaKind
}

// Prober issues a single bounded GET per service and normalizes the
// outcome. It never returns an error: timeouts, transport failures,
// non-2xx statuses and malformed bodies all collapse into the offline
// record with a -1 ping. Storage is the cache's job, not ours.
type Prober struct {
	client    *http.Client
	endpoints map[domain.ServiceID]Endpoint
	timeout   time.Duration
	logger    logger.Logger
}

// New creates a prober over the configured endpoints.
func New(endpoints map[domain.ServiceID]Endpoint, timeout time.Duration, log logger.Logger) *Prober {
	return &Prober{
		client: &http.Client{
			Transport: &http.Transport{
				DisableKeepAlives:   true,
				TLSHandshakeTimeout: timeout,
			},
		},
		endpoints: endpoints,
		timeout:   timeout,
		logger:    log,
	}
}

// Fetch probes one service and returns its normalized status.
//
// The request runs under the prober's own timeout, detached from the
// caller's cancellation: an aggregation that gives up early must not
// turn a still-running probe into a spurious offline record.
func (p *Prober) Fetch(ctx context.Context, id domain.ServiceID) domain.ServiceStatus {
	ep, ok := p.endpoints[id]
	if !ok || ep.URL == "" {
		p.logger.Warn("no endpoint configured for service",
			logger.String("service", string(id)))
		return domain.OfflineStatus(id)
	}

	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, ep.URL, http.NoBody)
	if err != nil {
		p.logger.Error("failed to build probe request",
			logger.String("service", string(id)),
			logger.Error(err))
		return domain.OfflineStatus(id)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe request failed",
			logger.String("service", string(id)),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return domain.OfflineStatus(id)
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	ping := time.Since(start).Milliseconds()

	if err != nil {
		p.logger.Debug("failed to read probe response",
			logger.String("service", string(id)),
			logger.Error(err))
		return domain.OfflineStatus(id)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Debug("probe returned non-success status",
			logger.String("service", string(id)),
			logger.Int("status", resp.StatusCode))
		return domain.OfflineStatus(id)
	}

	res, err := parserFor(ep.Schema)(body)
	if err != nil {
		p.logger.Warn("probe returned malformed body",
			logger.String("service", string(id)),
			logger.Error(err))
		return domain.OfflineStatus(id)
	}

	if id == domain.ServiceMain {
		ping = clampMainPing(ping)
	}

	return domain.ServiceStatus{
		Service:       id,
		Online:        res.online,
		PlayersOnline: res.playersOnline,
		PlayersMax:    res.playersMax,
		Version:       res.version,
		PingMs:        ping,
	}
}

func clampMainPing(ping int64) int64 {
	if ping < minMainPingMs {
		return minMainPingMs
	}
	if ping > maxMainPingMs {
		return maxMainPingMs
	}
	return ping
}
