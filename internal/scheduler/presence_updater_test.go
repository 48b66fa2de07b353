package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/maintenance"
	"github.com/lyzrex/lythrion-status/internal/status"
)

type staticCache struct {
	statuses map[domain.ServiceID]domain.ServiceStatus
}

func (f *staticCache) Get(_ context.Context, id domain.ServiceID) domain.ServiceStatus {
	if st, ok := f.statuses[id]; ok {
		return st
	}
	return domain.OfflineStatus(id)
}

func newTestService(cache status.Cache) *status.Service {
	return status.NewService(cache, maintenance.NewRegistry(nil), 5*time.Second, "Lythrion.net", logger.New("error", false))
}

func TestRefreshPublishesPresence(t *testing.T) {
	svc := newTestService(&staticCache{
		statuses: map[domain.ServiceID]domain.ServiceStatus{
			domain.ServiceMain: {Service: domain.ServiceMain, Online: true, PlayersOnline: 7, PlayersMax: 100},
		},
	})
	pu := NewPresenceUpdater(svc, nil, logger.New("error", false), time.Minute, make(chan struct{}, 1))

	if err := pu.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := "Playing on Lythrion.net (7/100)"
	if got := svc.CurrentPresence(); got != want {
		t.Errorf("CurrentPresence() = %q, want %q", got, want)
	}
}

func TestStartRefreshesImmediately(t *testing.T) {
	svc := newTestService(&staticCache{
		statuses: map[domain.ServiceID]domain.ServiceStatus{
			domain.ServiceLobby: {Service: domain.ServiceLobby, Online: true, PlayersOnline: 2, PlayersMax: 60},
		},
	})
	pu := NewPresenceUpdater(svc, nil, logger.New("error", false), time.Hour, make(chan struct{}, 1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pu.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer pu.Stop()

	// Start refreshes synchronously before spawning the loop.
	want := "Playing on Lythrion.net (2/60)"
	if got := svc.CurrentPresence(); got != want {
		t.Errorf("CurrentPresence() after Start = %q, want %q", got, want)
	}
}

func TestManualTrigger(t *testing.T) {
	cache := &staticCache{statuses: map[domain.ServiceID]domain.ServiceStatus{}}
	svc := newTestService(cache)
	trigger := make(chan struct{}, 1)
	pu := NewPresenceUpdater(svc, nil, logger.New("error", false), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pu.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer pu.Stop()

	// Flip the network online, then nudge the loop.
	cache.statuses = map[domain.ServiceID]domain.ServiceStatus{
		domain.ServiceMain: {Service: domain.ServiceMain, Online: true, PlayersOnline: 1, PlayersMax: 10},
	}
	trigger <- struct{}{}

	want := "Playing on Lythrion.net (1/10)"
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if svc.CurrentPresence() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("CurrentPresence() = %q, want %q after manual trigger", svc.CurrentPresence(), want)
}
