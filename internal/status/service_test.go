package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/maintenance"
)

type fakeCache struct {
	statuses map[domain.ServiceID]domain.ServiceStatus
	delay    map[domain.ServiceID]time.Duration
}

func (f *fakeCache) Get(ctx context.Context, id domain.ServiceID) domain.ServiceStatus {
	if d, ok := f.delay[id]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}
	if st, ok := f.statuses[id]; ok {
		return st
	}
	return domain.OfflineStatus(id)
}

func testLogger() logger.Logger {
	return logger.New("error", false)
}

func allOnline() map[domain.ServiceID]domain.ServiceStatus {
	return map[domain.ServiceID]domain.ServiceStatus{
		domain.ServiceMain:      {Service: domain.ServiceMain, Online: true, PlayersOnline: 100, PlayersMax: 400, Version: "Velocity", PingMs: 10},
		domain.ServiceLobby:     {Service: domain.ServiceLobby, Online: true, PlayersOnline: 30, PlayersMax: 100, Version: "1.21", PingMs: 25},
		domain.ServiceCitybuild: {Service: domain.ServiceCitybuild, Online: true, PlayersOnline: 70, PlayersMax: 200, Version: "1.21", PingMs: 28},
	}
}

func TestCheckComposesView(t *testing.T) {
	maint := maintenance.NewRegistry(nil)
	maint.SetMaintenance(domain.ServiceCitybuild, true)

	svc := NewService(&fakeCache{statuses: allOnline()}, maint, 10*time.Second, "Lythrion.net", testLogger())

	view, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if view.Main.State != domain.StateOnline {
		t.Errorf("Main.State = %v, want %v", view.Main.State, domain.StateOnline)
	}
	if view.Citybuild.State != domain.StateMaintenance {
		t.Errorf("Citybuild.State = %v, want %v", view.Citybuild.State, domain.StateMaintenance)
	}
	if view.Health != domain.HealthDegraded {
		t.Errorf("Health = %v, want %v", view.Health, domain.HealthDegraded)
	}
	if view.TotalOnline != 100 || view.TotalMax != 400 {
		t.Errorf("totals = (%d, %d), want (100, 400)", view.TotalOnline, view.TotalMax)
	}
}

func TestCheckTimeout(t *testing.T) {
	cache := &fakeCache{
		statuses: allOnline(),
		delay:    map[domain.ServiceID]time.Duration{domain.ServiceLobby: time.Second},
	}
	svc := NewService(cache, maintenance.NewRegistry(nil), 50*time.Millisecond, "Lythrion.net", testLogger())

	view, err := svc.Check(context.Background())
	if !errors.Is(err, ErrCheckTimeout) {
		t.Fatalf("Check() error = %v, want ErrCheckTimeout", err)
	}
	// Never a partial view.
	if view != nil {
		t.Errorf("Check() view = %+v, want nil on timeout", view)
	}
}

func TestCheckCallerCancellation(t *testing.T) {
	cache := &fakeCache{
		statuses: allOnline(),
		delay:    map[domain.ServiceID]time.Duration{domain.ServiceMain: time.Second},
	}
	svc := NewService(cache, maintenance.NewRegistry(nil), 10*time.Second, "Lythrion.net", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Check(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Check() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrCheckTimeout) {
		t.Error("caller cancellation must not be reported as a check timeout")
	}
}

func TestRefreshUpdatesPresence(t *testing.T) {
	svc := NewService(&fakeCache{statuses: allOnline()}, maintenance.NewRegistry(nil), 10*time.Second, "Lythrion.net", testLogger())

	if got := svc.CurrentPresence(); got != "Lythrion.net (offline)" {
		t.Errorf("CurrentPresence() before refresh = %q, want offline fallback", got)
	}

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := "Playing on Lythrion.net (100/400)"
	if got := svc.CurrentPresence(); got != want {
		t.Errorf("CurrentPresence() = %q, want %q", got, want)
	}
}

func TestRefreshKeepsPresenceOnTimeout(t *testing.T) {
	cache := &fakeCache{
		statuses: allOnline(),
		delay:    map[domain.ServiceID]time.Duration{domain.ServiceLobby: time.Second},
	}
	svc := NewService(cache, maintenance.NewRegistry(nil), 50*time.Millisecond, "Lythrion.net", testLogger())
	svc.SetCurrentPresence("Playing on Lythrion.net (12/100)")

	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() = nil error, want timeout")
	}

	// The last good presence survives a failed refresh.
	if got := svc.CurrentPresence(); got != "Playing on Lythrion.net (12/100)" {
		t.Errorf("CurrentPresence() = %q, want previous value", got)
	}
}

func TestSetCurrentPresenceIgnoresEmpty(t *testing.T) {
	svc := NewService(&fakeCache{}, maintenance.NewRegistry(nil), time.Second, "Lythrion.net", testLogger())

	svc.SetCurrentPresence("")
	if got := svc.CurrentPresence(); got != "Lythrion.net (offline)" {
		t.Errorf("CurrentPresence() = %q, want offline fallback", got)
	}
}
