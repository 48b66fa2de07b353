package domain

import (
	"strings"
	"testing"
	"time"
)

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name        string
		online      bool
		maintenance bool
		want        DisplayState
	}{
		{
			name:        "online without maintenance",
			online:      true,
			maintenance: false,
			want:        StateOnline,
		},
		{
			name:        "offline without maintenance",
			online:      false,
			maintenance: false,
			want:        StateOffline,
		},
		{
			name:        "maintenance overrides online",
			online:      true,
			maintenance: true,
			want:        StateMaintenance,
		},
		{
			name:        "maintenance overrides offline",
			online:      false,
			maintenance: true,
			want:        StateMaintenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveState(tt.online, tt.maintenance); got != tt.want {
				t.Errorf("DeriveState(%v, %v) = %v, want %v", tt.online, tt.maintenance, got, tt.want)
			}
		})
	}
}

func TestUptimePercent(t *testing.T) {
	tests := []struct {
		state DisplayState
		want  int
	}{
		{StateOnline, 100},
		{StateOffline, 0},
		{StateMaintenance, 75},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := UptimePercent(tt.state); got != tt.want {
				t.Errorf("UptimePercent(%v) = %d, want %d", tt.state, got, tt.want)
			}
		})
	}
}

func TestClassifyHealth(t *testing.T) {
	tests := []struct {
		name   string
		states []DisplayState
		want   NetworkHealth
	}{
		{
			name:   "all online",
			states: []DisplayState{StateOnline, StateOnline, StateOnline},
			want:   HealthStable,
		},
		{
			name:   "one maintenance",
			states: []DisplayState{StateOnline, StateMaintenance, StateOnline},
			want:   HealthDegraded,
		},
		{
			name:   "one offline",
			states: []DisplayState{StateOnline, StateOnline, StateOffline},
			want:   HealthCritical,
		},
		{
			name:   "offline beats maintenance",
			states: []DisplayState{StateOffline, StateMaintenance, StateOnline},
			want:   HealthCritical,
		},
		{
			name:   "all maintenance",
			states: []DisplayState{StateMaintenance, StateMaintenance, StateMaintenance},
			want:   HealthDegraded,
		},
		{
			name:   "all offline",
			states: []DisplayState{StateOffline, StateOffline, StateOffline},
			want:   HealthCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyHealth(tt.states...); got != tt.want {
				t.Errorf("ClassifyHealth(%v) = %v, want %v", tt.states, got, tt.want)
			}
		})
	}
}

func TestNetworkPlayers(t *testing.T) {
	online := func(id ServiceID, players, max int) ServiceView {
		return ServiceView{
			Status: ServiceStatus{Service: id, Online: true, PlayersOnline: players, PlayersMax: max},
			State:  StateOnline,
		}
	}
	offline := func(id ServiceID, players, max int) ServiceView {
		return ServiceView{
			Status: ServiceStatus{Service: id, Online: false, PlayersOnline: players, PlayersMax: max},
			State:  StateOffline,
		}
	}
	maint := func(id ServiceID, players, max int) ServiceView {
		return ServiceView{
			Status:      ServiceStatus{Service: id, Online: true, PlayersOnline: players, PlayersMax: max},
			Maintenance: true,
			State:       StateMaintenance,
		}
	}

	tests := []struct {
		name       string
		main       ServiceView
		lobby      ServiceView
		citybuild  ServiceView
		wantOnline int
		wantMax    int
	}{
		{
			name:       "main online takes precedence over shards",
			main:       online(ServiceMain, 120, 500),
			lobby:      online(ServiceLobby, 40, 100),
			citybuild:  online(ServiceCitybuild, 80, 200),
			wantOnline: 120,
			wantMax:    500,
		},
		{
			name:       "main offline falls back to shard sum",
			main:       offline(ServiceMain, 0, 0),
			lobby:      online(ServiceLobby, 40, 100),
			citybuild:  online(ServiceCitybuild, 80, 200),
			wantOnline: 120,
			wantMax:    300,
		},
		{
			name:       "main online but zero max falls back to shards",
			main:       online(ServiceMain, 50, 0),
			lobby:      online(ServiceLobby, 10, 100),
			citybuild:  online(ServiceCitybuild, 20, 100),
			wantOnline: 30,
			wantMax:    200,
		},
		{
			name:       "main in maintenance falls back to shards",
			main:       maint(ServiceMain, 120, 500),
			lobby:      online(ServiceLobby, 40, 100),
			citybuild:  offline(ServiceCitybuild, 0, 0),
			wantOnline: 40,
			wantMax:    100,
		},
		{
			name:       "stale counts of a maintenance shard do not leak in",
			main:       offline(ServiceMain, 0, 0),
			lobby:      online(ServiceLobby, 40, 100),
			citybuild:  maint(ServiceCitybuild, 80, 200),
			wantOnline: 40,
			wantMax:    100,
		},
		{
			name:       "everything down yields zeroes",
			main:       offline(ServiceMain, 0, 0),
			lobby:      offline(ServiceLobby, 15, 100),
			citybuild:  offline(ServiceCitybuild, 0, 0),
			wantOnline: 0,
			wantMax:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOnline, gotMax := NetworkPlayers(tt.main, tt.lobby, tt.citybuild)
			if gotOnline != tt.wantOnline || gotMax != tt.wantMax {
				t.Errorf("NetworkPlayers() = (%d, %d), want (%d, %d)",
					gotOnline, gotMax, tt.wantOnline, tt.wantMax)
			}
		})
	}
}

func TestLoadPercent(t *testing.T) {
	tests := []struct {
		name   string
		online int
		max    int
		want   int
	}{
		{"zero max", 50, 0, 0},
		{"negative max", 50, -1, 0},
		{"empty", 0, 100, 0},
		{"half", 50, 100, 50},
		{"full", 100, 100, 100},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"over capacity clamps to 100", 150, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadPercent(tt.online, tt.max); got != tt.want {
				t.Errorf("LoadPercent(%d, %d) = %d, want %d", tt.online, tt.max, got, tt.want)
			}
		})
	}
}

func TestBars(t *testing.T) {
	tests := []struct {
		name       string
		percent    int
		wantFilled int
	}{
		{"zero is all empty", 0, 0},
		{"hundred is all filled", 100, 9},
		{"fifty rounds to five", 50, 5},
		{"seventyfive rounds to seven", 75, 7},
		{"clamped below", -10, 0},
		{"clamped above", 140, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := UptimeBar(tt.percent)
			if got := strings.Count(up, "🟩"); got != tt.wantFilled {
				t.Errorf("UptimeBar(%d) green = %d, want %d", tt.percent, got, tt.wantFilled)
			}
			if got := strings.Count(up, "🟥"); got != 9-tt.wantFilled {
				t.Errorf("UptimeBar(%d) red = %d, want %d", tt.percent, got, 9-tt.wantFilled)
			}

			// Load bar is the inverse: red grows with the percentage.
			load := LoadBar(tt.percent)
			if got := strings.Count(load, "🟥"); got != tt.wantFilled {
				t.Errorf("LoadBar(%d) red = %d, want %d", tt.percent, got, tt.wantFilled)
			}
		})
	}
}

func TestLatencyLabel(t *testing.T) {
	tests := []struct {
		name   string
		pingMs int64
		want   string
	}{
		{"sentinel", NoPing, "Unknown"},
		{"zero", 0, "Stable"},
		{"boundary stable", 60, "Stable"},
		{"just above stable", 61, "Playable"},
		{"boundary playable", 120, "Playable"},
		{"high", 121, "High latency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatencyLabel(tt.pingMs); got != tt.want {
				t.Errorf("LatencyLabel(%d) = %q, want %q", tt.pingMs, got, tt.want)
			}
		})
	}
}

func TestServiceLoadLabel(t *testing.T) {
	tests := []struct {
		name    string
		online  bool
		players int
		max     int
		want    string
	}{
		{"offline", false, 50, 100, "N/A"},
		{"online but no max", true, 50, 0, "N/A"},
		{"low boundary", true, 40, 100, "Low (40%)"},
		{"medium", true, 41, 100, "Medium (41%)"},
		{"medium boundary", true, 70, 100, "Medium (70%)"},
		{"high", true, 71, 100, "High (71%)"},
		{"high boundary", true, 90, 100, "High (90%)"},
		{"critical", true, 91, 100, "Critical (91%)"},
		{"empty", true, 0, 100, "Low (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServiceLoadLabel(tt.online, tt.players, tt.max); got != tt.want {
				t.Errorf("ServiceLoadLabel(%v, %d, %d) = %q, want %q",
					tt.online, tt.players, tt.max, got, tt.want)
			}
		})
	}
}

func TestPlayabilityLabel(t *testing.T) {
	tests := []struct {
		name   string
		health NetworkHealth
		load   int
		want   string
	}{
		{"critical wins regardless of load", HealthCritical, 0, "Not recommended (outages detected)"},
		{"heavy load", HealthStable, 90, "Possible queues and lag"},
		{"busy", HealthStable, 60, "Playable, but might be busy"},
		{"quiet", HealthStable, 59, "Smooth experience expected"},
		{"degraded but quiet", HealthDegraded, 10, "Smooth experience expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayabilityLabel(tt.health, tt.load); got != tt.want {
				t.Errorf("PlayabilityLabel(%v, %d) = %q, want %q", tt.health, tt.load, got, tt.want)
			}
		})
	}
}

func TestBuildNetworkView(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	statuses := map[ServiceID]ServiceStatus{
		ServiceMain:      {Service: ServiceMain, Online: true, PlayersOnline: 120, PlayersMax: 500, Version: "Velocity 3.3", PingMs: 12},
		ServiceLobby:     {Service: ServiceLobby, Online: true, PlayersOnline: 40, PlayersMax: 100, Version: "1.21", PingMs: 30},
		ServiceCitybuild: {Service: ServiceCitybuild, Online: false, Version: UnknownVersion, PingMs: NoPing},
	}
	maint := map[ServiceID]bool{ServiceLobby: true}

	view := BuildNetworkView(statuses, maint, now)

	if view.Main.State != StateOnline {
		t.Errorf("Main.State = %v, want %v", view.Main.State, StateOnline)
	}
	if view.Lobby.State != StateMaintenance {
		t.Errorf("Lobby.State = %v, want %v", view.Lobby.State, StateMaintenance)
	}
	if view.Citybuild.State != StateOffline {
		t.Errorf("Citybuild.State = %v, want %v", view.Citybuild.State, StateOffline)
	}

	// Offline beats maintenance at the network level.
	if view.Health != HealthCritical {
		t.Errorf("Health = %v, want %v", view.Health, HealthCritical)
	}

	// Main is online with a usable max, so its counts stand alone.
	if view.TotalOnline != 120 || view.TotalMax != 500 {
		t.Errorf("totals = (%d, %d), want (120, 500)", view.TotalOnline, view.TotalMax)
	}
	if view.LoadPercent != 24 {
		t.Errorf("LoadPercent = %d, want 24", view.LoadPercent)
	}

	if view.Lobby.UptimePercent != 75 {
		t.Errorf("Lobby.UptimePercent = %d, want 75", view.Lobby.UptimePercent)
	}
	if view.Citybuild.Latency != "Unknown" {
		t.Errorf("Citybuild.Latency = %q, want %q", view.Citybuild.Latency, "Unknown")
	}
	if !view.CheckedAt.Equal(now) {
		t.Errorf("CheckedAt = %v, want %v", view.CheckedAt, now)
	}
}

func TestBuildNetworkViewMissingStatuses(t *testing.T) {
	// An empty status map must still yield a well-formed view where
	// every service carries the normalized offline record.
	view := BuildNetworkView(nil, nil, time.Now())

	for _, id := range AllServices() {
		sv := view.Service(id)
		if sv.State != StateOffline {
			t.Errorf("Service(%s).State = %v, want %v", id, sv.State, StateOffline)
		}
		if sv.Status.PingMs != NoPing {
			t.Errorf("Service(%s).PingMs = %d, want %d", id, sv.Status.PingMs, NoPing)
		}
		if sv.Status.Version != UnknownVersion {
			t.Errorf("Service(%s).Version = %q, want %q", id, sv.Status.Version, UnknownVersion)
		}
	}

	if view.Health != HealthCritical {
		t.Errorf("Health = %v, want %v", view.Health, HealthCritical)
	}
	if view.LoadPercent != 0 {
		t.Errorf("LoadPercent = %d, want 0", view.LoadPercent)
	}
	if view.AnyOnline() {
		t.Error("AnyOnline() = true, want false")
	}
}

func TestParseServiceID(t *testing.T) {
	tests := []struct {
		input  string
		wantID ServiceID
		wantOK bool
	}{
		{"main", ServiceMain, true},
		{"lobby", ServiceLobby, true},
		{"citybuild", ServiceCitybuild, true},
		{"proxy", "", false},
		{"", "", false},
		{"Main", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, ok := ParseServiceID(tt.input)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ParseServiceID(%q) = (%v, %v), want (%v, %v)",
					tt.input, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
