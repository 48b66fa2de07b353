package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DisplayState is the tri-valued classification shown to users.
// It is distinct from the raw probe result: a maintenance flag
// overrides whatever the probe reported.
type DisplayState string

const (
	StateOnline      DisplayState = "online"
	StateOffline     DisplayState = "offline"
	StateMaintenance DisplayState = "maintenance"
)

// NetworkHealth is the single judgment summarizing all three services.
type NetworkHealth string

const (
	HealthStable   NetworkHealth = "stable"
	HealthDegraded NetworkHealth = "degraded"
	HealthCritical NetworkHealth = "critical"
)

// barSegments is the number of blocks in uptime/load bars.
const barSegments = 9

// ServiceView is the per-service slice of an aggregated check.
type ServiceView struct {
	Status        ServiceStatus `json:"status"`
	Maintenance   bool          `json:"maintenance"`
	State         DisplayState  `json:"state"`
	UptimePercent int           `json:"uptime_percent"`
	UptimeBar     string        `json:"uptime_bar"`
	Latency       string        `json:"latency"`
	Load          string        `json:"load"`
}

// NetworkView is the combined network judgment derived from the three
// per-service views. It is computed on every check, never stored.
type NetworkView struct {
	Main      ServiceView `json:"main"`
	Lobby     ServiceView `json:"lobby"`
	Citybuild ServiceView `json:"citybuild"`

	Health        NetworkHealth `json:"health"`
	HealthSummary string        `json:"health_summary"`
	TotalOnline   int           `json:"total_online"`
	TotalMax      int           `json:"total_max"`
	LoadPercent   int           `json:"load_percent"`
	LoadBar       string        `json:"load_bar"`
	Playability   string        `json:"playability"`
	CheckedAt     time.Time     `json:"checked_at"`
}

// Service returns the per-service view for id.
func (v *NetworkView) Service(id ServiceID) ServiceView {
	switch id {
	case ServiceLobby:
		return v.Lobby
	case ServiceCitybuild:
		return v.Citybuild
	default:
		return v.Main
	}
}

// AnyOnline reports whether at least one service displays as online.
func (v *NetworkView) AnyOnline() bool {
	for _, sv := range []ServiceView{v.Main, v.Lobby, v.Citybuild} {
		if sv.State == StateOnline {
			return true
		}
	}
	return false
}

// BuildNetworkView combines probe results and maintenance flags into the
// full network judgment. It is a total function: every input combination
// yields a well-formed view.
func BuildNetworkView(statuses map[ServiceID]ServiceStatus, maint map[ServiceID]bool, now time.Time) *NetworkView {
	view := &NetworkView{
		Main:      buildServiceView(ServiceMain, statuses[ServiceMain], maint[ServiceMain]),
		Lobby:     buildServiceView(ServiceLobby, statuses[ServiceLobby], maint[ServiceLobby]),
		Citybuild: buildServiceView(ServiceCitybuild, statuses[ServiceCitybuild], maint[ServiceCitybuild]),
		CheckedAt: now,
	}

	view.Health = ClassifyHealth(view.Main.State, view.Lobby.State, view.Citybuild.State)
	view.HealthSummary = healthSummary(view.Health)

	view.TotalOnline, view.TotalMax = NetworkPlayers(view.Main, view.Lobby, view.Citybuild)
	view.LoadPercent = LoadPercent(view.TotalOnline, view.TotalMax)
	view.LoadBar = LoadBar(view.LoadPercent)
	view.Playability = PlayabilityLabel(view.Health, view.LoadPercent)

	return view
}

func buildServiceView(id ServiceID, st ServiceStatus, maint bool) ServiceView {
	if st.Service == "" {
		st = OfflineStatus(id)
	}
	state := DeriveState(st.Online, maint)
	uptime := UptimePercent(state)
	return ServiceView{
		Status:        st,
		Maintenance:   maint,
		State:         state,
		UptimePercent: uptime,
		UptimeBar:     UptimeBar(uptime),
		Latency:       LatencyLabel(st.PingMs),
		Load:          ServiceLoadLabel(st.Online, st.PlayersOnline, st.PlayersMax),
	}
}

// DeriveState applies the display-state precedence: a maintenance flag
// wins over any probe result.
func DeriveState(online, maintenance bool) DisplayState {
	if maintenance {
		return StateMaintenance
	}
	if online {
		return StateOnline
	}
	return StateOffline
}

// UptimePercent maps a display state to its synthetic uptime figure.
// These are fixed heuristics, not measured values.
func UptimePercent(state DisplayState) int {
	switch state {
	case StateMaintenance:
		return 75
	case StateOnline:
		return 100
	default:
		return 0
	}
}

// ClassifyHealth ranks the network by severity: any offline service is
// critical, any maintenance is degraded, otherwise stable. Offline beats
// maintenance on purpose.
func ClassifyHealth(states ...DisplayState) NetworkHealth {
	offline, maintenance := 0, 0
	for _, s := range states {
		switch s {
		case StateOffline:
			offline++
		case StateMaintenance:
			maintenance++
		}
	}
	if offline > 0 {
		return HealthCritical
	}
	if maintenance > 0 {
		return HealthDegraded
	}
	return HealthStable
}

func healthSummary(h NetworkHealth) string {
	switch h {
	case HealthCritical:
		return "One or more core services are unavailable."
	case HealthDegraded:
		return "Maintenance in progress on at least one service."
	default:
		return "All core services are online."
	}
}

// NetworkPlayers computes aggregate player counts without double counting.
// The main proxy already sees every player on the network, so when it
// displays as online with a usable max, its counts stand alone. Otherwise
// the shard counts are summed, but only for shards displaying as online;
// stale cached counts of offline or maintenance shards contribute nothing.
func NetworkPlayers(main, lobby, citybuild ServiceView) (totalOnline, totalMax int) {
	if main.State == StateOnline && main.Status.PlayersMax > 0 {
		return main.Status.PlayersOnline, main.Status.PlayersMax
	}
	for _, sv := range []ServiceView{lobby, citybuild} {
		if sv.State != StateOnline {
			continue
		}
		totalOnline += sv.Status.PlayersOnline
		totalMax += sv.Status.PlayersMax
	}
	return totalOnline, totalMax
}

// LoadPercent is round(online/max*100) clamped to [0,100].
// A zero max yields 0, never a division by zero.
func LoadPercent(totalOnline, totalMax int) int {
	if totalMax <= 0 {
		return 0
	}
	return ClampPercent(int(math.Round(float64(totalOnline) * 100 / float64(totalMax))))
}

// ClampPercent bounds p to [0,100].
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FilledSegments maps a percentage to a filled block count on a
// 9-segment bar. 0 and 100 hit the all-empty and all-filled extremes.
func FilledSegments(percent int) int {
	return int(math.Round(float64(ClampPercent(percent)) / 100 * barSegments))
}

// UptimeBar renders a 9-segment bar where filled blocks are good.
func UptimeBar(percent int) string {
	filled := FilledSegments(percent)
	return strings.Repeat("🟩", filled) + strings.Repeat("🟥", barSegments-filled)
}

// LoadBar renders the inverse mapping: blocks turn red as load grows.
func LoadBar(percent int) string {
	red := FilledSegments(percent)
	return strings.Repeat("🟩", barSegments-red) + strings.Repeat("🟥", red)
}

// LatencyLabel classifies a measured ping for display.
func LatencyLabel(pingMs int64) string {
	switch {
	case pingMs < 0:
		return "Unknown"
	case pingMs <= 60:
		return "Stable"
	case pingMs <= 120:
		return "Playable"
	default:
		return "High latency"
	}
}

// ServiceLoadLabel classifies a single service's occupancy.
// Requires a usable online count; everything else is N/A.
func ServiceLoadLabel(online bool, playersOnline, playersMax int) string {
	if !online || playersMax <= 0 {
		return "N/A"
	}
	percent := LoadPercent(playersOnline, playersMax)
	var label string
	switch {
	case percent <= 40:
		label = "Low"
	case percent <= 70:
		label = "Medium"
	case percent <= 90:
		label = "High"
	default:
		label = "Critical"
	}
	return fmt.Sprintf("%s (%d%%)", label, percent)
}

// PlayabilityLabel summarizes whether joining the network is a good idea.
func PlayabilityLabel(health NetworkHealth, loadPercent int) string {
	if health == HealthCritical {
		return "Not recommended (outages detected)"
	}
	if loadPercent >= 90 {
		return "Possible queues and lag"
	}
	if loadPercent >= 60 {
		return "Playable, but might be busy"
	}
	return "Smooth experience expected"
}
