package domain

// ServiceID identifies one of the three monitored backends.
// The set is fixed: the Velocity proxy (main) and the two core shards.
type ServiceID string

const (
	ServiceMain      ServiceID = "main"
	ServiceLobby     ServiceID = "lobby"
	ServiceCitybuild ServiceID = "citybuild"
)

// AllServices returns the monitored services in display order.
func AllServices() []ServiceID {
	return []ServiceID{ServiceMain, ServiceLobby, ServiceCitybuild}
}

// ParseServiceID maps user/operator input to a known service.
func ParseServiceID(s string) (ServiceID, bool) {
	switch ServiceID(s) {
	case ServiceMain, ServiceLobby, ServiceCitybuild:
		return ServiceID(s), true
	}
	return "", false
}

// NoPing is the sentinel for "no valid latency measurement"
// (timeout, transport error, non-success HTTP status).
const NoPing int64 = -1

// UnknownVersion is reported when the upstream does not expose a version.
const UnknownVersion = "Unknown"

// ServiceStatus is the normalized result of a single probe.
//
// PingMs carries NoPing when no measurement exists. Do not infer
// online/offline from the ping sign beyond that sentinel: the main
// service's ping is smoothed independently of its online flag.
type ServiceStatus struct {
	Service       ServiceID `json:"service"`
	Online        bool      `json:"online"`
	PlayersOnline int       `json:"players_online"`
	PlayersMax    int       `json:"players_max"`
	Version       string    `json:"version"`
	PingMs        int64     `json:"ping_ms"`
}

// OfflineStatus is the normalized failure record for a service.
// Every probe error collapses into this shape.
func OfflineStatus(id ServiceID) ServiceStatus {
	return ServiceStatus{
		Service: id,
		Online:  false,
		Version: UnknownVersion,
		PingMs:  NoPing,
	}
}
