package redis

import "github.com/lyzrex/lythrion-status/internal/domain"

const (
	// KeyPrefixStatus is the prefix for cached probe entries.
	KeyPrefixStatus = "lythstatus:status:"
	// KeyPresence holds the last synthesized presence string.
	KeyPresence = "lythstatus:presence"
)

// StatusKey returns the Redis key for a service's cached probe entry.
func StatusKey(id domain.ServiceID) string {
	return KeyPrefixStatus + string(id)
}
