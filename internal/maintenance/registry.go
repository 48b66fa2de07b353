package maintenance

import (
	"sync"

	"github.com/lyzrex/lythrion-status/internal/domain"
)

// Registry holds the operator-controlled maintenance flag per service.
// Flags are independent of probe results and live only in memory; the
// configuration snapshot taken at startup is the sole seed.
type Registry struct {
	mu    sync.RWMutex
	flags map[domain.ServiceID]bool
}

// NewRegistry creates a registry seeded from the given flags.
// Unknown services in the seed are ignored; missing ones default to false.
func NewRegistry(seed map[domain.ServiceID]bool) *Registry {
	flags := make(map[domain.ServiceID]bool, len(domain.AllServices()))
	for _, id := range domain.AllServices() {
		flags[id] = seed[id]
	}
	return &Registry{flags: flags}
}

// IsMaintenance reports whether a service is flagged for maintenance.
func (r *Registry) IsMaintenance(id domain.ServiceID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[id]
}

// SetMaintenance flips the flag for a service. Last write wins.
func (r *Registry) SetMaintenance(id domain.ServiceID, value bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[id] = value
}

// Snapshot returns a copy of all flags as of now. Cross-service
// consistency is best effort; callers tolerate a flag flipping between
// reads.
func (r *Registry) Snapshot() map[domain.ServiceID]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.ServiceID]bool, len(r.flags))
	for id, v := range r.flags {
		out[id] = v
	}
	return out
}
