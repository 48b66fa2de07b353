package status

import (
	"fmt"

	"github.com/lyzrex/lythrion-status/internal/domain"
)

// Presence derives the short ambient status string from an aggregated
// view. Pure formatting over already-aggregated data: the player totals
// follow the view's double-counting rule, nothing is recomputed here.
func (s *Service) Presence(view *domain.NetworkView) string {
	if view.TotalMax > 0 {
		return fmt.Sprintf("Playing on %s (%d/%d)", s.networkAddr, view.TotalOnline, view.TotalMax)
	}
	if view.AnyOnline() {
		return fmt.Sprintf("Playing on %s (online)", s.networkAddr)
	}
	return fmt.Sprintf("%s (offline)", s.networkAddr)
}
