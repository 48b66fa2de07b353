package netfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lyzrex/lythrion-status/internal/config"
)

// Loader handles loading and parsing of the network YAML file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the network file.
func (l *Loader) Load() (*FileConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse network yaml: %w", err)
	}

	return &fc, nil
}

// Apply overlays the file values onto cfg. Empty fields leave the
// environment-derived values untouched.
func Apply(cfg *config.Config, fc *FileConfig) {
	if fc.Network.Name != "" {
		cfg.NetworkName = fc.Network.Name
	}
	if fc.Network.Addr != "" {
		cfg.NetworkAddr = fc.Network.Addr
	}

	if fc.Status.MainURL != "" {
		cfg.MainURL = fc.Status.MainURL
	}
	if fc.Status.LobbyURL != "" {
		cfg.LobbyURL = fc.Status.LobbyURL
	}
	if fc.Status.CitybuildURL != "" {
		cfg.CitybuildURL = fc.Status.CitybuildURL
	}

	if fc.Maintenance.Main != nil {
		cfg.MaintenanceMain = *fc.Maintenance.Main
	}
	if fc.Maintenance.Lobby != nil {
		cfg.MaintenanceLobby = *fc.Maintenance.Lobby
	}
	if fc.Maintenance.Citybuild != nil {
		cfg.MaintenanceCitybuild = *fc.Maintenance.Citybuild
	}
}
