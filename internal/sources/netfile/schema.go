package netfile

// FileConfig is the optional YAML network file layered over the
// environment config. It mirrors the shape the bot's operators already
// maintain: network identity, status endpoints, maintenance seeds.
type FileConfig struct {
	Network struct {
		Name string `yaml:"name"`
		Addr string `yaml:"addr"`
	} `yaml:"network"`

	Status struct {
		MainURL      string `yaml:"main_url"`
		LobbyURL     string `yaml:"lobby_url"`
		CitybuildURL string `yaml:"citybuild_url"`
	} `yaml:"status"`

	// Pointers distinguish "not set" from an explicit false.
	Maintenance struct {
		Main      *bool `yaml:"main"`
		Lobby     *bool `yaml:"lobby"`
		Citybuild *bool `yaml:"citybuild"`
	} `yaml:"maintenance"`
}
