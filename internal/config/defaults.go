package config

import (
	_ "embed"
)

//go:embed defaults/gridpath.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration, used when
// even the embedded YAML fails to parse.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Metric: "manhattan",
			Moves:  "cardinal",
		},
		Render: RenderConfig{
			Plain:  false,
			Glyphs: map[string]string{},
		},
		Maps: MapsConfig{
			Dir: "maps",
		},
		Storage: StorageConfig{
			DBPath: "~/.gridpath/runs.db",
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           23235,
			HostKeyPath:    "~/.gridpath/id_ed25519",
			IdleTimeoutSec: 300,
			TickMS:         120,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultYAML
}
