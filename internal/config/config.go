// Package config provides YAML-based configuration loading for the
// gridpath tools.
package config

// Config holds all tool configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Render  RenderConfig  `yaml:"render"`
	Maps    MapsConfig    `yaml:"maps"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// SearchConfig defines default search parameters.
type SearchConfig struct {
	Metric string `yaml:"metric"` // "manhattan" or "euclidean"
	Moves  string `yaml:"moves"`  // "cardinal" or "king"
}

// RenderConfig defines terminal rendering options.
type RenderConfig struct {
	Plain  bool              `yaml:"plain"`  // Disable colors and styling
	Glyphs map[string]string `yaml:"glyphs"` // Override cell glyphs by role
}

// MapsConfig defines where map files are searched.
type MapsConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig defines the run history database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH visualizer server.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	HostKeyPath    string `yaml:"host_key_path"`
	IdleTimeoutSec int    `yaml:"idle_timeout_sec"`
	TickMS         int    `yaml:"tick_ms"` // Autoplay step interval
}
