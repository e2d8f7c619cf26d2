package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Coordination-core limits.
	MaxConnectionsPerAddress    int           `mapstructure:"max_connections_per_address" yaml:"max_connections_per_address"`
	MaxClipboardEntries         int           `mapstructure:"max_clipboard_entries" yaml:"max_clipboard_entries"`
	GhostSessionLifetime        time.Duration `mapstructure:"ghost_session_lifetime" yaml:"ghost_session_lifetime"`
	GhostSessionCleanupInterval time.Duration `mapstructure:"ghost_session_cleanup_interval" yaml:"ghost_session_cleanup_interval"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:                        ":8080",
		StaticDir:                   "",
		LogLevel:                    "info",
		ReadHeaderTimeout:           5 * time.Second,
		ShutdownTimeout:             5 * time.Second,
		MaxConnectionsPerAddress:    8,
		MaxClipboardEntries:         50,
		GhostSessionLifetime:        time.Minute,
		GhostSessionCleanupInterval: 10 * time.Second,
	}
}
