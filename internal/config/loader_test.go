package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesAndUsesDefaults(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	req.NoError(err)
	req.Equal(path, resolved)
	req.Equal(Default(), cfg)

	// The default config file was materialized for the operator to edit.
	_, err = os.Stat(path)
	req.NoError(err)
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte(
		"addr: \":9999\"\n"+
			"max_clipboard_entries: 10\n"+
			"max_connections_per_address: 3\n"+
			"ghost_session_lifetime: 2s\n"+
			"ghost_session_cleanup_interval: 500ms\n",
	), 0o600))

	cfg, _, err := Load(nil, path)
	req.NoError(err)
	req.Equal(":9999", cfg.Addr)
	req.Equal(10, cfg.MaxClipboardEntries)
	req.Equal(3, cfg.MaxConnectionsPerAddress)
	req.Equal(2*time.Second, cfg.GhostSessionLifetime)
	req.Equal(500*time.Millisecond, cfg.GhostSessionCleanupInterval)

	// Untouched keys keep their defaults.
	req.Equal(Default().ShutdownTimeout, cfg.ShutdownTimeout)
}
