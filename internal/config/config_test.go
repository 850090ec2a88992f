package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.False(t, cfg.History.Enabled)

	tools := cfg.ScanTools()
	assert.Equal(t, "lsblk", tools.Lsblk)
	assert.Equal(t, "pvs", tools.PVs)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timeout_seconds: 3
tools:
  lsblk: /usr/local/bin/lsblk
  pvs: /sbin/pvs
history:
  enabled: true
  path: /tmp/lvmnav-test.db
debug_log: /tmp/lvmnav.log
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/lvmnav-test.db", cfg.History.Path)
	assert.Equal(t, "/tmp/lvmnav.log", cfg.DebugLog)

	tools := cfg.ScanTools()
	assert.Equal(t, "/usr/local/bin/lsblk", tools.Lsblk)
	assert.Equal(t, "/sbin/pvs", tools.PVs)
	// Unset tools keep their defaults.
	assert.Equal(t, "vgs", tools.VGs)
	assert.Equal(t, "df", tools.DF)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout_seconds: [nope"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
