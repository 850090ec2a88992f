// Package config loads the optional YAML configuration. Everything has
// a sensible default; a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"lvmnav/internal/scan"
)

type Config struct {
	// TimeoutSeconds bounds each external command invocation.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Tools overrides the external command names, for hosts that keep
	// the LVM utilities outside PATH.
	Tools Tools `yaml:"tools,omitempty"`

	// History controls the optional SQLite snapshot log. Disabled by
	// default: the default invocation writes no files.
	History History `yaml:"history,omitempty"`

	// DebugLog, when set, receives structured scan diagnostics. The
	// TUI owns the terminal, so diagnostics never go to stderr.
	DebugLog string `yaml:"debug_log,omitempty"`
}

type Tools struct {
	Lsblk  string `yaml:"lsblk,omitempty"`
	Fdisk  string `yaml:"fdisk,omitempty"`
	Parted string `yaml:"parted,omitempty"`
	DF     string `yaml:"df,omitempty"`
	PVs    string `yaml:"pvs,omitempty"`
	VGs    string `yaml:"vgs,omitempty"`
	LVs    string `yaml:"lvs,omitempty"`
}

type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

var defaultConfig = Config{
	TimeoutSeconds: 10,
}

// Load reads the configuration from path, or from the default
// locations when path is empty. A missing or unreadable file yields
// the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		candidates := []string{
			"/etc/lvmnav/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/lvmnav/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		}
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultConfig.TimeoutSeconds
	}
	return &cfg, nil
}

// Timeout returns the per-command timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScanTools merges the configured overrides onto the default tool set.
func (c *Config) ScanTools() scan.Tools {
	t := scan.DefaultTools()
	if c.Tools.Lsblk != "" {
		t.Lsblk = c.Tools.Lsblk
	}
	if c.Tools.Fdisk != "" {
		t.Fdisk = c.Tools.Fdisk
	}
	if c.Tools.Parted != "" {
		t.Parted = c.Tools.Parted
	}
	if c.Tools.DF != "" {
		t.DF = c.Tools.DF
	}
	if c.Tools.PVs != "" {
		t.PVs = c.Tools.PVs
	}
	if c.Tools.VGs != "" {
		t.VGs = c.Tools.VGs
	}
	if c.Tools.LVs != "" {
		t.LVs = c.Tools.LVs
	}
	return t
}
