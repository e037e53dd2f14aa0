// Package config handles user configuration loading and validation.
// Configuration lives in a TOML file under the XDG config directory and
// is created with defaults on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// AppearanceConfig controls theming.
type AppearanceConfig struct {
	// Theme is a bubbletint theme id. Empty disables theming.
	Theme string `toml:"theme"`
	// ShowStatusBar toggles the CPU/memory footer.
	ShowStatusBar bool `toml:"show_status_bar"`
}

// LayoutConfig tunes the panel grid engine.
type LayoutConfig struct {
	// EdgeFraction is the border share of a pane that counts as a split
	// hitzone during drags (0 uses the built-in default).
	EdgeFraction float64 `toml:"edge_fraction"`
	// SplitFraction is the generous hitzone share on the preferred axis.
	SplitFraction float64 `toml:"split_fraction"`
	// MaxGroupsPerBranch caps how many panes one split row/column holds.
	MaxGroupsPerBranch int `toml:"max_groups_per_branch"`
	// MaxEditorGroupsPerBranch is the tighter cap for editor panes.
	MaxEditorGroupsPerBranch int `toml:"max_editor_groups_per_branch"`
	// MinPaneSize is the smallest pane extent in cells.
	MinPaneSize int `toml:"min_pane_size"`
	// FlapWindowMS is how long (in milliseconds) a bounced PTY size pair
	// stays blocked.
	FlapWindowMS int `toml:"flap_window_ms"`
	// Persist toggles saving the layout between sessions.
	Persist bool `toml:"persist"`
}

// AgentConfig describes how to launch one coding agent CLI.
type AgentConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Env     []string `toml:"env"`
}

// AgentsConfig selects and extends the built-in agent registry.
type AgentsConfig struct {
	// Default is the agent launched for a new agent pane.
	Default string `toml:"default"`
	// Custom adds or overrides agents by name.
	Custom map[string]AgentConfig `toml:"custom"`
}

// Config is the full user configuration.
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Layout     LayoutConfig     `toml:"layout"`
	Agents     AgentsConfig     `toml:"agents"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			Theme:         "",
			ShowStatusBar: true,
		},
		Layout: LayoutConfig{
			EdgeFraction:             0.10,
			SplitFraction:            1.0 / 3.0,
			MaxGroupsPerBranch:       4,
			MaxEditorGroupsPerBranch: 3,
			MinPaneSize:              10,
			FlapWindowMS:             500,
			Persist:                  true,
		},
		Agents: AgentsConfig{
			Default: "claude",
		},
	}
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("gridos", "gridos.toml"))
}

// LoadUserConfig reads the user configuration, creating a default config
// file on first run. A missing or partial file falls back to defaults
// field by field.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not determine config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := WriteDefaultConfig(path); writeErr != nil {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("could not parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// WriteDefaultConfig writes a commented default config file to path.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# gridos configuration file\n")
	sb.WriteString("# Location: " + path + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [agents.custom.<name>] entries add or override agent CLIs, e.g.\n")
	sb.WriteString("#   [agents.custom.mytool]\n")
	sb.WriteString("#   command = \"mytool\"\n")
	sb.WriteString("#   args = [\"--interactive\"]\n\n")

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	sb.Write(data)
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// normalize clamps out-of-range values back to their defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Layout.EdgeFraction <= 0 || c.Layout.EdgeFraction >= 0.5 {
		c.Layout.EdgeFraction = def.Layout.EdgeFraction
	}
	if c.Layout.SplitFraction <= 0 || c.Layout.SplitFraction >= 0.5 {
		c.Layout.SplitFraction = def.Layout.SplitFraction
	}
	if c.Layout.MaxGroupsPerBranch < 2 {
		c.Layout.MaxGroupsPerBranch = def.Layout.MaxGroupsPerBranch
	}
	if c.Layout.MaxEditorGroupsPerBranch < 2 {
		c.Layout.MaxEditorGroupsPerBranch = def.Layout.MaxEditorGroupsPerBranch
	}
	if c.Layout.MinPaneSize < 1 {
		c.Layout.MinPaneSize = def.Layout.MinPaneSize
	}
	if c.Layout.FlapWindowMS < 0 {
		c.Layout.FlapWindowMS = def.Layout.FlapWindowMS
	}
	if c.Agents.Default == "" {
		c.Agents.Default = def.Agents.Default
	}
}

// FlapWindow returns the configured flap guard window.
func (c *Config) FlapWindow() time.Duration {
	return time.Duration(c.Layout.FlapWindowMS) * time.Millisecond
}
