package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/gridos/gridos/internal/config"
)

// withTempConfigHome points XDG at a throwaway directory and returns the
// config file path inside it.
func withTempConfigHome(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path, err := config.GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg.Layout.MaxGroupsPerBranch != 4 {
		t.Errorf("MaxGroupsPerBranch = %d, want 4", cfg.Layout.MaxGroupsPerBranch)
	}
	if cfg.Layout.MaxEditorGroupsPerBranch != 3 {
		t.Errorf("MaxEditorGroupsPerBranch = %d, want 3", cfg.Layout.MaxEditorGroupsPerBranch)
	}
	if cfg.Agents.Default != "claude" {
		t.Errorf("default agent = %q, want claude", cfg.Agents.Default)
	}
	if !cfg.Layout.Persist {
		t.Error("persistence should default to on")
	}
	if cfg.FlapWindow() != 500*time.Millisecond {
		t.Errorf("FlapWindow = %v, want 500ms", cfg.FlapWindow())
	}
}

func TestPartialTOMLKeepsDefaults(t *testing.T) {
	path := withTempConfigHome(t)
	raw := `
[layout]
max_groups_per_branch = 6

[agents]
default = "aider"

[agents.custom.mytool]
command = "mytool"
args = ["--interactive"]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if cfg.Layout.MaxGroupsPerBranch != 6 {
		t.Errorf("MaxGroupsPerBranch = %d, want 6", cfg.Layout.MaxGroupsPerBranch)
	}
	// Untouched fields keep their defaults.
	if cfg.Layout.MinPaneSize != 10 {
		t.Errorf("MinPaneSize = %d, want default 10", cfg.Layout.MinPaneSize)
	}
	if cfg.Agents.Default != "aider" {
		t.Errorf("default agent = %q, want aider", cfg.Agents.Default)
	}
	custom, ok := cfg.Agents.Custom["mytool"]
	if !ok || custom.Command != "mytool" || len(custom.Args) != 1 {
		t.Errorf("custom agent = %+v, want mytool --interactive", custom)
	}
}

func TestLoadUserConfigClampsBadValues(t *testing.T) {
	path := withTempConfigHome(t)
	raw := `
[layout]
edge_fraction = 0.9
split_fraction = -1.0
max_groups_per_branch = 1
max_editor_groups_per_branch = 0
min_pane_size = -5
flap_window_ms = -100

[agents]
default = ""
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	def := config.DefaultConfig()

	if cfg.Layout.EdgeFraction != def.Layout.EdgeFraction {
		t.Errorf("EdgeFraction = %v, want default", cfg.Layout.EdgeFraction)
	}
	if cfg.Layout.SplitFraction != def.Layout.SplitFraction {
		t.Errorf("SplitFraction = %v, want default", cfg.Layout.SplitFraction)
	}
	if cfg.Layout.MaxGroupsPerBranch != def.Layout.MaxGroupsPerBranch {
		t.Errorf("MaxGroupsPerBranch = %d, want default", cfg.Layout.MaxGroupsPerBranch)
	}
	if cfg.Layout.MaxEditorGroupsPerBranch != def.Layout.MaxEditorGroupsPerBranch {
		t.Errorf("MaxEditorGroupsPerBranch = %d, want default", cfg.Layout.MaxEditorGroupsPerBranch)
	}
	if cfg.Layout.MinPaneSize != def.Layout.MinPaneSize {
		t.Errorf("MinPaneSize = %d, want default", cfg.Layout.MinPaneSize)
	}
	if cfg.Layout.FlapWindowMS != def.Layout.FlapWindowMS {
		t.Errorf("FlapWindowMS = %d, want default", cfg.Layout.FlapWindowMS)
	}
	if cfg.Agents.Default != def.Agents.Default {
		t.Errorf("default agent = %q, want default", cfg.Agents.Default)
	}
}

func TestLoadUserConfigCreatesDefaultFile(t *testing.T) {
	path := withTempConfigHome(t)

	cfg, err := config.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if cfg.Layout.MaxGroupsPerBranch != 4 {
		t.Errorf("fresh config MaxGroupsPerBranch = %d, want 4", cfg.Layout.MaxGroupsPerBranch)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file was not created: %v", err)
	}
}

func TestLoadUserConfigReadsFile(t *testing.T) {
	path := withTempConfigHome(t)
	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"dracula\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if cfg.Appearance.Theme != "dracula" {
		t.Errorf("theme = %q, want dracula", cfg.Appearance.Theme)
	}
}
