// Package theme provides color themes and styling for the gridos shell.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup. An empty name disables theming
// and falls back to standard terminal colors.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()
	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, nil when theming is
// disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Pane border colors.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#808090")
	}
	return t.BrightBlack
}

// BorderSplitPreview highlights the pane edge a drag would split toward.
func BorderSplitPreview() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// Tab bar colors.
func TabActiveFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Black
}

func TabActiveBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cdcd")
	}
	return t.Cyan
}

func TabInactiveFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#a0a0a8")
	}
	return t.White
}

func TabDirty() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

// Status bar colors.
func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func StatusBarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

// Help overlay colors.
func HelpTitle() color.Color {
	return lipgloss.Color("11")
}

func HelpKey() color.Color {
	return lipgloss.Color("5")
}

func HelpText() color.Color {
	return lipgloss.Color("7")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// Agent pane accent, used for the agent name badge in the tab bar.
func AgentBadge() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd00cd")
	}
	return t.Purple
}
