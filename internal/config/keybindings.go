package config

// Keybinding is a single keybinding entry for help output.
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection groups related keybindings.
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns the keybinding sections shown by the help
// overlay and the keybinds CLI command. Bindings use the Alt modifier so
// plain keystrokes pass through to the pane's PTY untouched.
func GetKeybindings() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "PANES",
			Bindings: []Keybinding{
				{"Alt+L", "Split right"},
				{"Alt+H", "Split left"},
				{"Alt+J", "Split down"},
				{"Alt+K", "Split up"},
				{"Alt+X", "Close pane"},
				{"Alt+1-9", "Focus pane"},
				{"Alt+Arrows", "Resize pane"},
			},
		},
		{
			Title: "TABS",
			Bindings: []Keybinding{
				{"Alt+A", "New agent tab"},
				{"Alt+N", "New terminal tab"},
				{"Alt+E", "Next tab"},
				{"Alt+Q", "Previous tab"},
				{"Alt+W", "Close tab"},
			},
		},
		{
			Title: "SESSION",
			Bindings: []Keybinding{
				{"Alt+?", "Toggle help"},
				{"Ctrl+Q", "Quit"},
			},
		},
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click", "Focus pane / select tab"},
				{"Drag sash", "Resize panes"},
				{"Drag tab to edge", "Split pane"},
				{"Drag tab to center", "Move tab"},
			},
		},
	}
}
