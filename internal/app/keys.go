package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/gridos/gridos/internal/layout"
)

// resizeStep is how many cells one resize keystroke moves a border.
const resizeStep = 2

// handleKey routes the global shortcuts and forwards everything else to
// the focused pane's PTY.
func (s *Shell) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if !s.ready {
		if key == "ctrl+q" {
			return s, tea.Quit
		}
		return s, nil
	}

	if s.helpVisible {
		switch key {
		case "esc", "q", "alt+?":
			s.helpVisible = false
		}
		return s, nil
	}

	switch key {
	case "ctrl+q":
		return s, tea.Quit
	case "alt+l":
		s.splitFocused(layout.DirectionRight)
	case "alt+h":
		s.splitFocused(layout.DirectionLeft)
	case "alt+j":
		s.splitFocused(layout.DirectionDown)
	case "alt+k":
		s.splitFocused(layout.DirectionUp)
	case "alt+x":
		s.closePanel(s.manager.FocusedGroupID())
	case "alt+a":
		s.openAgentTab(s.manager.FocusedGroupID(), s.registry.Default())
	case "alt+n":
		s.openTerminalTab(s.manager.FocusedGroupID())
	case "alt+e":
		s.cycleTab(1)
	case "alt+q":
		s.cycleTab(-1)
	case "alt+w":
		if g, ok := s.manager.Group(s.manager.FocusedGroupID()); ok && g.ActiveTabID != "" {
			s.closeTab(g.ID, g.ActiveTabID)
		}
	case "alt+up":
		s.resizeFocused(layout.Vertical, -resizeStep)
	case "alt+down":
		s.resizeFocused(layout.Vertical, resizeStep)
	case "alt+left":
		s.resizeFocused(layout.Horizontal, -resizeStep)
	case "alt+right":
		s.resizeFocused(layout.Horizontal, resizeStep)
	case "alt+?":
		s.helpVisible = true
	default:
		if n, ok := altDigit(key); ok {
			s.focusLeaf(n - 1)
			return s, nil
		}
		s.forwardKey(msg)
	}
	return s, nil
}

// altDigit parses "alt+1" through "alt+9".
func altDigit(key string) (int, bool) {
	if len(key) != 5 || key[:4] != "alt+" || key[4] < '1' || key[4] > '9' {
		return 0, false
	}
	return int(key[4] - '0'), true
}

// focusLeaf focuses the nth panel in layout order.
func (s *Shell) focusLeaf(n int) {
	leaves := s.manager.Leaves()
	if n < 0 || n >= len(leaves) {
		return
	}
	if err := s.manager.FocusGroup(leaves[n].GroupID); err == nil {
		s.persist()
	}
}

// cycleTab activates the next or previous tab of the focused group.
func (s *Shell) cycleTab(delta int) {
	g, ok := s.manager.Group(s.manager.FocusedGroupID())
	if !ok || len(g.Tabs) == 0 {
		return
	}
	idx := g.TabIndex(g.ActiveTabID)
	if idx < 0 {
		idx = 0
	}
	idx = (idx + delta + len(g.Tabs)) % len(g.Tabs)
	if err := s.manager.SelectTab(g.ID, g.Tabs[idx].ID); err == nil {
		s.persist()
	}
}

// resizeFocused grows or shrinks the focused panel by whole cells along
// one axis. The delta only applies when the panel's parent split runs on
// that axis.
func (s *Shell) resizeFocused(axis layout.Orientation, delta float64) {
	id := s.manager.FocusedGroupID()
	o, ok := s.manager.ParentOrientation(id)
	if !ok || o != axis {
		return
	}
	if err := s.manager.ResizePanel(id, delta); err != nil {
		return
	}
	s.persist()
	s.applyPaneGeometry()
}

// forwardKey sends a keystroke to the focused pane as raw PTY bytes.
func (s *Shell) forwardKey(msg tea.KeyPressMsg) {
	p := s.focusedPane()
	if p == nil {
		return
	}
	raw := keyToBytes(msg)
	if len(raw) == 0 {
		return
	}
	if err := p.Write(raw); err != nil {
		s.notify(err.Error())
	}
}

// keyToBytes converts a key press to the raw bytes a terminal would
// produce for it.
func keyToBytes(msg tea.KeyPressMsg) []byte {
	key := msg.Key()

	if key.Mod&tea.ModCtrl != 0 {
		switch key.Code {
		case tea.KeySpace:
			return []byte{0x00}
		case tea.KeyBackspace:
			return []byte{0x08}
		case tea.KeyEnter:
			return []byte{0x0a}
		}
		if key.Code >= 'a' && key.Code <= 'z' {
			return []byte{byte(key.Code - 'a' + 1)}
		}
		if key.Code >= 'A' && key.Code <= 'Z' {
			return []byte{byte(key.Code - 'A' + 1)}
		}
		switch key.Code {
		case '[':
			return []byte{0x1b}
		case '\\':
			return []byte{0x1c}
		case ']':
			return []byte{0x1d}
		case '^':
			return []byte{0x1e}
		case '_':
			return []byte{0x1f}
		}
	}

	if key.Mod&tea.ModAlt != 0 {
		// Alt sends ESC followed by the plain character.
		if key.Code == tea.KeyBackspace {
			return []byte{0x1b, 0x7f}
		}
		if key.Text != "" && len(key.Text) == 1 {
			return []byte{0x1b, key.Text[0]}
		}
		if key.Code >= 0x20 && key.Code <= 0x7e {
			return []byte{0x1b, byte(key.Code)}
		}
	}

	if key.Mod&tea.ModShift != 0 && key.Code == tea.KeyTab {
		return []byte{0x1b, '[', 'Z'}
	}

	switch key.Code {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyEscape:
		return []byte{0x1b}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyDelete:
		return []byte{0x1b, '[', '3', '~'}
	case tea.KeyInsert:
		return []byte{0x1b, '[', '2', '~'}
	case tea.KeyPgUp:
		return []byte{0x1b, '[', '5', '~'}
	case tea.KeyPgDown:
		return []byte{0x1b, '[', '6', '~'}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyHome:
		return []byte{0x1b, '[', 'H'}
	case tea.KeyEnd:
		return []byte{0x1b, '[', 'F'}
	}

	// Printable characters, including Unicode and shifted keys.
	if key.Text != "" {
		return []byte(key.Text)
	}
	if key.Code >= 0x20 && key.Code <= 0x7e {
		return []byte{byte(key.Code)}
	}
	return nil
}
