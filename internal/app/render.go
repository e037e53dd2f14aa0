package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gridos/gridos/internal/config"
	"github.com/gridos/gridos/internal/layout"
	"github.com/gridos/gridos/internal/panel"
	"github.com/gridos/gridos/internal/theme"
)

// View renders the panel grid, the status bar and the help overlay.
func (s *Shell) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true

	if !s.ready {
		view.SetContent("")
		return view
	}

	var content string
	if s.helpVisible {
		content = s.renderHelp()
	} else {
		content = s.renderGrid()
	}
	if s.cfg.Appearance.ShowStatusBar {
		content += "\n" + s.renderStatusBar()
	}
	view.SetContent(lipgloss.Sprint(content))
	return view
}

// renderGrid composes one frame from the leaf rectangles and refreshes
// the hit-testing cache.
func (s *Shell) renderGrid() string {
	s.leaves = s.leaves[:0]

	canvas := lipgloss.NewCanvas(s.width, s.gridHeight())
	var layers []*lipgloss.Layer
	for _, info := range s.manager.Leaves() {
		r := info.Rect
		x := int(r.X + 0.5)
		y := int(r.Y + 0.5)
		w := int(r.X+r.Width+0.5) - x
		h := int(r.Y+r.Height+0.5) - y
		leaf := renderedLeaf{info: info, x: x, y: y, w: w, h: h}
		s.leaves = append(s.leaves, leaf)
		layers = append(layers, lipgloss.NewLayer(s.renderLeafBox(leaf)).
			X(x).Y(y).ID(info.GroupID))
	}
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}

// renderLeafBox draws one panel: border, tab bar, active pane content.
func (s *Shell) renderLeafBox(leaf renderedLeaf) string {
	if leaf.w < 4 || leaf.h < 3 {
		return strings.TrimSuffix(strings.Repeat(strings.Repeat("░", max(leaf.w, 1))+"\n", max(leaf.h, 1)), "\n")
	}

	borderColor := theme.BorderUnfocused()
	if leaf.info.Focused {
		borderColor = theme.BorderFocused()
	}
	if s.drag != nil && s.dragDir != layout.DirectionNone &&
		s.drag.TargetGroupID() == leaf.info.GroupID {
		borderColor = theme.BorderSplitPreview()
	}

	innerW := leaf.w - 2
	innerH := leaf.h - 2

	tabBar := s.renderTabBar(leaf.info, innerW)
	body := s.renderPaneBody(leaf.info, innerW, innerH-1)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(leaf.w).
		Height(leaf.h).
		Render(tabBar + "\n" + body)
}

// tabLabel is the plain text of one tab bar entry. Mouse hit-testing
// relies on its width matching the rendered cell, so styles applied on
// top of it must not change its width.
func tabLabel(t panel.Tab) string {
	label := " " + t.Title
	if t.Kind == panel.KindAgent {
		label = " ✦ " + t.Title
	}
	if t.Dirty {
		label += " ●"
	}
	return label + " "
}

func (s *Shell) renderTabBar(info panel.LeafInfo, width int) string {
	var b strings.Builder
	for _, t := range info.Tabs {
		label := tabLabel(t)
		style := lipgloss.NewStyle().Foreground(theme.TabInactiveFg())
		switch {
		case t.ID == info.ActiveTabID:
			style = lipgloss.NewStyle().
				Foreground(theme.TabActiveFg()).
				Background(theme.TabActiveBg())
		case t.Dirty:
			style = lipgloss.NewStyle().Foreground(theme.TabDirty())
		}
		if t.Kind == panel.KindAgent && t.ID != info.ActiveTabID {
			style = style.Foreground(theme.AgentBadge())
		}
		b.WriteString(style.Render(label))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func (s *Shell) renderPaneBody(info panel.LeafInfo, width, height int) string {
	tab := activeTab(info)
	if tab == nil {
		return ""
	}

	p := s.ensurePane(*tab, info.GroupID)
	if p == nil {
		switch tab.Kind {
		case panel.KindEditor:
			return " (editor)"
		case panel.KindFileTree:
			return " (file tree)"
		}
		return " (no process)"
	}

	lines := p.Tail(height)
	for i, line := range lines {
		lines[i] = truncLine(line, width)
	}
	body := strings.Join(lines, "\n")
	if !p.Running() {
		if body != "" {
			body += "\n"
		}
		body += "[exited]"
	}
	return body
}

func activeTab(info panel.LeafInfo) *panel.Tab {
	for i := range info.Tabs {
		if info.Tabs[i].ID == info.ActiveTabID {
			return &info.Tabs[i]
		}
	}
	return nil
}

// truncLine clips a plain text line to at most width cells.
func truncLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width])
}

func (s *Shell) renderStatusBar() string {
	left := fmt.Sprintf(" gridos │ %d panes", len(s.manager.Leaves()))
	if g, ok := s.manager.Group(s.manager.FocusedGroupID()); ok {
		if t := g.ActiveTab(); t != nil {
			left += " │ " + t.Title
		}
	}

	var right string
	switch {
	case s.notice != "":
		right = s.notice + " "
	case s.stats.valid:
		right = fmt.Sprintf("CPU %3.0f%%  MEM %3.0f%% ", s.stats.cpuPercent, s.stats.memPercent)
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right

	style := lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Foreground(theme.StatusBarFg()).
		MaxWidth(s.width)
	if s.notice != "" {
		style = style.Foreground(theme.StatusBarAccent())
	}
	return style.Render(bar)
}

// renderHelp draws the keybinding overlay centered in the grid area.
func (s *Shell) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKey()).Width(18)
	textStyle := lipgloss.NewStyle().Foreground(theme.HelpText())
	titleStyle := lipgloss.NewStyle().Foreground(theme.HelpTitle()).Bold(true)

	var b strings.Builder
	for i, section := range config.GetKeybindings() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(section.Title) + "\n")
		for _, kb := range section.Bindings {
			b.WriteString(keyStyle.Render(kb.Key) + textStyle.Render(kb.Description) + "\n")
		}
	}
	b.WriteString("\n" + textStyle.Render("esc to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(s.width, s.gridHeight(), lipgloss.Center, lipgloss.Center, box)
}
