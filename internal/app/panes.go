package app

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/gridos/gridos/internal/agent"
	"github.com/gridos/gridos/internal/layout"
	"github.com/gridos/gridos/internal/panel"
)

// paneInner converts a leaf rectangle to the PTY size of the pane inside
// it: two border columns/rows plus the tab bar line.
func paneInner(w, h int) (int, int) {
	return max(w-2, 1), max(h-3, 1)
}

// openAgentTab adds an agent tab to a group and launches its process
// sized to the group's current rectangle.
func (s *Shell) openAgentTab(groupID string, a agent.Agent) {
	if !agent.Available(a) {
		s.notify(fmt.Sprintf("%s: command %q not found", a.Name, a.Command))
		return
	}
	tab := panel.Tab{
		ID:    uuid.NewString(),
		Kind:  panel.KindAgent,
		Title: a.Name,
		Data:  agentTabData(a.Name),
	}
	if err := s.manager.AddTab(groupID, tab); err != nil {
		s.notify(err.Error())
		return
	}
	s.startPane(groupID, tab, a)
	s.persist()
}

// openTerminalTab adds a shell tab to a group.
func (s *Shell) openTerminalTab(groupID string) {
	a := shellAgent()
	tab := panel.Tab{
		ID:    uuid.NewString(),
		Kind:  panel.KindTerminal,
		Title: a.Name,
	}
	if err := s.manager.AddTab(groupID, tab); err != nil {
		s.notify(err.Error())
		return
	}
	s.startPane(groupID, tab, a)
	s.persist()
}

func (s *Shell) startPane(groupID string, tab panel.Tab, a agent.Agent) {
	w, h := s.groupInnerSize(groupID)
	p, err := agent.NewPane(tab.ID, a, w, h, s.exitChan)
	if err != nil {
		s.notify(err.Error())
		log.Printf("warning: start pane: %v", err)
		return
	}
	s.panes[tab.ID] = p
	guard := &layout.FlapGuard{Window: s.cfg.FlapWindow()}
	guard.ShouldApplyResize(w, h, s.now())
	s.guards[tab.ID] = guard
}

// ensurePane lazily launches the process behind a restored tab the first
// time it becomes visible.
func (s *Shell) ensurePane(tab panel.Tab, groupID string) *agent.Pane {
	if p, ok := s.panes[tab.ID]; ok {
		return p
	}
	var a agent.Agent
	switch tab.Kind {
	case panel.KindAgent:
		name := agentNameFromData(tab.Data)
		found, ok := s.registry.Get(name)
		if !ok {
			found = s.registry.Default()
		}
		a = found
	case panel.KindTerminal:
		a = shellAgent()
	default:
		// Editor and file tree tabs render from their payload and have
		// no process.
		return nil
	}
	if !agent.Available(a) {
		return nil
	}
	s.startPane(groupID, tab, a)
	return s.panes[tab.ID]
}

// closeTab closes a tab and its pane.
func (s *Shell) closeTab(groupID, tabID string) {
	if err := s.manager.CloseTab(groupID, tabID); err != nil {
		s.notify(err.Error())
		return
	}
	if p, ok := s.panes[tabID]; ok {
		p.Close()
		delete(s.panes, tabID)
		delete(s.guards, tabID)
	}
	s.persist()
	s.applyPaneGeometry()
}

// closePanel closes the focused panel; its tabs move to a sibling, so
// their panes keep running.
func (s *Shell) closePanel(groupID string) {
	if err := s.manager.ClosePanel(groupID); err != nil {
		s.notify(err.Error())
		return
	}
	s.persist()
	s.applyPaneGeometry()
}

// splitFocused splits the focused panel in a direction and opens the
// default agent in the new pane.
func (s *Shell) splitFocused(dir layout.Direction) {
	id, err := s.manager.SplitPanel(s.manager.FocusedGroupID(), dir, "")
	if err != nil {
		s.notify(err.Error())
		return
	}
	s.openAgentTab(id, s.registry.Default())
	s.persist()
	s.applyPaneGeometry()
}

// groupInnerSize returns the PTY size for panes in a group, derived from
// the group's grid rectangle.
func (s *Shell) groupInnerSize(groupID string) (int, int) {
	for _, lr := range s.manager.Grid().Rects() {
		if lr.GroupID == groupID {
			return paneInner(int(lr.Rect.Width+0.5), int(lr.Rect.Height+0.5))
		}
	}
	return paneInner(s.width, s.gridHeight())
}

// applyPaneGeometry pushes the current leaf rectangles down to the PTYs.
// Every resize goes through the tab's flap guard so PTY size negotiation
// loops cannot make two panes fight forever.
func (s *Shell) applyPaneGeometry() {
	if !s.ready {
		return
	}
	now := s.now()
	for _, leaf := range s.manager.Leaves() {
		w, h := paneInner(int(leaf.Rect.Width+0.5), int(leaf.Rect.Height+0.5))
		for _, tab := range leaf.Tabs {
			p, ok := s.panes[tab.ID]
			if !ok {
				continue
			}
			guard := s.guards[tab.ID]
			if guard != nil && !guard.ShouldApplyResize(w, h, now) {
				continue
			}
			if err := p.Resize(w, h); err != nil {
				log.Printf("warning: resize pane %s: %v", tab.ID, err)
			}
		}
	}
}

// focusedPane returns the pane behind the focused group's active tab.
func (s *Shell) focusedPane() *agent.Pane {
	g, ok := s.manager.Group(s.manager.FocusedGroupID())
	if !ok {
		return nil
	}
	tab := g.ActiveTab()
	if tab == nil {
		return nil
	}
	return s.ensurePane(*tab, g.ID)
}
