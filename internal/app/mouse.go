package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gridos/gridos/internal/layout"
)

// handleMouseClick focuses panes, selects tabs, and arms tab drags and
// sash drags.
func (s *Shell) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if !s.ready {
		return s, nil
	}
	if s.helpVisible {
		s.helpVisible = false
		return s, nil
	}
	if mouse.Button != tea.MouseLeft {
		return s, nil
	}

	leaf, ok := s.leafAt(mouse.X, mouse.Y)
	if !ok {
		return s, nil
	}

	// Tab bar sits on the first row inside the top border.
	if mouse.Y == leaf.y+1 && mouse.X > leaf.x && mouse.X < leaf.x+leaf.w-1 {
		if tabID, ok := s.tabAt(leaf, mouse.X); ok {
			_ = s.manager.FocusGroup(leaf.info.GroupID)
			if err := s.manager.SelectTab(leaf.info.GroupID, tabID); err == nil {
				s.persist()
			}
			if ds, err := s.manager.StartDrag(leaf.info.GroupID, tabID); err == nil {
				s.drag = ds
				s.dragDir = layout.DirectionNone
			}
			return s, nil
		}
	}

	if sash := s.sashAt(leaf, mouse.X, mouse.Y); sash != nil {
		s.sash = sash
		return s, nil
	}

	if err := s.manager.FocusGroup(leaf.info.GroupID); err == nil {
		s.persist()
	}
	return s, nil
}

// handleMouseMotion feeds tab drags to the edge detector and moves sash
// drags.
func (s *Shell) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	switch {
	case s.drag != nil:
		s.dragDir = s.drag.Sample(float64(mouse.X), float64(mouse.Y))

	case s.sash != nil:
		delta := mouse.X - s.sash.lastX
		if s.sash.orientation == layout.Vertical {
			delta = mouse.Y - s.sash.lastY
		}
		if delta != 0 {
			if err := s.manager.ResizePanel(s.sash.groupID, float64(delta)); err == nil {
				s.sash.lastX = mouse.X
				s.sash.lastY = mouse.Y
				s.applyPaneGeometry()
			}
		}
	}
	return s, nil
}

// handleMouseRelease commits the drag in progress.
func (s *Shell) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	switch {
	case s.drag != nil:
		if err := s.drag.EndDrag(); err != nil {
			s.notify(err.Error())
		}
		s.drag = nil
		s.dragDir = layout.DirectionNone
		s.persist()
		s.applyPaneGeometry()

	case s.sash != nil:
		s.sash = nil
		s.persist()
	}
	return s, nil
}

// leafAt returns the rendered leaf containing a cell.
func (s *Shell) leafAt(x, y int) (renderedLeaf, bool) {
	for _, leaf := range s.leaves {
		if x >= leaf.x && x < leaf.x+leaf.w && y >= leaf.y && y < leaf.y+leaf.h {
			return leaf, true
		}
	}
	return renderedLeaf{}, false
}

// tabAt maps a tab bar column to the tab rendered there.
func (s *Shell) tabAt(leaf renderedLeaf, x int) (string, bool) {
	pos := leaf.x + 1
	for _, t := range leaf.info.Tabs {
		pos += lipgloss.Width(tabLabel(t))
		if x < pos {
			return t.ID, true
		}
	}
	return "", false
}

// sashAt arms a border drag when the click lands on the edge a pane
// shares with its next sibling.
func (s *Shell) sashAt(leaf renderedLeaf, x, y int) *sashDrag {
	o, ok := s.manager.ParentOrientation(leaf.info.GroupID)
	if !ok {
		return nil
	}
	onRight := x == leaf.x+leaf.w-1 && leaf.x+leaf.w < s.width
	onBottom := y == leaf.y+leaf.h-1 && leaf.y+leaf.h < s.gridHeight()

	switch {
	case o == layout.Horizontal && onRight:
		return &sashDrag{groupID: leaf.info.GroupID, orientation: o, lastX: x, lastY: y}
	case o == layout.Vertical && onBottom:
		return &sashDrag{groupID: leaf.info.GroupID, orientation: o, lastX: x, lastY: y}
	}
	return nil
}
