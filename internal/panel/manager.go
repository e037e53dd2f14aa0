package panel

import (
	"github.com/google/uuid"

	"github.com/gridos/gridos/internal/layout"
)

// Options tunes the manager's split limits and pane minimums.
type Options struct {
	// MaxGroupsPerBranch caps the siblings one branch may hold.
	MaxGroupsPerBranch int
	// MaxEditorGroupsPerBranch is the tighter cap applied when the tab
	// being split out is an editor.
	MaxEditorGroupsPerBranch int
	// MinPaneSize is the smallest extent a leaf may take on either axis.
	MinPaneSize float64
	// Detector resolves drag positions to split directions. The zero
	// value uses the default thresholds.
	Detector layout.EdgeDetector
}

// DefaultOptions returns the standard split limits.
func DefaultOptions() Options {
	return Options{
		MaxGroupsPerBranch:       4,
		MaxEditorGroupsPerBranch: 3,
		MinPaneSize:              10,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxGroupsPerBranch <= 0 {
		o.MaxGroupsPerBranch = def.MaxGroupsPerBranch
	}
	if o.MaxEditorGroupsPerBranch <= 0 {
		o.MaxEditorGroupsPerBranch = def.MaxEditorGroupsPerBranch
	}
	if o.MinPaneSize <= 0 {
		o.MinPaneSize = def.MinPaneSize
	}
	return o
}

// LeafInfo is what hosts render: one leaf's rectangle plus the tab state
// of the group living there. Hosts consume these, never the tree.
type LeafInfo struct {
	GroupID     string
	Rect        layout.Rect
	Tabs        []Tab
	ActiveTabID string
	Focused     bool
}

// Manager owns a grid and the panel groups at its leaves. It is the
// single writer: every mutation runs to completion synchronously and
// failed operations leave both grid and groups untouched.
type Manager struct {
	grid           *layout.GridState
	groups         map[string]*Group
	focusedGroupID string
	opts           Options

	newID func() string
}

// NewManager creates a single-leaf grid holding one empty focused group.
func NewManager(width, height float64, opts Options) *Manager {
	m := &Manager{
		groups: make(map[string]*Group),
		opts:   opts.withDefaults(),
		newID:  uuid.NewString,
	}
	id := m.newID()
	m.groups[id] = &Group{ID: id, Focused: true}
	m.focusedGroupID = id
	m.grid = layout.NewGridState(id, width, height)
	if leaf := m.leafOf(id); leaf != nil {
		leaf.Min = m.opts.MinPaneSize
	}
	m.updatePercentages()
	return m
}

// Restore builds a manager from a previously persisted grid and group
// map. Every leaf must have a group and every group a leaf, otherwise the
// state is rejected.
func Restore(grid *layout.GridState, groups []*Group, opts Options) (*Manager, error) {
	m := &Manager{
		grid:   grid,
		groups: make(map[string]*Group, len(groups)),
		opts:   opts.withDefaults(),
		newID:  uuid.NewString,
	}
	for _, g := range groups {
		if g.ID == "" {
			return nil, ErrUnknownGroup
		}
		if g.ActiveTabID != "" && g.TabIndex(g.ActiveTabID) < 0 {
			g.ActiveTabID = ""
			if len(g.Tabs) > 0 {
				g.ActiveTabID = g.Tabs[0].ID
			}
		}
		m.groups[g.ID] = g
		if g.Focused && m.focusedGroupID == "" {
			m.focusedGroupID = g.ID
		}
	}

	leaves := layout.AllLeaves(grid.Root)
	if len(leaves) != len(m.groups) {
		return nil, ErrUnknownGroup
	}
	for _, leaf := range leaves {
		if _, ok := m.groups[leaf.GroupID]; !ok {
			return nil, ErrUnknownGroup
		}
		leaf.Min = m.opts.MinPaneSize
	}
	if m.focusedGroupID == "" {
		m.focusedGroupID = leaves[0].GroupID
	}
	for _, g := range m.groups {
		g.Focused = g.ID == m.focusedGroupID
	}
	m.updatePercentages()
	return m, nil
}

// Grid exposes the tree for persistence.
func (m *Manager) Grid() *layout.GridState { return m.grid }

func (m *Manager) leafOf(groupID string) *layout.Leaf {
	_, leaf, ok := layout.LeafLocation(m.grid.Root, groupID)
	if !ok {
		return nil
	}
	return leaf
}

// Groups returns the groups in leaf pre-order.
func (m *Manager) Groups() []*Group {
	leaves := layout.AllLeaves(m.grid.Root)
	out := make([]*Group, 0, len(leaves))
	for _, leaf := range leaves {
		if g, ok := m.groups[leaf.GroupID]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Group looks a group up by id.
func (m *Manager) Group(groupID string) (*Group, bool) {
	g, ok := m.groups[groupID]
	return g, ok
}

// FocusedGroupID returns the id of the focused group.
func (m *Manager) FocusedGroupID() string { return m.focusedGroupID }

// FocusGroup moves focus to a group.
func (m *Manager) FocusGroup(groupID string) error {
	next, ok := m.groups[groupID]
	if !ok {
		return ErrUnknownGroup
	}
	if cur, ok := m.groups[m.focusedGroupID]; ok {
		cur.Focused = false
	}
	next.Focused = true
	m.focusedGroupID = groupID
	return nil
}

// Leaves flattens the current layout for rendering.
func (m *Manager) Leaves() []LeafInfo {
	rects := m.grid.Rects()
	out := make([]LeafInfo, 0, len(rects))
	for _, lr := range rects {
		g, ok := m.groups[lr.GroupID]
		if !ok {
			continue
		}
		out = append(out, LeafInfo{
			GroupID:     g.ID,
			Rect:        lr.Rect,
			Tabs:        g.Tabs,
			ActiveTabID: g.ActiveTabID,
			Focused:     g.Focused,
		})
	}
	return out
}

// Layout resizes the whole grid to a new viewport.
func (m *Manager) Layout(width, height float64) {
	m.grid.SetViewport(width, height)
	m.updatePercentages()
}

// AddTab appends a tab to a group and makes it active.
func (m *Manager) AddTab(groupID string, tab Tab) error {
	g, ok := m.groups[groupID]
	if !ok {
		return ErrUnknownGroup
	}
	if g.TabIndex(tab.ID) >= 0 {
		return nil
	}
	g.Tabs = append(g.Tabs, tab)
	g.ActiveTabID = tab.ID
	return nil
}

// SelectTab makes a tab the group's active tab.
func (m *Manager) SelectTab(groupID, tabID string) error {
	g, ok := m.groups[groupID]
	if !ok {
		return ErrUnknownGroup
	}
	if g.TabIndex(tabID) < 0 {
		return ErrUnknownTab
	}
	g.ActiveTabID = tabID
	return nil
}

// CloseTab removes a tab from a group. Closing the active tab activates
// its right neighbor, or the left one when it was last.
func (m *Manager) CloseTab(groupID, tabID string) error {
	g, ok := m.groups[groupID]
	if !ok {
		return ErrUnknownGroup
	}
	if _, ok := g.removeTab(tabID); !ok {
		return ErrUnknownTab
	}
	return nil
}

// MoveTab transfers a tab between groups and makes it active at the
// target. Moving a tab the target already holds is a no-op.
func (m *Manager) MoveTab(tabID, sourceGroupID, targetGroupID string) error {
	src, ok := m.groups[sourceGroupID]
	if !ok {
		return ErrUnknownGroup
	}
	dst, ok := m.groups[targetGroupID]
	if !ok {
		return ErrUnknownGroup
	}
	if dst.TabIndex(tabID) >= 0 {
		return nil
	}
	tab, ok := src.removeTab(tabID)
	if !ok {
		return ErrUnknownTab
	}
	dst.Tabs = append(dst.Tabs, tab)
	dst.ActiveTabID = tab.ID
	return nil
}

// ReorderTabs moves the tab at from to position to within one group.
func (m *Manager) ReorderTabs(groupID string, from, to int) error {
	g, ok := m.groups[groupID]
	if !ok {
		return ErrUnknownGroup
	}
	if from < 0 || from >= len(g.Tabs) || to < 0 || to >= len(g.Tabs) {
		return ErrUnknownTab
	}
	if from == to {
		return nil
	}
	tab := g.Tabs[from]
	g.Tabs = append(g.Tabs[:from], g.Tabs[from+1:]...)
	g.Tabs = append(g.Tabs[:to], append([]Tab{tab}, g.Tabs[to:]...)...)
	return nil
}

// SplitPanel creates a new group next to groupID in the given direction
// and returns its id. When movingTabID is set, that tab is transferred
// from the source group and becomes the new group's sole active tab; the
// transfer and the tree mutation succeed or fail together.
func (m *Manager) SplitPanel(groupID string, dir layout.Direction, movingTabID string) (string, error) {
	src, ok := m.groups[groupID]
	if !ok {
		return "", ErrUnknownGroup
	}
	if dir == layout.DirectionNone {
		return "", layout.ErrInvalidLocation
	}

	var movingTab *Tab
	if movingTabID != "" {
		idx := src.TabIndex(movingTabID)
		if idx < 0 {
			return "", ErrUnknownTab
		}
		movingTab = &src.Tabs[idx]
	}

	loc, _, ok := layout.LeafLocation(m.grid.Root, groupID)
	if !ok {
		return "", ErrUnknownGroup
	}
	orientation := dir.Orientation()
	if err := m.checkSplitLimit(loc, orientation, movingTab); err != nil {
		return "", err
	}

	id := m.newID()
	leaf := &layout.Leaf{GroupID: id, Min: m.opts.MinPaneSize}
	if err := m.grid.AddLeaf(loc, leaf, orientation, dir.Before()); err != nil {
		return "", err
	}

	group := &Group{ID: id}
	if movingTab != nil {
		tab, _ := src.removeTab(movingTabID)
		group.Tabs = []Tab{tab}
		group.ActiveTabID = tab.ID
	}
	m.groups[id] = group
	m.FocusGroup(id)
	m.updatePercentages()
	return id, nil
}

// checkSplitLimit rejects a split when the branch that would receive the
// new leaf is already at its sibling cap.
func (m *Manager) checkSplitLimit(loc layout.Location, o layout.Orientation, movingTab *Tab) error {
	limit := m.opts.MaxGroupsPerBranch
	if movingTab != nil && movingTab.Kind == KindEditor {
		limit = m.opts.MaxEditorGroupsPerBranch
	}

	siblings := 1
	if !loc.IsRoot() {
		parentLoc, err := loc.Parent()
		if err != nil {
			return err
		}
		node, err := layout.FindNodeAt(m.grid.Root, parentLoc)
		if err != nil {
			return err
		}
		if branch, ok := node.(*layout.Branch); ok && branch.Orientation == o {
			siblings = len(branch.Children)
		}
	}
	if siblings+1 > limit {
		return ErrMaxSplitDepthExceeded
	}
	return nil
}

// ClosePanel removes a group and its leaf. The group's tabs are appended
// to the first remaining sibling group; if that sibling had no active tab
// the closed group's active tab becomes active there.
func (m *Manager) ClosePanel(groupID string) error {
	g, ok := m.groups[groupID]
	if !ok {
		return ErrUnknownGroup
	}
	loc, _, ok := layout.LeafLocation(m.grid.Root, groupID)
	if !ok {
		return ErrUnknownGroup
	}
	if loc.IsRoot() {
		return ErrCannotCloseLastPanel
	}

	adopterID, err := m.adopterFor(loc)
	if err != nil {
		return err
	}
	if _, err := m.grid.RemoveLeaf(loc); err != nil {
		return err
	}

	adopter := m.groups[adopterID]
	adopter.Tabs = append(adopter.Tabs, g.Tabs...)
	if adopter.ActiveTabID == "" && g.ActiveTabID != "" {
		adopter.ActiveTabID = g.ActiveTabID
	}
	delete(m.groups, groupID)
	if m.focusedGroupID == groupID {
		m.focusedGroupID = ""
		m.FocusGroup(adopterID)
	}
	m.updatePercentages()
	return nil
}

// adopterFor picks the group that inherits a closing leaf's tabs: the
// first leaf of the first remaining sibling.
func (m *Manager) adopterFor(loc layout.Location) (string, error) {
	parentLoc, err := loc.Parent()
	if err != nil {
		return "", err
	}
	node, err := layout.FindNodeAt(m.grid.Root, parentLoc)
	if err != nil {
		return "", err
	}
	branch, ok := node.(*layout.Branch)
	if !ok {
		return "", layout.ErrInvalidLocation
	}
	idx := loc[len(loc)-1]
	sibling := 0
	if idx == 0 {
		sibling = 1
	}
	if sibling >= len(branch.Children) {
		return "", layout.ErrInvalidLocation
	}
	leaves := layout.AllLeaves(branch.Children[sibling])
	if len(leaves) == 0 {
		return "", layout.ErrInvalidLocation
	}
	return leaves[0].GroupID, nil
}

// ResizePanel adjusts a group's leaf extent by delta; siblings absorb it.
func (m *Manager) ResizePanel(groupID string, delta float64) error {
	if _, ok := m.groups[groupID]; !ok {
		return ErrUnknownGroup
	}
	if err := m.grid.ResizeLeafBy(groupID, delta); err != nil {
		return err
	}
	m.updatePercentages()
	return nil
}

// updatePercentages records each group's share of the viewport area.
func (m *Manager) updatePercentages() {
	total := m.grid.Width * m.grid.Height
	for _, lr := range m.grid.Rects() {
		g, ok := m.groups[lr.GroupID]
		if !ok {
			continue
		}
		if total <= 0 {
			g.Percentage = 0
			continue
		}
		g.Percentage = lr.Rect.Width * lr.Rect.Height / total
	}
}
