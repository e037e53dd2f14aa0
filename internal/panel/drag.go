package panel

import "github.com/gridos/gridos/internal/layout"

// DragSession tracks one tab drag from pickup to drop. Pointer samples
// feed the edge detector; the last sampled target and direction decide at
// drop time between splitting a panel and moving the tab.
type DragSession struct {
	manager  *Manager
	detector layout.EdgeDetector

	tabID         string
	sourceGroupID string

	targetGroupID string
	direction     layout.Direction
}

// StartDrag begins dragging a tab out of a group.
func (m *Manager) StartDrag(groupID, tabID string) (*DragSession, error) {
	g, ok := m.groups[groupID]
	if !ok {
		return nil, ErrUnknownGroup
	}
	if g.TabIndex(tabID) < 0 {
		return nil, ErrUnknownTab
	}
	return &DragSession{
		manager:       m,
		detector:      m.opts.Detector,
		tabID:         tabID,
		sourceGroupID: groupID,
	}, nil
}

// Sample records a pointer position during the drag. It returns the split
// direction currently indicated, DirectionNone when the pointer sits in a
// merge zone or outside every leaf.
func (d *DragSession) Sample(x, y float64) layout.Direction {
	d.targetGroupID = ""
	d.direction = layout.DirectionNone

	for _, lr := range d.manager.grid.Rects() {
		r := lr.Rect
		if x < r.X || x > r.X+r.Width || y < r.Y || y > r.Y+r.Height {
			continue
		}
		d.targetGroupID = lr.GroupID
		d.direction = d.detector.Detect(x, y, r, false, d.manager.parentSplit(lr.GroupID))
		break
	}
	return d.direction
}

// TargetGroupID returns the group under the last sampled position.
func (d *DragSession) TargetGroupID() string { return d.targetGroupID }

// EndDrag commits the drag. A live split zone splits the target panel and
// carries the tab into the new group; a plain drop on another group moves
// the tab there; dropping on the source group or outside is a no-op.
func (d *DragSession) EndDrag() error {
	switch {
	case d.targetGroupID == "":
		return nil
	case d.direction != layout.DirectionNone:
		src := d.sourceGroupID
		if d.targetGroupID != src {
			if err := d.manager.MoveTab(d.tabID, src, d.targetGroupID); err != nil {
				return err
			}
			src = d.targetGroupID
		}
		_, err := d.manager.SplitPanel(d.targetGroupID, d.direction, d.tabID)
		if err != nil && src != d.sourceGroupID {
			// Undo the pre-split transfer so a failed split leaves the
			// tab where the drag started.
			d.manager.MoveTab(d.tabID, src, d.sourceGroupID)
		}
		return err
	case d.targetGroupID != d.sourceGroupID:
		return d.manager.MoveTab(d.tabID, d.sourceGroupID, d.targetGroupID)
	}
	return nil
}

// ParentOrientation reports the split orientation of the branch directly
// above a group's leaf; ok is false for the root leaf.
func (m *Manager) ParentOrientation(groupID string) (layout.Orientation, bool) {
	o := m.parentSplit(groupID)
	if o == nil {
		return layout.Horizontal, false
	}
	return *o, true
}

// parentSplit returns the orientation of the branch directly above a
// group's leaf, nil for the root leaf.
func (m *Manager) parentSplit(groupID string) *layout.Orientation {
	loc, _, ok := layout.LeafLocation(m.grid.Root, groupID)
	if !ok || loc.IsRoot() {
		return nil
	}
	parentLoc, err := loc.Parent()
	if err != nil {
		return nil
	}
	node, err := layout.FindNodeAt(m.grid.Root, parentLoc)
	if err != nil {
		return nil
	}
	branch, ok := node.(*layout.Branch)
	if !ok {
		return nil
	}
	o := branch.Orientation
	return &o
}
