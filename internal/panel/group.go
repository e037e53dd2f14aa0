package panel

// Group is the tab container living at one grid leaf. Tabs keep insertion
// order and ids are unique within the group. ActiveTabID is empty exactly
// when Tabs is empty.
type Group struct {
	ID          string  `json:"id"`
	Tabs        []Tab   `json:"tabs"`
	ActiveTabID string  `json:"activeTabId,omitempty"`
	Focused     bool    `json:"focused,omitempty"`
	Percentage  float64 `json:"percentage,omitempty"`
}

// TabIndex returns the position of a tab in the group, or -1.
func (g *Group) TabIndex(tabID string) int {
	for i, tab := range g.Tabs {
		if tab.ID == tabID {
			return i
		}
	}
	return -1
}

// ActiveTab returns the active tab, or nil when the group is empty.
func (g *Group) ActiveTab() *Tab {
	if i := g.TabIndex(g.ActiveTabID); i >= 0 {
		return &g.Tabs[i]
	}
	return nil
}

// removeTab takes a tab out of the group. When the active tab is removed
// the tab after it becomes active, or the one before it if it was last, or
// none if the group is now empty.
func (g *Group) removeTab(tabID string) (Tab, bool) {
	idx := g.TabIndex(tabID)
	if idx < 0 {
		return Tab{}, false
	}
	tab := g.Tabs[idx]
	g.Tabs = append(g.Tabs[:idx], g.Tabs[idx+1:]...)

	if g.ActiveTabID == tabID {
		switch {
		case len(g.Tabs) == 0:
			g.ActiveTabID = ""
		case idx < len(g.Tabs):
			g.ActiveTabID = g.Tabs[idx].ID
		default:
			g.ActiveTabID = g.Tabs[idx-1].ID
		}
	}
	return tab, true
}
