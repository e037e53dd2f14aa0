package workspace

import "github.com/gridos/gridos/internal/panel"

// kindMigrations remaps tab kinds written by older versions to their
// current names.
var kindMigrations = map[string]panel.Kind{
	"chat":     panel.KindAgent,
	"claude":   panel.KindAgent,
	"shell":    panel.KindTerminal,
	"tree":     panel.KindFileTree,
	"explorer": panel.KindFileTree,
}

// migrateKind resolves a persisted kind string to a current kind.
// Unknown kinds are reported as unmigratable and get dropped by callers.
func migrateKind(k panel.Kind) (panel.Kind, bool) {
	if k.Valid() {
		return k, true
	}
	if mapped, ok := kindMigrations[string(k)]; ok {
		return mapped, true
	}
	return "", false
}

// migrateGroups rewrites tab kinds in place, dropping tabs whose kind is
// unknown even after migration. Active-tab pointers left dangling by a
// drop are repaired to the first remaining tab.
func migrateGroups(groups []*panel.Group) {
	for _, g := range groups {
		kept := g.Tabs[:0]
		for _, tab := range g.Tabs {
			kind, ok := migrateKind(tab.Kind)
			if !ok {
				continue
			}
			tab.Kind = kind
			kept = append(kept, tab)
		}
		g.Tabs = kept
		if g.TabIndex(g.ActiveTabID) < 0 {
			g.ActiveTabID = ""
			if len(g.Tabs) > 0 {
				g.ActiveTabID = g.Tabs[0].ID
			}
		}
	}
}
