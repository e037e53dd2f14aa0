package workspace

import (
	"reflect"
	"testing"

	"github.com/gridos/gridos/internal/layout"
	"github.com/gridos/gridos/internal/panel"
)

const testKey = "layout"

func TestLoadMissingKeyIsFresh(t *testing.T) {
	res := Load(NewMemStore(), testKey)
	if !res.Fresh {
		t.Fatalf("Load of empty store = %+v, want fresh", res)
	}
}

func TestLoadGarbageIsFresh(t *testing.T) {
	store := NewMemStore()
	for _, raw := range []string{"{not json", `"a string"`, `{"version":2,"gridState":{"root":{"type":"blob"},"orientation":"horizontal"}}`} {
		store.Set(testKey, raw)
		if res := Load(store, testKey); !res.Fresh {
			t.Errorf("Load(%q) = %+v, want fresh", raw, res)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewMemStore()
	m := panel.NewManager(400, 300, panel.Options{})
	root := m.FocusedGroupID()
	m.AddTab(root, panel.Tab{ID: "t1", Kind: panel.KindAgent, Title: "claude"})
	if _, err := m.SplitPanel(root, layout.DirectionRight, ""); err != nil {
		t.Fatalf("SplitPanel failed: %v", err)
	}

	Save(store, testKey, m)
	res := Load(store, testKey)
	if res.Fresh || res.Grid == nil {
		t.Fatalf("Load = %+v, want v2 document", res)
	}
	if !reflect.DeepEqual(res.Grid.Serialize(), m.Grid().Serialize()) {
		t.Error("restored grid differs from saved grid")
	}
	if len(res.Groups) != 2 {
		t.Fatalf("restored %d groups, want 2", len(res.Groups))
	}

	restored, err := panel.Restore(res.Grid, res.Groups, panel.Options{})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	g, ok := restored.Group(root)
	if !ok || g.TabIndex("t1") < 0 {
		t.Error("restored manager lost the saved tab")
	}
}

func TestLoadMigratesLegacyKinds(t *testing.T) {
	store := NewMemStore()
	store.Set(testKey, `{
		"version": 2,
		"gridState": {
			"root": {"type": "leaf", "groupId": "g1", "size": 400},
			"orientation": "horizontal",
			"width": 400,
			"height": 300
		},
		"panelGroupsMap": {
			"g1": {
				"id": "g1",
				"tabs": [
					{"id": "t1", "kind": "chat", "title": "agent"},
					{"id": "t2", "kind": "widget"},
					{"id": "t3", "kind": "terminal"}
				],
				"activeTabId": "t2"
			}
		},
		"timestamp": 1
	}`)

	res := Load(store, testKey)
	if res.Fresh {
		t.Fatal("migratable document treated as fresh")
	}
	g := res.Groups[0]
	if len(g.Tabs) != 2 {
		t.Fatalf("tabs after migration = %v, want t1 and t3", g.Tabs)
	}
	if g.Tabs[0].Kind != panel.KindAgent || g.Tabs[1].Kind != panel.KindTerminal {
		t.Errorf("migrated kinds = %v, %v", g.Tabs[0].Kind, g.Tabs[1].Kind)
	}
	// The active tab was dropped, the first survivor takes over.
	if g.ActiveTabID != "t1" {
		t.Errorf("active tab = %q, want t1", g.ActiveTabID)
	}
}

func TestLoadV2MissingGroupIsFresh(t *testing.T) {
	store := NewMemStore()
	store.Set(testKey, `{
		"version": 2,
		"gridState": {
			"root": {"type": "leaf", "groupId": "g1", "size": 400},
			"orientation": "horizontal",
			"width": 400,
			"height": 300
		},
		"panelGroupsMap": {},
		"timestamp": 1
	}`)
	if res := Load(store, testKey); !res.Fresh {
		t.Fatalf("Load = %+v, want fresh", res)
	}
}

func TestLoadV1Document(t *testing.T) {
	store := NewMemStore()
	store.Set(testKey, `{
		"panelGroups": [
			{"id": "g1", "tabs": [{"id": "t1", "kind": "shell"}], "activeTabId": "t1"},
			{"id": "g2", "tabs": []}
		],
		"panelLayout": {"direction": "vertical", "sizes": [1, 3]},
		"timestamp": 1
	}`)

	res := Load(store, testKey)
	if res.Legacy == nil {
		t.Fatalf("Load = %+v, want legacy document", res)
	}
	if got := res.Legacy.PanelGroups[0].Tabs[0].Kind; got != panel.KindTerminal {
		t.Errorf("migrated kind = %v, want terminal", got)
	}

	grid, groups := ConvertV1(res.Legacy, 400, 300)
	if len(groups) != 2 {
		t.Fatalf("converted %d groups, want 2", len(groups))
	}
	rects := grid.Rects()
	if len(rects) != 2 {
		t.Fatalf("converted grid has %d leaves, want 2", len(rects))
	}
	if rects[0].Rect.Height != 75 || rects[1].Rect.Height != 225 {
		t.Errorf("converted heights = %v, %v; want 75, 225", rects[0].Rect.Height, rects[1].Rect.Height)
	}
	if rects[0].Rect.Width != 400 {
		t.Errorf("converted width = %v, want 400", rects[0].Rect.Width)
	}
}

func TestConvertV1BadWeightsFallsBackToEven(t *testing.T) {
	doc := &LegacyDocument{
		PanelGroups: []*panel.Group{{ID: "g1"}, {ID: "g2"}},
		PanelLayout: LegacyLayout{Direction: "horizontal", Sizes: []float64{1, -5}},
	}
	grid, _ := ConvertV1(doc, 400, 300)
	rects := grid.Rects()
	if rects[0].Rect.Width != 200 || rects[1].Rect.Width != 200 {
		t.Errorf("widths = %v, %v; want even 200, 200", rects[0].Rect.Width, rects[1].Rect.Width)
	}
}

func TestRestoreManagerNeverFails(t *testing.T) {
	store := NewMemStore()
	store.Set(testKey, "][")
	m := RestoreManager(store, testKey, 400, 300, panel.Options{})
	if len(m.Leaves()) != 1 {
		t.Fatalf("fallback manager has %d leaves, want 1", len(m.Leaves()))
	}

	// A legacy document is converted eagerly.
	store.Set(testKey, `{
		"panelGroups": [{"id": "g1", "tabs": []}, {"id": "g2", "tabs": []}],
		"panelLayout": {"direction": "horizontal", "sizes": [1, 1]},
		"timestamp": 1
	}`)
	m = RestoreManager(store, testKey, 400, 300, panel.Options{})
	if len(m.Leaves()) != 2 {
		t.Fatalf("converted manager has %d leaves, want 2", len(m.Leaves()))
	}
}

func TestClear(t *testing.T) {
	store := NewMemStore()
	m := panel.NewManager(400, 300, panel.Options{})
	Save(store, testKey, m)
	if err := Clear(store, testKey); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if res := Load(store, testKey); !res.Fresh {
		t.Fatal("layout survived Clear")
	}
}
