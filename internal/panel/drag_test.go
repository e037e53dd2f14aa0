package panel

import (
	"testing"

	"github.com/gridos/gridos/internal/layout"
)

func TestDragMoveBetweenGroups(t *testing.T) {
	m := newTestManager(t, 400, 300)
	m.AddTab("g0", Tab{ID: "t1", Kind: KindAgent})
	id := mustSplit(t, m, "g0", layout.DirectionRight, "")

	d, err := m.StartDrag("g0", "t1")
	if err != nil {
		t.Fatalf("StartDrag failed: %v", err)
	}
	// Center of the right pane: merge zone, plain move.
	if dir := d.Sample(300, 150); dir != layout.DirectionNone {
		t.Fatalf("center sample = %v, want none", dir)
	}
	if d.TargetGroupID() != id {
		t.Fatalf("target = %q, want %q", d.TargetGroupID(), id)
	}
	if err := d.EndDrag(); err != nil {
		t.Fatalf("EndDrag failed: %v", err)
	}

	src, _ := m.Group("g0")
	dst, _ := m.Group(id)
	assertTabs(t, src)
	assertTabs(t, dst, "t1")
}

func TestDragSplitsAtEdge(t *testing.T) {
	m := newTestManager(t, 400, 300)
	m.AddTab("g0", Tab{ID: "t1", Kind: KindAgent})
	id := mustSplit(t, m, "g0", layout.DirectionRight, "")

	d, err := m.StartDrag("g0", "t1")
	if err != nil {
		t.Fatalf("StartDrag failed: %v", err)
	}
	// Near the top of the right pane. Its parent is a horizontal split,
	// so up/down gets the generous zone.
	if dir := d.Sample(300, 20); dir != layout.DirectionUp {
		t.Fatalf("top sample = %v, want up", dir)
	}
	if err := d.EndDrag(); err != nil {
		t.Fatalf("EndDrag failed: %v", err)
	}

	leaves := m.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("got %d leaves, want 3", len(leaves))
	}
	// The tab lives in exactly one group: the new pane above the target.
	owners := 0
	for _, g := range m.Groups() {
		if g.TabIndex("t1") >= 0 {
			owners++
			if g.ID == "g0" || g.ID == id {
				t.Errorf("t1 still owned by %s", g.ID)
			}
		}
	}
	if owners != 1 {
		t.Fatalf("t1 owned by %d groups, want 1", owners)
	}
}

func TestDragOutsideIsNoop(t *testing.T) {
	m := newTestManager(t, 400, 300)
	m.AddTab("g0", Tab{ID: "t1", Kind: KindAgent})

	d, err := m.StartDrag("g0", "t1")
	if err != nil {
		t.Fatalf("StartDrag failed: %v", err)
	}
	if dir := d.Sample(900, 900); dir != layout.DirectionNone {
		t.Fatalf("outside sample = %v, want none", dir)
	}
	if err := d.EndDrag(); err != nil {
		t.Fatalf("EndDrag failed: %v", err)
	}
	g, _ := m.Group("g0")
	assertTabs(t, g, "t1")
}

func TestDragUnknownTab(t *testing.T) {
	m := newTestManager(t, 400, 300)
	if _, err := m.StartDrag("g0", "ghost"); err != ErrUnknownTab {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
	if _, err := m.StartDrag("ghost", "t"); err != ErrUnknownGroup {
		t.Fatalf("expected ErrUnknownGroup, got %v", err)
	}
}
