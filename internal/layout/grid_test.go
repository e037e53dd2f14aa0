package layout

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func newLeaf(groupID string) *Leaf {
	return &Leaf{GroupID: groupID, Min: 50}
}

func assertRect(t *testing.T, rects []LeafRect, groupID string, want Rect) {
	t.Helper()
	for _, lr := range rects {
		if lr.GroupID != groupID {
			continue
		}
		r := lr.Rect
		if math.Abs(r.X-want.X) > 1e-9 || math.Abs(r.Y-want.Y) > 1e-9 ||
			math.Abs(r.Width-want.Width) > 1e-9 || math.Abs(r.Height-want.Height) > 1e-9 {
			t.Fatalf("rect for %s = %+v, want %+v", groupID, r, want)
		}
		return
	}
	t.Fatalf("no rect for group %s in %v", groupID, rects)
}

// assertReduced checks that no branch has fewer than two children.
func assertReduced(t *testing.T, n GridNode) {
	t.Helper()
	branch, ok := n.(*Branch)
	if !ok {
		return
	}
	if len(branch.Children) < 2 {
		t.Fatalf("branch with %d children", len(branch.Children))
	}
	if len(branch.Sizes) != len(branch.Children) {
		t.Fatalf("sizes/children mismatch: %d vs %d", len(branch.Sizes), len(branch.Children))
	}
	for _, child := range branch.Children {
		if nested, ok := child.(*Branch); ok && nested.Orientation == branch.Orientation {
			t.Fatalf("nested branch shares orientation %v with parent", branch.Orientation)
		}
		assertReduced(t, child)
	}
}

func TestNewGridStateSingleLeaf(t *testing.T) {
	g := NewGridState("a", 400, 300)
	rects := g.Rects()
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 400, Height: 300})
}

func TestAddLeafSplitsRoot(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	rects := g.Rects()
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 200, Height: 300})
	assertRect(t, rects, "b", Rect{X: 200, Y: 0, Width: 200, Height: 300})
}

func TestAddLeafFlattensSameOrientation(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	// Splitting b horizontally again must extend the existing branch, not
	// nest a second horizontal branch inside it.
	if err := g.AddLeaf(Location{1}, newLeaf("c"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	root, ok := g.Root.(*Branch)
	if !ok {
		t.Fatalf("root is %T, want *Branch", g.Root)
	}
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}
	assertReduced(t, g.Root)

	rects := g.Rects()
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 200, Height: 300})
	assertRect(t, rects, "b", Rect{X: 200, Y: 0, Width: 100, Height: 300})
	assertRect(t, rects, "c", Rect{X: 300, Y: 0, Width: 100, Height: 300})
}

func TestAddLeafPerpendicular(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.AddLeaf(Location{0}, newLeaf("c"), Vertical, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	rects := g.Rects()
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 200, Height: 150})
	assertRect(t, rects, "c", Rect{X: 0, Y: 150, Width: 200, Height: 150})
	assertRect(t, rects, "b", Rect{X: 200, Y: 0, Width: 200, Height: 300})
}

func TestAddLeafBefore(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Vertical, true); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	rects := g.Rects()
	assertRect(t, rects, "b", Rect{X: 0, Y: 0, Width: 400, Height: 150})
	assertRect(t, rects, "a", Rect{X: 0, Y: 150, Width: 400, Height: 150})
}

func TestAddLeafInvalidLocation(t *testing.T) {
	g := NewGridState("a", 400, 300)
	before := g.Serialize()
	err := g.AddLeaf(Location{3}, newLeaf("b"), Horizontal, false)
	if !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
	if !reflect.DeepEqual(g.Serialize(), before) {
		t.Error("failed AddLeaf mutated the tree")
	}
}

func TestRemoveLeafReducesTree(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.AddLeaf(Location{0}, newLeaf("c"), Vertical, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}

	// Removing c leaves the vertical branch with one child; the branch
	// collapses and a takes its place directly under the root.
	leaf, err := g.RemoveLeaf(Location{0, 1})
	if err != nil {
		t.Fatalf("RemoveLeaf failed: %v", err)
	}
	if leaf.GroupID != "c" {
		t.Errorf("removed %q, want c", leaf.GroupID)
	}
	assertReduced(t, g.Root)

	rects := g.Rects()
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 200, Height: 300})
	assertRect(t, rects, "b", Rect{X: 200, Y: 0, Width: 200, Height: 300})
}

func TestRemoveLeafRootFails(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if _, err := g.RemoveLeaf(Location{}); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation removing root, got %v", err)
	}
}

func TestRemoveLeafInvalidLocationLeavesTreeUnchanged(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	before := g.Serialize()
	if _, err := g.RemoveLeaf(Location{5}); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
	if !reflect.DeepEqual(g.Serialize(), before) {
		t.Error("failed RemoveLeaf mutated the tree")
	}
}

func TestMoveLeafAtomic(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.AddLeaf(Location{1}, newLeaf("c"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}

	// Move c below a. The target location is interpreted against the tree
	// with c already removed.
	if err := g.MoveLeaf(Location{2}, Location{0}, Vertical, false); err != nil {
		t.Fatalf("MoveLeaf failed: %v", err)
	}
	assertReduced(t, g.Root)
	rects := g.Rects()
	assertRect(t, rects, "c", Rect{X: 0, Y: 150, Width: 200, Height: 150})

	// A bad target restores the original tree.
	before := g.Serialize()
	err := g.MoveLeaf(Location{1}, Location{9, 9}, Horizontal, false)
	if !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
	if !reflect.DeepEqual(g.Serialize(), before) {
		t.Error("failed MoveLeaf left a partially mutated tree")
	}
}

func TestResizeLeafConservesBranchSize(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.ResizeLeaf("a", 280); err != nil {
		t.Fatalf("ResizeLeaf failed: %v", err)
	}
	rects := g.Rects()
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 280, Height: 300})
	assertRect(t, rects, "b", Rect{X: 280, Y: 0, Width: 120, Height: 300})

	// Sibling minimums bound the resize.
	if err := g.ResizeLeaf("a", 390); err != nil {
		t.Fatalf("ResizeLeaf failed: %v", err)
	}
	rects = g.Rects()
	assertRect(t, rects, "a", Rect{X: 0, Y: 0, Width: 350, Height: 300})
	assertRect(t, rects, "b", Rect{X: 350, Y: 0, Width: 50, Height: 300})
}

func TestResizeLeafUnknownGroup(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.ResizeLeaf("nope", 100); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestResizeLeafBy(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Vertical, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.ResizeLeafBy("a", 40); err != nil {
		t.Fatalf("ResizeLeafBy failed: %v", err)
	}
	assertRect(t, g.Rects(), "a", Rect{X: 0, Y: 0, Width: 400, Height: 190})
}

func TestSetViewportRescales(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	g.SetViewport(600, 200)
	root := g.Root.(*Branch)
	var total float64
	for _, s := range root.Sizes {
		total += s
	}
	if math.Abs(total-600) > 1e-9 {
		t.Errorf("branch sizes sum to %v, want 600", total)
	}
	if root.Size != 600 {
		t.Errorf("branch size = %v, want 600", root.Size)
	}
}

func TestNormalizeMergesAndRescales(t *testing.T) {
	// Hand-build a degenerate tree: a horizontal branch nesting another
	// horizontal branch, with drifted sizes.
	inner := &Branch{
		Orientation: Horizontal,
		Children:    []GridNode{newLeaf("b"), newLeaf("c")},
		Sizes:       []float64{99.999999, 100.000001},
		Size:        200,
	}
	root := &Branch{
		Orientation: Horizontal,
		Children:    []GridNode{newLeaf("a"), inner},
		Sizes:       []float64{200, 200},
		Size:        400,
	}
	g := &GridState{Root: root, Orientation: Horizontal, Width: 400, Height: 300}

	g.Normalize()
	assertReduced(t, g.Root)

	flat, ok := g.Root.(*Branch)
	if !ok || len(flat.Children) != 3 {
		t.Fatalf("root = %#v, want flat 3-child branch", g.Root)
	}
	var total float64
	for _, s := range flat.Sizes {
		total += s
	}
	if math.Abs(total-flat.Size) > 1e-9 {
		t.Errorf("sizes sum %v != branch size %v", total, flat.Size)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.AddLeaf(Location{0}, newLeaf("c"), Vertical, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.AddLeaf(Location{1}, newLeaf("d"), Horizontal, true); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	g.Normalize()

	doc := g.Serialize()
	restored, err := DeserializeGrid(doc)
	if err != nil {
		t.Fatalf("DeserializeGrid failed: %v", err)
	}
	if !reflect.DeepEqual(restored.Serialize(), doc) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", restored.Serialize(), doc)
	}
}

func TestDeserializeGridRejectsMalformedDocuments(t *testing.T) {
	leaf := SerializedNode{Type: "leaf", GroupID: "a", Size: 100}
	tests := []struct {
		name string
		doc  SerializedGrid
	}{
		{
			name: "unknown node type",
			doc: SerializedGrid{
				Root:        SerializedNode{Type: "blob"},
				Orientation: "horizontal",
			},
		},
		{
			name: "leaf without group id",
			doc: SerializedGrid{
				Root:        SerializedNode{Type: "leaf", Size: 100},
				Orientation: "horizontal",
			},
		},
		{
			name: "branch with one child",
			doc: SerializedGrid{
				Root: SerializedNode{
					Type:        "branch",
					Orientation: "horizontal",
					Size:        100,
					Children:    []SerializedNode{leaf},
				},
				Orientation: "horizontal",
			},
		},
		{
			name: "bad orientation",
			doc: SerializedGrid{
				Root:        leaf,
				Orientation: "diagonal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeserializeGrid(tt.doc); !errors.Is(err, ErrSerialization) {
				t.Fatalf("expected ErrSerialization, got %v", err)
			}
		})
	}
}

func TestFindNodeAtAndParent(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}

	node, err := FindNodeAt(g.Root, Location{1})
	if err != nil {
		t.Fatalf("FindNodeAt failed: %v", err)
	}
	if leaf, ok := node.(*Leaf); !ok || leaf.GroupID != "b" {
		t.Fatalf("node at [1] = %#v, want leaf b", node)
	}

	if _, err := FindNodeAt(g.Root, Location{7}); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}

	parent, err := Location{1, 0}.Parent()
	if err != nil || !reflect.DeepEqual(parent, Location{1}) {
		t.Fatalf("Parent() = %v, %v; want [1], nil", parent, err)
	}
	if _, err := (Location{}).Parent(); !errors.Is(err, ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation for root parent, got %v", err)
	}
}

func TestAllLeavesPreOrder(t *testing.T) {
	g := NewGridState("a", 400, 300)
	if err := g.AddLeaf(Location{}, newLeaf("b"), Horizontal, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	if err := g.AddLeaf(Location{0}, newLeaf("c"), Vertical, false); err != nil {
		t.Fatalf("AddLeaf failed: %v", err)
	}
	var got []string
	for _, leaf := range AllLeaves(g.Root) {
		got = append(got, leaf.GroupID)
	}
	want := []string{"a", "c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("leaves = %v, want %v", got, want)
	}
}
