package layout

import "math"

// Orientation is the axis a branch lays its children along. Horizontal
// branches place children side by side (sizes are widths), vertical
// branches stack them (sizes are heights).
type Orientation int

const (
	// Horizontal lays children out side by side.
	Horizontal Orientation = iota
	// Vertical stacks children.
	Vertical
)

// Orthogonal returns the perpendicular orientation.
func (o Orientation) Orthogonal() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Location addresses a grid node as the path of child indices from the
// root. The empty location is the root itself.
type Location []int

// IsRoot reports whether the location addresses the root node.
func (l Location) IsRoot() bool { return len(l) == 0 }

// Parent returns the location with the last index removed. It fails on the
// root location.
func (l Location) Parent() (Location, error) {
	if l.IsRoot() {
		return nil, ErrInvalidLocation
	}
	return append(Location(nil), l[:len(l)-1]...), nil
}

// GridNode is either a *Leaf or a *Branch.
type GridNode interface {
	size() float64
	setSize(float64)
	clone() GridNode
}

// Leaf is a terminal panel-group slot. Size is its extent along the parent
// branch's axis. Min and Max constrain that extent on both axes and are
// host bookkeeping, not part of the serialized structure.
type Leaf struct {
	GroupID string
	Size    float64
	Min     float64
	Max     float64
}

func (l *Leaf) size() float64     { return l.Size }
func (l *Leaf) setSize(s float64) { l.Size = s }
func (l *Leaf) clone() GridNode {
	c := *l
	return &c
}

func (l *Leaf) minSize() float64 { return l.Min }
func (l *Leaf) maxSize() float64 {
	if l.Max <= 0 {
		return unbounded
	}
	return l.Max
}

// Branch is an inner node holding two or more children along one axis.
// Sizes runs parallel to Children and sums to Size after every mutation.
type Branch struct {
	Orientation Orientation
	Children    []GridNode
	Sizes       []float64
	Size        float64
}

func (b *Branch) size() float64     { return b.Size }
func (b *Branch) setSize(s float64) { b.Size = s }
func (b *Branch) clone() GridNode {
	c := &Branch{
		Orientation: b.Orientation,
		Children:    make([]GridNode, len(b.Children)),
		Sizes:       append([]float64(nil), b.Sizes...),
		Size:        b.Size,
	}
	for i, child := range b.Children {
		c.Children[i] = child.clone()
	}
	return c
}

// nodeMin returns the minimum extent of a node along the given axis: the
// sum of child minimums along the node's own axis, the largest child
// minimum across it.
func nodeMin(n GridNode, axis Orientation) float64 {
	switch node := n.(type) {
	case *Leaf:
		return node.minSize()
	case *Branch:
		var total float64
		for _, child := range node.Children {
			m := nodeMin(child, axis)
			if node.Orientation == axis {
				total += m
			} else {
				total = math.Max(total, m)
			}
		}
		return total
	}
	return 0
}

// nodeMax mirrors nodeMin for maximum extents.
func nodeMax(n GridNode, axis Orientation) float64 {
	switch node := n.(type) {
	case *Leaf:
		return node.maxSize()
	case *Branch:
		var total float64
		cross := unbounded
		for _, child := range node.Children {
			m := nodeMax(child, axis)
			total += m
			cross = math.Min(cross, m)
		}
		if node.Orientation == axis {
			return total
		}
		return cross
	}
	return unbounded
}

// GridState is the whole addressable tree plus the viewport extent it was
// laid out against.
type GridState struct {
	Root        GridNode
	Orientation Orientation
	Width       float64
	Height      float64
}

// NewGridState creates the initial single-leaf grid for a viewport.
func NewGridState(groupID string, width, height float64) *GridState {
	g := &GridState{
		Root:        &Leaf{GroupID: groupID},
		Orientation: Horizontal,
		Width:       width,
		Height:      height,
	}
	g.layout()
	return g
}

// Clone returns a deep copy of the grid.
func (g *GridState) Clone() *GridState {
	return &GridState{
		Root:        g.Root.clone(),
		Orientation: g.Orientation,
		Width:       g.Width,
		Height:      g.Height,
	}
}

// FindNodeAt walks the location path from root. Any out-of-range index
// fails with ErrInvalidLocation.
func FindNodeAt(root GridNode, loc Location) (GridNode, error) {
	node := root
	for _, idx := range loc {
		branch, ok := node.(*Branch)
		if !ok || idx < 0 || idx >= len(branch.Children) {
			return nil, ErrInvalidLocation
		}
		node = branch.Children[idx]
	}
	return node, nil
}

// AllLeaves collects every leaf in pre-order.
func AllLeaves(root GridNode) []*Leaf {
	var leaves []*Leaf
	var walk func(GridNode)
	walk = func(n GridNode) {
		switch node := n.(type) {
		case *Leaf:
			leaves = append(leaves, node)
		case *Branch:
			for _, child := range node.Children {
				walk(child)
			}
		}
	}
	walk(root)
	return leaves
}

// LeafLocation returns the location of the leaf owning groupID.
func LeafLocation(root GridNode, groupID string) (Location, *Leaf, bool) {
	var found Location
	var leaf *Leaf
	var walk func(GridNode, Location) bool
	walk = func(n GridNode, loc Location) bool {
		switch node := n.(type) {
		case *Leaf:
			if node.GroupID == groupID {
				found = append(Location(nil), loc...)
				leaf = node
				return true
			}
		case *Branch:
			for i, child := range node.Children {
				if walk(child, append(loc, i)) {
					return true
				}
			}
		}
		return false
	}
	if !walk(root, nil) {
		return nil, nil, false
	}
	return found, leaf, true
}

func (g *GridState) parentOf(loc Location) (*Branch, int, error) {
	parentLoc, err := loc.Parent()
	if err != nil {
		return nil, 0, err
	}
	node, err := FindNodeAt(g.Root, parentLoc)
	if err != nil {
		return nil, 0, err
	}
	branch, ok := node.(*Branch)
	if !ok {
		return nil, 0, ErrInvalidLocation
	}
	return branch, loc[len(loc)-1], nil
}

// axisExtent returns the viewport extent along an axis.
func (g *GridState) axisExtent(axis Orientation) float64 {
	if axis == Horizontal {
		return g.Width
	}
	return g.Height
}

// rebalance redistributes a branch's child sizes so they sum to the
// branch's size, respecting every subtree's min/max along the branch axis.
// Visit order is reverse index order, the deprioritized index last.
func rebalance(b *Branch, deprioritized int) {
	sizes := append([]float64(nil), b.Sizes...)
	bounds := make([]bound, len(b.Children))
	for i, child := range b.Children {
		bounds[i] = bound{min: nodeMin(child, b.Orientation), max: nodeMax(child, b.Orientation)}
	}
	order := make([]int, 0, len(sizes))
	for i := len(sizes) - 1; i >= 0; i-- {
		if i != deprioritized {
			order = append(order, i)
		}
	}
	if deprioritized >= 0 {
		order = append(order, deprioritized)
	}
	var content float64
	for _, s := range sizes {
		content += s
	}
	b.Sizes, _ = redistribute(sizes, bounds, order, b.Size-content)
}

// layoutBranch lays a branch out against its own-axis and cross-axis
// extents, recursing into child branches with flipped roles.
func layoutBranch(b *Branch, own, cross float64) {
	b.Size = own
	rebalance(b, -1)
	for i, child := range b.Children {
		child.setSize(b.Sizes[i])
		if cb, ok := child.(*Branch); ok {
			layoutBranch(cb, cross, b.Sizes[i])
		}
	}
}

// layout re-derives every Size field from the viewport, repairing sum and
// cross-extent bookkeeping after a structural mutation.
func (g *GridState) layout() {
	switch root := g.Root.(type) {
	case *Leaf:
		root.Size = g.axisExtent(g.Orientation)
	case *Branch:
		g.Orientation = root.Orientation
		layoutBranch(root, g.axisExtent(root.Orientation), g.axisExtent(root.Orientation.Orthogonal()))
	}
}

// SetViewport resizes the whole grid to a new viewport extent.
func (g *GridState) SetViewport(width, height float64) {
	g.Width = width
	g.Height = height
	g.layout()
}

// AddLeaf inserts a leaf next to the node at loc along the given
// orientation; before controls which side of the node it lands on.
// Splitting a leaf whose parent already runs along the same orientation
// inserts a sibling instead of nesting, so two adjacent branches never
// share an orientation.
func (g *GridState) AddLeaf(loc Location, leaf *Leaf, o Orientation, before bool) error {
	node, err := FindNodeAt(g.Root, loc)
	if err != nil {
		return err
	}

	var parent *Branch
	var idx int
	if !loc.IsRoot() {
		if parent, idx, err = g.parentOf(loc); err != nil {
			return err
		}
	}

	if branch, ok := node.(*Branch); ok && branch.Orientation == o {
		// Same-orientation branch addressed directly: extra child.
		at := len(branch.Children)
		if before {
			at = 0
		}
		insertChild(branch, at, leaf, leaf.Min)
		rebalance(branch, -1)
		g.layout()
		return nil
	}

	if parent != nil && parent.Orientation == o {
		// Sibling insertion keeps the tree flat.
		at := idx + 1
		if before {
			at = idx
		}
		half := parent.Sizes[idx] - math.Max(nodeMin(node, o), parent.Sizes[idx]/2)
		parent.Sizes[idx] -= half
		insertChild(parent, at, leaf, half)
		rebalance(parent, -1)
		g.layout()
		return nil
	}

	// Replace the node with a branch holding it and the new leaf.
	extent := g.extentAlong(loc, o)
	half := extent - math.Max(nodeMin(node, o), extent/2)
	children := []GridNode{node, GridNode(leaf)}
	sizes := []float64{extent - half, half}
	if before {
		children[0], children[1] = children[1], children[0]
		sizes[0], sizes[1] = sizes[1], sizes[0]
	}
	replacement := &Branch{Orientation: o, Children: children, Sizes: sizes, Size: extent}
	if parent == nil {
		g.Root = replacement
		g.Orientation = o
	} else {
		parent.Children[idx] = replacement
	}
	g.layout()
	return nil
}

func insertChild(b *Branch, at int, child GridNode, size float64) {
	b.Children = append(b.Children, nil)
	copy(b.Children[at+1:], b.Children[at:])
	b.Children[at] = child
	b.Sizes = append(b.Sizes, 0)
	copy(b.Sizes[at+1:], b.Sizes[at:])
	b.Sizes[at] = size
}

// extentAlong returns the extent of the node at loc along an axis, derived
// from the viewport walk.
func (g *GridState) extentAlong(loc Location, axis Orientation) float64 {
	rect := Rect{Width: g.Width, Height: g.Height}
	node := g.Root
	for _, idx := range loc {
		branch := node.(*Branch)
		var offset float64
		for i := 0; i < idx; i++ {
			offset += branch.Sizes[i]
		}
		if branch.Orientation == Horizontal {
			rect.X += offset
			rect.Width = branch.Sizes[idx]
		} else {
			rect.Y += offset
			rect.Height = branch.Sizes[idx]
		}
		node = branch.Children[idx]
	}
	if axis == Horizontal {
		return rect.Width
	}
	return rect.Height
}

// RemoveLeaf deletes the leaf at loc. The freed extent is redistributed to
// the remaining siblings and a branch left with a single child is replaced
// by that child, repeating upward via normalization.
func (g *GridState) RemoveLeaf(loc Location) (*Leaf, error) {
	node, err := FindNodeAt(g.Root, loc)
	if err != nil {
		return nil, err
	}
	leaf, ok := node.(*Leaf)
	if !ok || loc.IsRoot() {
		return nil, ErrInvalidLocation
	}
	parent, idx, err := g.parentOf(loc)
	if err != nil {
		return nil, err
	}

	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	parent.Sizes = append(parent.Sizes[:idx], parent.Sizes[idx+1:]...)
	if len(parent.Children) > 1 {
		rebalance(parent, -1)
	}
	g.Normalize()
	return leaf, nil
}

// MoveLeaf relocates the leaf at from next to the node at to, as a single
// atomic operation: on any failure the grid is left unchanged. The target
// location is interpreted against the tree with the source already
// removed.
func (g *GridState) MoveLeaf(from, to Location, o Orientation, before bool) error {
	backup := g.Clone()
	leaf, err := g.RemoveLeaf(from)
	if err != nil {
		return err
	}
	if err := g.AddLeaf(to, leaf, o, before); err != nil {
		*g = *backup
		return err
	}
	return nil
}

// ResizeLeaf sets the extent of the leaf owning groupID along its parent
// branch axis; siblings absorb the difference within their bounds.
func (g *GridState) ResizeLeaf(groupID string, size float64) error {
	loc, _, ok := LeafLocation(g.Root, groupID)
	if !ok {
		return ErrInvalidLocation
	}
	if loc.IsRoot() {
		// A sole leaf always spans the viewport.
		return nil
	}
	parent, idx, err := g.parentOf(loc)
	if err != nil {
		return err
	}

	sizes := append([]float64(nil), parent.Sizes...)
	bounds := make([]bound, len(parent.Children))
	for i, child := range parent.Children {
		bounds[i] = bound{min: nodeMin(child, parent.Orientation), max: nodeMax(child, parent.Orientation)}
	}
	delta := clampf(size, bounds[idx].min, bounds[idx].max) - sizes[idx]

	var grow, shrink float64
	for i := range sizes {
		if i == idx {
			continue
		}
		grow += sizes[i] - bounds[i].min
		shrink += bounds[i].max - sizes[i]
	}
	delta = clampf(delta, -shrink, grow)

	order := make([]int, 0, len(sizes)-1)
	for i := len(sizes) - 1; i >= 0; i-- {
		if i != idx {
			order = append(order, i)
		}
	}
	sizes[idx] += delta
	parent.Sizes, _ = redistribute(sizes, bounds, order, 0-delta)
	g.layout()
	return nil
}

// ResizeLeafBy adjusts the leaf extent by a delta.
func (g *GridState) ResizeLeafBy(groupID string, delta float64) error {
	loc, leaf, ok := LeafLocation(g.Root, groupID)
	if !ok {
		return ErrInvalidLocation
	}
	if loc.IsRoot() {
		return nil
	}
	return g.ResizeLeaf(groupID, leaf.Size+delta)
}

// Normalize reduces single-child branches, merges nested same-orientation
// branches and rescales every branch's sizes to sum exactly to its size,
// fixing accumulated floating-point drift.
func (g *GridState) Normalize() {
	g.Root = normalizeNode(g.Root)
	if b, ok := g.Root.(*Branch); ok {
		g.Orientation = b.Orientation
	}
	g.layout()
}

func normalizeNode(n GridNode) GridNode {
	branch, ok := n.(*Branch)
	if !ok {
		return n
	}
	children := make([]GridNode, 0, len(branch.Children))
	sizes := make([]float64, 0, len(branch.Sizes))
	for i, child := range branch.Children {
		child = normalizeNode(child)
		nested, ok := child.(*Branch)
		if ok && nested.Orientation == branch.Orientation {
			// Splice same-orientation children in, scaled to the slot the
			// nested branch occupied.
			factor := 1.0
			if nested.Size > 0 {
				factor = branch.Sizes[i] / nested.Size
			}
			for j, grandchild := range nested.Children {
				children = append(children, grandchild)
				sizes = append(sizes, nested.Sizes[j]*factor)
			}
			continue
		}
		children = append(children, child)
		sizes = append(sizes, branch.Sizes[i])
	}
	if len(children) == 1 {
		return children[0]
	}
	branch.Children = children
	branch.Sizes = sizes
	return branch
}

// Rect is an axis-aligned rectangle in viewport units.
type Rect struct {
	X, Y, Width, Height float64
}

// LeafRect pairs a leaf's group with its viewport rectangle.
type LeafRect struct {
	GroupID string
	Rect    Rect
}

// Rects flattens the grid into per-leaf rectangles in pre-order. This is
// the render boundary: hosts consume rectangles, never the tree.
func (g *GridState) Rects() []LeafRect {
	var out []LeafRect
	var walk func(GridNode, Rect)
	walk = func(n GridNode, r Rect) {
		switch node := n.(type) {
		case *Leaf:
			out = append(out, LeafRect{GroupID: node.GroupID, Rect: r})
		case *Branch:
			offset := 0.0
			for i, child := range node.Children {
				cr := r
				if node.Orientation == Horizontal {
					cr.X += offset
					cr.Width = node.Sizes[i]
				} else {
					cr.Y += offset
					cr.Height = node.Sizes[i]
				}
				offset += node.Sizes[i]
				walk(child, cr)
			}
		}
	}
	walk(g.Root, Rect{Width: g.Width, Height: g.Height})
	return out
}
