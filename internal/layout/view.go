// Package layout implements the resizable panel grid engine for GRIDOS:
// one-dimensional split views with constraint-solving resize, the
// two-dimensional grid tree composed from them, pointer edge detection
// for split gestures, and the resize flap guard.
package layout

// Priority controls the order in which a view absorbs size changes.
// High-priority views are resized first, low-priority views last.
type Priority int

const (
	// PriorityNormal is the default resize priority.
	PriorityNormal Priority = iota
	// PriorityLow views absorb size changes only after everyone else.
	PriorityLow
	// PriorityHigh views absorb size changes before everyone else.
	PriorityHigh
)

// View describes one resizable slot in a SplitView. The rendered content
// behind a view is opaque to the engine; only its constraints matter here.
type View struct {
	ID                 string
	MinimumSize        float64
	MaximumSize        float64
	Priority           Priority
	ProportionalLayout bool
	Snap               bool
}

// maxSize returns the effective maximum, treating zero as unbounded.
func (v View) maxSize() float64 {
	if v.MaximumSize <= 0 {
		return unbounded
	}
	return v.MaximumSize
}

type sizingKind int

const (
	sizingDistribute sizingKind = iota
	sizingSplit
	sizingAuto
	sizingInvisible
)

// Sizing selects how a newly added view obtains its initial size.
type Sizing struct {
	kind       sizingKind
	index      int
	cachedSize float64
}

// SizingDistribute inserts the view at its minimum size and then
// redistributes the container across all views.
func SizingDistribute() Sizing { return Sizing{kind: sizingDistribute} }

// SizingSplit takes half the size of the view at index.
func SizingSplit(index int) Sizing { return Sizing{kind: sizingSplit, index: index} }

// SizingAuto behaves like SizingDistribute. The split/distribute heuristic
// collapses to plain distribution with the constraints this engine uses.
func SizingAuto(index int) Sizing { return Sizing{kind: sizingAuto, index: index} }

// SizingInvisible inserts the view logically hidden, remembering the size
// it should get back when made visible.
func SizingInvisible(cachedSize float64) Sizing {
	return Sizing{kind: sizingInvisible, cachedSize: cachedSize}
}
