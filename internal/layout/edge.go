package layout

// Direction is a split intention derived from a pointer position.
type Direction int

const (
	// DirectionNone means the pointer is in the merge/reorder zone.
	DirectionNone Direction = iota
	// DirectionUp splits above the target.
	DirectionUp
	// DirectionDown splits below the target.
	DirectionDown
	// DirectionLeft splits left of the target.
	DirectionLeft
	// DirectionRight splits right of the target.
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "none"
}

// Orientation returns the branch orientation a split in this direction
// produces: up/down stack, left/right sit side by side.
func (d Direction) Orientation() Orientation {
	if d == DirectionUp || d == DirectionDown {
		return Vertical
	}
	return Horizontal
}

// Before reports whether a split in this direction inserts the new leaf
// before the target in child order.
func (d Direction) Before() bool {
	return d == DirectionUp || d == DirectionLeft
}

// Default edge-detection thresholds, as fractions of the rectangle extent.
const (
	DefaultEdgeFraction  = 0.10
	DefaultSplitFraction = 1.0 / 3.0
)

// EdgeDetector maps pointer positions inside a panel rectangle to split
// intentions using two nested thresholds: pointers inside the inner box on
// both axes mean merge/reorder, the preferred axis gets the generous split
// hitzone on its two edges, and the center strip of that axis buckets by
// the midpoint of the other axis. The result is the T-shaped hitzone that
// makes the likely split direction much easier to hit than the
// perpendicular one.
type EdgeDetector struct {
	EdgeFraction  float64
	SplitFraction float64
}

// Detect resolves a pointer position to a split direction.
// preferVertical asks for up/down to get the generous zone; a non-nil
// split orientation of the panel's parent overrides it, encouraging a
// genuine two-dimensional grid: a horizontal split offers up/down next, a
// vertical split offers left/right.
func (d EdgeDetector) Detect(x, y float64, rect Rect, preferVertical bool, split *Orientation) Direction {
	edge := d.EdgeFraction
	if edge <= 0 {
		edge = DefaultEdgeFraction
	}
	generous := d.SplitFraction
	if generous <= 0 {
		generous = DefaultSplitFraction
	}
	if split != nil {
		preferVertical = *split == Horizontal
	}

	rx := x - rect.X
	ry := y - rect.Y
	if rx < 0 || ry < 0 || rx > rect.Width || ry > rect.Height {
		return DirectionNone
	}

	// Inner box on both axes: merge/reorder, no split.
	if rx > rect.Width*edge && rx < rect.Width*(1-edge) &&
		ry > rect.Height*edge && ry < rect.Height*(1-edge) {
		return DirectionNone
	}

	if preferVertical {
		switch {
		case ry < rect.Height*generous:
			return DirectionUp
		case ry > rect.Height*(1-generous):
			return DirectionDown
		case rx < rect.Width/2:
			return DirectionLeft
		default:
			return DirectionRight
		}
	}
	switch {
	case rx < rect.Width*generous:
		return DirectionLeft
	case rx > rect.Width*(1-generous):
		return DirectionRight
	case ry < rect.Height/2:
		return DirectionUp
	default:
		return DirectionDown
	}
}

// DetectEdgeDirection applies the default thresholds.
func DetectEdgeDirection(x, y float64, rect Rect, preferVertical bool, split *Orientation) Direction {
	return EdgeDetector{}.Detect(x, y, rect, preferVertical, split)
}
