package layout

import "math"

// unbounded is the effective maximum for views without a MaximumSize.
var unbounded = math.Inf(1)

// bound is the [min, max] interval a view size must stay within.
type bound struct {
	min, max float64
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// redistribute applies delta across sizes in the given visit order,
// clamping every size to its bound and carrying the remainder to the next
// index. It is the pure core of every resize in this package: it never
// mutates its inputs and returns the new sizes plus the delta actually
// absorbed.
func redistribute(sizes []float64, bounds []bound, order []int, delta float64) ([]float64, float64) {
	out := append([]float64(nil), sizes...)
	remaining := delta
	for _, i := range order {
		if remaining == 0 {
			break
		}
		next := clampf(out[i]+remaining, bounds[i].min, bounds[i].max)
		remaining -= next - out[i]
		out[i] = next
	}
	return out, delta - remaining
}

// prioritize reorders visit indices so high-priority views absorb changes
// first, low-priority views last, and an explicitly deprioritized index
// (-1 for none) very last. The reorder is stable within each class.
func prioritize(order []int, priority func(int) Priority, deprioritized int) []int {
	var high, normal, low, last []int
	for _, i := range order {
		switch {
		case i == deprioritized:
			last = append(last, i)
		case priority(i) == PriorityHigh:
			high = append(high, i)
		case priority(i) == PriorityLow:
			low = append(low, i)
		default:
			normal = append(normal, i)
		}
	}
	out := make([]int, 0, len(order))
	out = append(out, high...)
	out = append(out, normal...)
	out = append(out, low...)
	return append(out, last...)
}

type splitItem struct {
	view   View
	size   float64
	hidden bool
	// cachedVisibleSize remembers the last visible size while hidden.
	cachedVisibleSize float64
}

func (it *splitItem) minSize() float64 {
	if it.hidden {
		return 0
	}
	return it.view.MinimumSize
}

func (it *splitItem) maxSize() float64 {
	if it.hidden {
		return 0
	}
	return it.view.maxSize()
}

// SplitView is a one-dimensional resizable sequence of views along a
// single axis. All sizes share the unit of the container; the algorithm is
// unit-agnostic.
type SplitView struct {
	items []*splitItem
	size  float64
	// proportions holds each view's fraction of the container, captured
	// after every mutation for views with ProportionalLayout. NaN entries
	// mark views that do not participate.
	proportions []float64
}

// NewSplitView returns an empty split view.
func NewSplitView() *SplitView {
	return &SplitView{}
}

// Len returns the number of views, visible or not.
func (s *SplitView) Len() int { return len(s.items) }

// Size returns the container extent from the last Layout call.
func (s *SplitView) Size() float64 { return s.size }

// ContentSize returns the summed size of all visible views.
func (s *SplitView) ContentSize() float64 {
	var total float64
	for _, it := range s.items {
		total += it.size
	}
	return total
}

// ViewSizes returns the current size of every view in index order.
func (s *SplitView) ViewSizes() []float64 {
	sizes := make([]float64, len(s.items))
	for i, it := range s.items {
		sizes[i] = it.size
	}
	return sizes
}

// ViewSize returns the size of the view at index.
func (s *SplitView) ViewSize(index int) (float64, error) {
	if index < 0 || index >= len(s.items) {
		return 0, ErrInvalidLocation
	}
	return s.items[index].size, nil
}

// IsViewVisible reports whether the view at index is logically visible.
func (s *SplitView) IsViewVisible(index int) (bool, error) {
	if index < 0 || index >= len(s.items) {
		return false, ErrInvalidLocation
	}
	return !s.items[index].hidden, nil
}

// CachedVisibleSize returns the remembered size of a hidden view and
// whether the view is currently hidden.
func (s *SplitView) CachedVisibleSize(index int) (float64, bool, error) {
	if index < 0 || index >= len(s.items) {
		return 0, false, ErrInvalidLocation
	}
	it := s.items[index]
	return it.cachedVisibleSize, it.hidden, nil
}

func (s *SplitView) snapshot() ([]float64, []bound) {
	sizes := make([]float64, len(s.items))
	bounds := make([]bound, len(s.items))
	for i, it := range s.items {
		sizes[i] = it.size
		bounds[i] = bound{min: it.minSize(), max: it.maxSize()}
	}
	return sizes, bounds
}

func (s *SplitView) applySizes(sizes []float64) {
	for i, it := range s.items {
		it.size = sizes[i]
	}
}

func (s *SplitView) priorityAt(i int) Priority { return s.items[i].view.Priority }

// distributionOrder is the deterministic visit order for space
// distribution: reverse index order, high-priority indices first,
// low-priority last, the deprioritized index very last.
func (s *SplitView) distributionOrder(deprioritized int) []int {
	order := make([]int, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		order = append(order, i)
	}
	return prioritize(order, s.priorityAt, deprioritized)
}

func (s *SplitView) captureProportions() {
	if s.size <= 0 {
		return
	}
	s.proportions = make([]float64, len(s.items))
	for i, it := range s.items {
		if it.view.ProportionalLayout && !it.hidden {
			s.proportions[i] = it.size / s.size
		} else {
			s.proportions[i] = math.NaN()
		}
	}
}

// AddView inserts a view at index, sized by the given strategy. Index must
// lie in [0, Len()].
func (s *SplitView) AddView(view View, sizing Sizing, index int) error {
	if index < 0 || index > len(s.items) {
		return ErrInvalidLocation
	}

	item := &splitItem{view: view}
	switch sizing.kind {
	case sizingInvisible:
		item.hidden = true
		item.cachedVisibleSize = clampf(sizing.cachedSize, view.MinimumSize, view.maxSize())
	case sizingSplit:
		if sizing.index < 0 || sizing.index >= len(s.items) {
			return ErrInvalidLocation
		}
		src := s.items[sizing.index]
		take := src.size - math.Max(src.minSize(), src.size/2)
		src.size -= take
		item.size = take
	default: // distribute, auto
		item.size = view.MinimumSize
	}

	s.items = append(s.items, nil)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = item

	if sizing.kind == sizingDistribute || sizing.kind == sizingAuto {
		if s.size > 0 {
			s.DistributeEmptySpace(s.size, -1)
		}
	}
	s.captureProportions()
	return nil
}

// RemoveView removes the view at index and redistributes its freed size to
// the remaining views, preserving total content size where bounds allow.
func (s *SplitView) RemoveView(index int) (View, error) {
	if index < 0 || index >= len(s.items) {
		return View{}, ErrInvalidLocation
	}
	contentBefore := s.ContentSize()
	view := s.items[index].view
	s.items = append(s.items[:index], s.items[index+1:]...)
	if len(s.items) > 0 {
		s.DistributeEmptySpace(contentBefore, -1)
	}
	s.captureProportions()
	return view, nil
}

// Resize moves the sash between views sash and sash+1 by delta. Views left
// of the sash form the up group, views right of it the down group; the
// delta is clamped to the tightest bound keeping every view inside its
// min/max, applied to the up group in priority order and mirrored on the
// down group. Total content size is unchanged. Returns the applied delta.
func (s *SplitView) Resize(sash int, delta float64) (float64, error) {
	if sash < 0 || sash >= len(s.items)-1 {
		return 0, ErrInvalidLocation
	}
	sizes, bounds := s.snapshot()

	upBase := make([]int, 0, sash+1)
	for i := sash; i >= 0; i-- {
		upBase = append(upBase, i)
	}
	downBase := make([]int, 0, len(s.items)-sash-1)
	for i := sash + 1; i < len(s.items); i++ {
		downBase = append(downBase, i)
	}

	var upMin, upMax, downMin, downMax float64
	for _, i := range upBase {
		upMin += bounds[i].min - sizes[i]
		upMax += bounds[i].max - sizes[i]
	}
	for _, i := range downBase {
		downMin += sizes[i] - bounds[i].max
		downMax += sizes[i] - bounds[i].min
	}
	delta = clampf(delta, math.Max(upMin, downMin), math.Min(upMax, downMax))

	up := prioritize(upBase, s.priorityAt, -1)
	down := prioritize(downBase, s.priorityAt, -1)
	next, _ := redistribute(sizes, bounds, up, delta)
	next, _ = redistribute(next, bounds, down, -delta)
	s.applySizes(next)
	s.captureProportions()
	return delta, nil
}

// DistributeEmptySpace grows or shrinks views until total content size
// reaches targetTotal or no view can absorb more. The view at
// deprioritized (-1 for none) is touched last. Returns the delta applied.
func (s *SplitView) DistributeEmptySpace(targetTotal float64, deprioritized int) float64 {
	sizes, bounds := s.snapshot()
	next, applied := redistribute(sizes, bounds, s.distributionOrder(deprioritized), targetTotal-s.ContentSize())
	s.applySizes(next)
	s.captureProportions()
	return applied
}

// Layout resizes the container. Proportional views are rescaled to their
// captured fraction of the new size; the remaining gap is distributed.
func (s *SplitView) Layout(size float64) {
	previous := s.size
	s.size = size
	if previous > 0 && len(s.proportions) == len(s.items) {
		for i, it := range s.items {
			p := s.proportions[i]
			if !math.IsNaN(p) {
				it.size = clampf(p*size, it.minSize(), it.maxSize())
			}
		}
	}
	s.DistributeEmptySpace(size, -1)
}

// ResizeView sets the view at index to the given size, clamped to its
// bounds; the other views absorb the difference.
func (s *SplitView) ResizeView(index int, size float64) error {
	if index < 0 || index >= len(s.items) {
		return ErrInvalidLocation
	}
	it := s.items[index]
	if it.hidden {
		it.cachedVisibleSize = clampf(size, it.view.MinimumSize, it.view.maxSize())
		return nil
	}
	contentBefore := s.ContentSize()
	it.size = clampf(size, it.minSize(), it.maxSize())
	s.DistributeEmptySpace(contentBefore, index)
	return nil
}

// SetViewVisible hides or restores the view at index. Hiding contributes
// the view's size to its neighbours and remembers it; showing takes the
// remembered size back from them.
func (s *SplitView) SetViewVisible(index int, visible bool) error {
	if index < 0 || index >= len(s.items) {
		return ErrInvalidLocation
	}
	it := s.items[index]
	if visible == !it.hidden {
		return nil
	}
	contentBefore := s.ContentSize()
	if visible {
		it.hidden = false
		it.size = clampf(it.cachedVisibleSize, it.minSize(), it.maxSize())
		s.DistributeEmptySpace(contentBefore, index)
	} else {
		it.cachedVisibleSize = it.size
		it.hidden = true
		it.size = 0
		s.DistributeEmptySpace(contentBefore, -1)
	}
	s.captureProportions()
	return nil
}
