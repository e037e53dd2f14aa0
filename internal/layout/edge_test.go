package layout

import "testing"

func TestDetectEdgeDirection(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 200, Height: 200}

	tests := []struct {
		name           string
		x, y           float64
		preferVertical bool
		want           Direction
	}{
		{name: "top edge", x: 100, y: 15, want: DirectionUp},
		{name: "bottom edge", x: 100, y: 185, want: DirectionDown},
		{name: "left edge", x: 15, y: 100, want: DirectionLeft},
		{name: "right edge", x: 185, y: 100, want: DirectionRight},
		{name: "center is merge zone", x: 100, y: 100, want: DirectionNone},
		{name: "center prefer vertical", x: 100, y: 100, preferVertical: true, want: DirectionNone},

		// On the border but outside the generous zone of the preferred
		// axis, the midpoint of the other axis decides.
		{name: "left border upper half", x: 10, y: 50, want: DirectionLeft},
		{name: "left border upper half vertical", x: 10, y: 50, preferVertical: true, want: DirectionUp},
		{name: "top border right half", x: 150, y: 10, want: DirectionRight},
		{name: "top border right half vertical", x: 150, y: 10, preferVertical: true, want: DirectionUp},
		{name: "bottom border left half", x: 80, y: 195, want: DirectionDown},
		{name: "left border lower third vertical", x: 10, y: 190, preferVertical: true, want: DirectionDown},

		{name: "left of rect", x: -5, y: 100, want: DirectionNone},
		{name: "right of rect", x: 250, y: 100, want: DirectionNone},
		{name: "above rect", x: 100, y: -1, want: DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectEdgeDirection(tt.x, tt.y, rect, tt.preferVertical, nil)
			if got != tt.want {
				t.Errorf("DetectEdgeDirection(%v, %v, preferVertical=%v) = %v, want %v",
					tt.x, tt.y, tt.preferVertical, got, tt.want)
			}
		})
	}
}

func TestDetectEdgeDirectionOffsetRect(t *testing.T) {
	rect := Rect{X: 300, Y: 100, Width: 200, Height: 200}
	if got := DetectEdgeDirection(400, 115, rect, false, nil); got != DirectionUp {
		t.Errorf("offset rect top edge = %v, want up", got)
	}
	if got := DetectEdgeDirection(100, 15, rect, false, nil); got != DirectionNone {
		t.Errorf("point outside offset rect = %v, want none", got)
	}
}

func TestDetectSplitOrientationOverride(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 200, Height: 200}
	horizontal := Horizontal
	vertical := Vertical

	// A horizontal split already divides left/right, so the detector
	// steers the next split toward up/down, and vice versa. The explicit
	// preference is ignored.
	d := EdgeDetector{}
	if got := d.Detect(10, 50, rect, false, &horizontal); got != DirectionUp {
		t.Errorf("horizontal split context = %v, want up", got)
	}
	if got := d.Detect(50, 10, rect, true, &vertical); got != DirectionLeft {
		t.Errorf("vertical split context = %v, want left", got)
	}
}

func TestDetectCustomThresholds(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	d := EdgeDetector{EdgeFraction: 0.25, SplitFraction: 0.5}

	// With a 25% border the point (30, 50) sits inside the inner box.
	if got := d.Detect(30, 50, rect, false, nil); got != DirectionNone {
		t.Errorf("inside widened inner box = %v, want none", got)
	}
	if got := d.Detect(10, 40, rect, false, nil); got != DirectionLeft {
		t.Errorf("border point = %v, want left", got)
	}
}

func TestDirectionHelpers(t *testing.T) {
	tests := []struct {
		dir         Direction
		orientation Orientation
		before      bool
		str         string
	}{
		{DirectionUp, Vertical, true, "up"},
		{DirectionDown, Vertical, false, "down"},
		{DirectionLeft, Horizontal, true, "left"},
		{DirectionRight, Horizontal, false, "right"},
	}
	for _, tt := range tests {
		if got := tt.dir.Orientation(); got != tt.orientation {
			t.Errorf("%v.Orientation() = %v, want %v", tt.dir, got, tt.orientation)
		}
		if got := tt.dir.Before(); got != tt.before {
			t.Errorf("%v.Before() = %v, want %v", tt.dir, got, tt.before)
		}
		if got := tt.dir.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
	if got := DirectionNone.String(); got != "none" {
		t.Errorf("DirectionNone.String() = %q, want none", got)
	}
}
