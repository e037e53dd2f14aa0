package panel

import "errors"

var (
	// ErrCannotCloseLastPanel is returned when closing the only leaf.
	ErrCannotCloseLastPanel = errors.New("panel: cannot close the last panel")
	// ErrMaxSplitDepthExceeded is returned when a split would push a
	// branch past the configured sibling limit.
	ErrMaxSplitDepthExceeded = errors.New("panel: maximum split count exceeded")
	// ErrUnknownGroup is returned for operations addressing a group id
	// the manager does not own.
	ErrUnknownGroup = errors.New("panel: unknown group")
	// ErrUnknownTab is returned for operations addressing a tab id not
	// present in the addressed group.
	ErrUnknownTab = errors.New("panel: unknown tab")
)
