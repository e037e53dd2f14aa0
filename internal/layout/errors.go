package layout

import "errors"

var (
	// ErrInvalidLocation is returned when an operation addresses a view or
	// grid node that does not exist. The tree is left unchanged.
	ErrInvalidLocation = errors.New("layout: invalid location")

	// ErrSerialization is returned when a persisted layout document is
	// structurally invalid.
	ErrSerialization = errors.New("layout: malformed layout document")
)
