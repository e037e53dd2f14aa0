// Package panel manages tabbed panel groups living at the leaves of a
// layout grid: splitting, closing, moving tabs between groups and the
// drag-and-drop sampling that decides between a split and a move.
package panel

import "encoding/json"

// Kind classifies what a tab renders. The engine never branches on it
// except when migrating persisted documents.
type Kind string

const (
	KindAgent    Kind = "agent"
	KindTerminal Kind = "terminal"
	KindEditor   Kind = "editor"
	KindFileTree Kind = "fileTree"
)

// Valid reports whether the kind is one the host knows how to render.
func (k Kind) Valid() bool {
	switch k {
	case KindAgent, KindTerminal, KindEditor, KindFileTree:
		return true
	}
	return false
}

// Tab is one tabbed content slot. Data is an opaque payload owned by the
// host; the layout engine round-trips it without inspection. A tab is
// owned by exactly one group at a time.
type Tab struct {
	ID     string          `json:"id"`
	Kind   Kind            `json:"kind"`
	Title  string          `json:"title"`
	Dirty  bool            `json:"dirty,omitempty"`
	Pinned bool            `json:"pinned,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}
