package layout

import "fmt"

// Node type tags in the serialized tree.
const (
	nodeTypeLeaf   = "leaf"
	nodeTypeBranch = "branch"
)

// SerializedNode is the plain-document form of a grid node.
type SerializedNode struct {
	Type        string           `json:"type"`
	GroupID     string           `json:"groupId,omitempty"`
	Orientation string           `json:"orientation,omitempty"`
	Size        float64          `json:"size"`
	Children    []SerializedNode `json:"children,omitempty"`
}

// SerializedGrid is the plain-document form of a GridState.
type SerializedGrid struct {
	Root        SerializedNode `json:"root"`
	Orientation string         `json:"orientation"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
}

// Serialize converts the grid to its storable document form. Together with
// DeserializeGrid it satisfies the round-trip law: deserializing the
// serialization of a normalized grid yields a structurally equal grid.
func (g *GridState) Serialize() SerializedGrid {
	return SerializedGrid{
		Root:        serializeNode(g.Root),
		Orientation: g.Orientation.String(),
		Width:       g.Width,
		Height:      g.Height,
	}
}

func serializeNode(n GridNode) SerializedNode {
	switch node := n.(type) {
	case *Leaf:
		return SerializedNode{Type: nodeTypeLeaf, GroupID: node.GroupID, Size: node.Size}
	case *Branch:
		out := SerializedNode{
			Type:        nodeTypeBranch,
			Orientation: node.Orientation.String(),
			Size:        node.Size,
			Children:    make([]SerializedNode, len(node.Children)),
		}
		for i, child := range node.Children {
			out.Children[i] = serializeNode(child)
			// A child's document size is its slot in the parent, which for
			// branches differs from their own-axis Size field.
			out.Children[i].Size = node.Sizes[i]
		}
		return out
	}
	return SerializedNode{}
}

// DeserializeGrid rebuilds a GridState from its document form, validating
// structure as it goes. Failures wrap ErrSerialization.
func DeserializeGrid(doc SerializedGrid) (*GridState, error) {
	orientation, err := parseOrientation(doc.Orientation)
	if err != nil {
		return nil, err
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, fmt.Errorf("%w: negative viewport", ErrSerialization)
	}
	root, err := deserializeNode(doc.Root)
	if err != nil {
		return nil, err
	}
	g := &GridState{Root: root, Orientation: orientation, Width: doc.Width, Height: doc.Height}
	if b, ok := root.(*Branch); ok {
		g.Orientation = b.Orientation
	}
	return g, nil
}

func deserializeNode(doc SerializedNode) (GridNode, error) {
	switch doc.Type {
	case nodeTypeLeaf:
		if doc.GroupID == "" {
			return nil, fmt.Errorf("%w: leaf without group id", ErrSerialization)
		}
		return &Leaf{GroupID: doc.GroupID, Size: doc.Size}, nil
	case nodeTypeBranch:
		orientation, err := parseOrientation(doc.Orientation)
		if err != nil {
			return nil, err
		}
		if len(doc.Children) < 2 {
			return nil, fmt.Errorf("%w: branch with %d children", ErrSerialization, len(doc.Children))
		}
		branch := &Branch{
			Orientation: orientation,
			Children:    make([]GridNode, len(doc.Children)),
			Sizes:       make([]float64, len(doc.Children)),
			Size:        0,
		}
		for i, childDoc := range doc.Children {
			child, err := deserializeNode(childDoc)
			if err != nil {
				return nil, err
			}
			branch.Children[i] = child
			branch.Sizes[i] = childDoc.Size
			branch.Size += childDoc.Size
			// Branch children carry their own-axis size in the Size field;
			// leaves mirror the parent slot directly.
			if leaf, ok := child.(*Leaf); ok {
				leaf.Size = childDoc.Size
			}
		}
		return branch, nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %q", ErrSerialization, doc.Type)
	}
}

func parseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: unknown orientation %q", ErrSerialization, s)
	}
}
