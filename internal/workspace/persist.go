package workspace

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gridos/gridos/internal/layout"
	"github.com/gridos/gridos/internal/panel"
)

// DocumentVersion is the current persisted document format.
const DocumentVersion = 2

// Document is the version 2 durable form: the serialized grid plus the
// panel groups keyed by group id.
type Document struct {
	Version        int                     `json:"version"`
	GridState      layout.SerializedGrid   `json:"gridState"`
	PanelGroupsMap map[string]*panel.Group `json:"panelGroupsMap"`
	Timestamp      int64                   `json:"timestamp"`
}

// LegacyLayout is the flat one-axis layout of version 1 documents.
type LegacyLayout struct {
	Direction string    `json:"direction"`
	Sizes     []float64 `json:"sizes"`
}

// LegacyDocument is the version 1 shape: a flat group list instead of a
// tree. It has no version key.
type LegacyDocument struct {
	PanelGroups []*panel.Group `json:"panelGroups"`
	PanelLayout LegacyLayout   `json:"panelLayout"`
	Timestamp   int64          `json:"timestamp"`
}

// LoadResult is the outcome of reading a persisted layout. Exactly one
// of Grid or Legacy is set unless Fresh is true.
type LoadResult struct {
	Grid   *layout.GridState
	Groups []*panel.Group
	Legacy *LegacyDocument
	Fresh  bool
}

// Save writes the manager's current state under key. Saving is
// best-effort: failures are logged and in-memory state stays authoritative.
func Save(store Store, key string, m *panel.Manager) {
	m.Grid().Normalize()
	doc := Document{
		Version:        DocumentVersion,
		GridState:      m.Grid().Serialize(),
		PanelGroupsMap: make(map[string]*panel.Group),
		Timestamp:      time.Now().UnixMilli(),
	}
	for _, g := range m.Groups() {
		doc.PanelGroupsMap[g.ID] = g
	}
	data, err := json.Marshal(doc)
	if err != nil {
		log.Printf("warning: serialize layout: %v", err)
		return
	}
	if err := store.Set(key, string(data)); err != nil {
		log.Printf("warning: save layout: %v", err)
	}
}

// Clear removes the persisted layout under key.
func Clear(store Store, key string) error {
	return store.Delete(key)
}

// Load reads and migrates the persisted layout under key. Any document
// it cannot make sense of degrades to Fresh rather than an error.
func Load(store Store, key string) LoadResult {
	raw, ok := store.Get(key)
	if !ok {
		return LoadResult{Fresh: true}
	}

	var probe struct {
		Version   int             `json:"version"`
		GridState json.RawMessage `json:"gridState"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		log.Printf("warning: unreadable layout document, starting fresh: %v", err)
		return LoadResult{Fresh: true}
	}

	if probe.Version == DocumentVersion || len(probe.GridState) > 0 {
		return loadV2(raw)
	}
	return loadV1(raw)
}

func loadV2(raw string) LoadResult {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		log.Printf("warning: malformed layout document, starting fresh: %v", err)
		return LoadResult{Fresh: true}
	}
	grid, err := layout.DeserializeGrid(doc.GridState)
	if err != nil {
		log.Printf("warning: malformed grid state, starting fresh: %v", err)
		return LoadResult{Fresh: true}
	}

	groups := make([]*panel.Group, 0, len(doc.PanelGroupsMap))
	for _, leaf := range layout.AllLeaves(grid.Root) {
		g, ok := doc.PanelGroupsMap[leaf.GroupID]
		if !ok || g == nil {
			log.Printf("warning: layout leaf %s has no panel group, starting fresh", leaf.GroupID)
			return LoadResult{Fresh: true}
		}
		g.ID = leaf.GroupID
		groups = append(groups, g)
	}
	migrateGroups(groups)
	return LoadResult{Grid: grid, Groups: groups}
}

func loadV1(raw string) LoadResult {
	var doc LegacyDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || len(doc.PanelGroups) == 0 {
		if err != nil {
			log.Printf("warning: malformed legacy layout, starting fresh: %v", err)
		}
		return LoadResult{Fresh: true}
	}
	for _, g := range doc.PanelGroups {
		if g == nil || g.ID == "" {
			return LoadResult{Fresh: true}
		}
	}
	migrateGroups(doc.PanelGroups)
	return LoadResult{Legacy: &doc}
}

// ConvertV1 builds a grid for a legacy flat layout: all groups along one
// axis, sized by the persisted weights when they line up, evenly
// otherwise.
func ConvertV1(doc *LegacyDocument, width, height float64) (*layout.GridState, []*panel.Group) {
	groups := doc.PanelGroups
	if len(groups) == 1 {
		return layout.NewGridState(groups[0].ID, width, height), groups
	}

	orientation := layout.Horizontal
	if doc.PanelLayout.Direction == "vertical" {
		orientation = layout.Vertical
	}
	extent := width
	if orientation == layout.Vertical {
		extent = height
	}

	weights := doc.PanelLayout.Sizes
	if len(weights) != len(groups) {
		weights = nil
	}
	var totalWeight float64
	for _, w := range weights {
		if w <= 0 {
			weights = nil
			break
		}
		totalWeight += w
	}

	children := make([]layout.GridNode, len(groups))
	sizes := make([]float64, len(groups))
	for i, g := range groups {
		children[i] = &layout.Leaf{GroupID: g.ID}
		if weights == nil {
			sizes[i] = extent / float64(len(groups))
		} else {
			sizes[i] = extent * weights[i] / totalWeight
		}
	}
	grid := &layout.GridState{
		Root:        &layout.Branch{Orientation: orientation, Children: children, Sizes: sizes, Size: extent},
		Orientation: orientation,
		Width:       width,
		Height:      height,
	}
	grid.Normalize()
	return grid, groups
}

// RestoreManager loads, migrates and rebuilds the panel manager for a
// viewport. It never fails: anything unusable falls back to a fresh
// single-leaf layout.
func RestoreManager(store Store, key string, width, height float64, opts panel.Options) *panel.Manager {
	res := Load(store, key)
	switch {
	case res.Fresh:
		return panel.NewManager(width, height, opts)
	case res.Legacy != nil:
		grid, groups := ConvertV1(res.Legacy, width, height)
		if m, err := panel.Restore(grid, groups, opts); err == nil {
			return m
		}
	default:
		res.Grid.SetViewport(width, height)
		if m, err := panel.Restore(res.Grid, res.Groups, opts); err == nil {
			return m
		}
	}
	log.Printf("warning: persisted layout unusable, starting fresh")
	return panel.NewManager(width, height, opts)
}
