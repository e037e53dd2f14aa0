// Package app implements the interactive shell: a bubbletea program that
// renders the panel grid, routes keyboard and mouse input, and supervises
// the agent and terminal panes living in it.
package app

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gridos/gridos/internal/agent"
	"github.com/gridos/gridos/internal/config"
	"github.com/gridos/gridos/internal/layout"
	"github.com/gridos/gridos/internal/panel"
	"github.com/gridos/gridos/internal/workspace"
)

// LayoutKey is the storage key the shell persists its layout under.
const LayoutKey = "layout"

const statusBarHeight = 1

// agentPayload is the opaque tab payload for agent tabs.
type agentPayload struct {
	Agent string `json:"agent"`
}

// sashDrag tracks an in-progress border drag between two panes.
type sashDrag struct {
	groupID     string
	orientation layout.Orientation
	lastX       int
	lastY       int
}

// renderedLeaf is a leaf rectangle rounded to terminal cells, cached per
// frame for mouse hit testing.
type renderedLeaf struct {
	info panel.LeafInfo
	x, y int
	w, h int
}

// sysStats is the sampled host load shown in the status bar.
type sysStats struct {
	cpuPercent float64
	memPercent float64
	valid      bool
}

// Shell is the bubbletea model for the whole application.
type Shell struct {
	cfg      *config.Config
	registry *agent.Registry
	store    workspace.Store
	manager  *panel.Manager

	width  int
	height int
	ready  bool

	panes    map[string]*agent.Pane      // keyed by tab id
	guards   map[string]*layout.FlapGuard // keyed by tab id
	exitChan chan string

	detector layout.EdgeDetector
	drag     *panel.DragSession
	dragDir  layout.Direction
	sash     *sashDrag

	leaves []renderedLeaf

	helpVisible bool
	notice      string
	noticeUntil time.Time
	stats       sysStats

	now func() time.Time
}

// NewShell wires the application model. The layout is restored (or
// created) on the first window size message, once the viewport is known.
func NewShell(cfg *config.Config, store workspace.Store) *Shell {
	return &Shell{
		cfg:      cfg,
		registry: agent.NewRegistry(cfg.Agents),
		store:    store,
		panes:    make(map[string]*agent.Pane),
		guards:   make(map[string]*layout.FlapGuard),
		exitChan: make(chan string, 16),
		detector: layout.EdgeDetector{
			EdgeFraction:  cfg.Layout.EdgeFraction,
			SplitFraction: cfg.Layout.SplitFraction,
		},
		now: time.Now,
	}
}

// panelOptions maps the layout config onto the panel manager.
func (s *Shell) panelOptions() panel.Options {
	return panel.Options{
		MaxGroupsPerBranch:       s.cfg.Layout.MaxGroupsPerBranch,
		MaxEditorGroupsPerBranch: s.cfg.Layout.MaxEditorGroupsPerBranch,
		MinPaneSize:              float64(s.cfg.Layout.MinPaneSize),
		Detector:                 s.detector,
	}
}

// gridHeight is the viewport share owned by the panel grid.
func (s *Shell) gridHeight() int {
	h := s.height
	if s.cfg.Appearance.ShowStatusBar {
		h -= statusBarHeight
	}
	return max(h, 1)
}

// setViewport (re)creates or relays the panel grid for a new terminal
// size.
func (s *Shell) setViewport(width, height int) {
	s.width = width
	s.height = height
	if !s.ready {
		if s.cfg.Layout.Persist {
			s.manager = workspace.RestoreManager(s.store, LayoutKey, float64(width), float64(s.gridHeight()), s.panelOptions())
		} else {
			s.manager = panel.NewManager(float64(width), float64(s.gridHeight()), s.panelOptions())
		}
		s.ready = true
		s.ensureFocusedTab()
	} else {
		s.manager.Layout(float64(width), float64(s.gridHeight()))
	}
	s.applyPaneGeometry()
}

// ensureFocusedTab opens the default agent in the focused group when it
// is empty, so a fresh session starts with something running.
func (s *Shell) ensureFocusedTab() {
	g, ok := s.manager.Group(s.manager.FocusedGroupID())
	if !ok || len(g.Tabs) > 0 {
		return
	}
	s.openAgentTab(g.ID, s.registry.Default())
}

// Interacting reports whether a tab or sash drag is in progress. The
// program's message filter uses it to drop idle mouse motion events.
func (s *Shell) Interacting() bool {
	return s.drag != nil || s.sash != nil
}

// notify shows a transient message in the status bar.
func (s *Shell) notify(msg string) {
	s.notice = msg
	s.noticeUntil = s.now().Add(3 * time.Second)
}

// persist saves the layout, best-effort.
func (s *Shell) persist() {
	if !s.ready || !s.cfg.Layout.Persist {
		return
	}
	workspace.Save(s.store, LayoutKey, s.manager)
}

// Close tears down every running pane.
func (s *Shell) Close() {
	for _, p := range s.panes {
		p.Close()
	}
}

// shellAgent describes the plain shell launched for terminal tabs.
func shellAgent() agent.Agent {
	sh := os.Getenv("SHELL")
	if sh == "" {
		for _, candidate := range []string{"/bin/bash", "/bin/zsh", "/bin/sh"} {
			if _, err := os.Stat(candidate); err == nil {
				sh = candidate
				break
			}
		}
	}
	if sh == "" {
		sh = "/bin/sh"
	}
	return agent.Agent{Name: "shell", Command: sh}
}

func agentTabData(name string) json.RawMessage {
	data, _ := json.Marshal(agentPayload{Agent: name})
	return data
}

func agentNameFromData(data json.RawMessage) string {
	var payload agentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Agent
}
