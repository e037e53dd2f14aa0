package app

import (
	"log"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/gridos/gridos/internal/agent"
	"github.com/gridos/gridos/internal/config"
	"github.com/gridos/gridos/internal/layout"
	"github.com/gridos/gridos/internal/theme"
)

// TickerMsg drives periodic re-renders so pane output stays live.
type TickerMsg time.Time

// PaneExitMsg signals that a pane's process has exited.
type PaneExitMsg struct {
	TabID string
}

// ConfigReloadedMsg carries a freshly reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}

const renderFPS = 30

// TickCmd schedules the next render tick.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/renderFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// ListenForPaneExits converts pane exit signals to messages.
func ListenForPaneExits(exitChan chan string) tea.Cmd {
	return func() tea.Msg {
		tabID, ok := <-exitChan
		if !ok {
			return nil
		}
		return PaneExitMsg{TabID: tabID}
	}
}

// Init starts the tick loop, the exit listener and the first system
// stats sample.
func (s *Shell) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		ListenForPaneExits(s.exitChan),
		SysStatsCmd(),
	)
}

// Update handles all incoming messages.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.setViewport(msg.Width, msg.Height)
		return s, nil

	case TickerMsg:
		if s.notice != "" && s.now().After(s.noticeUntil) {
			s.notice = ""
		}
		return s, TickCmd()

	case SysStatsMsg:
		s.stats = sysStats(msg)
		return s, SysStatsTickCmd()

	case ConfigReloadedMsg:
		if msg.Config != nil {
			s.cfg = msg.Config
			ApplyTheme(s.cfg.Appearance.Theme)
			s.registry = agent.NewRegistry(s.cfg.Agents)
			s.detector = layout.EdgeDetector{
				EdgeFraction:  s.cfg.Layout.EdgeFraction,
				SplitFraction: s.cfg.Layout.SplitFraction,
			}
			if s.ready {
				s.manager.Layout(float64(s.width), float64(s.gridHeight()))
				s.applyPaneGeometry()
			}
			s.notify("configuration reloaded")
		}
		return s, nil

	case PaneExitMsg:
		if p, ok := s.panes[msg.TabID]; ok && !p.Running() {
			s.notify(p.Title + " exited")
		}
		return s, ListenForPaneExits(s.exitChan)

	case tea.KeyPressMsg:
		return s.handleKey(msg)

	case tea.MouseClickMsg:
		return s.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return s.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return s.handleMouseRelease(msg)
	}
	return s, nil
}

// ApplyTheme initializes theming from the configured theme id.
func ApplyTheme(name string) {
	if err := theme.Initialize(name); err != nil {
		log.Printf("warning: theme %q: %v", name, err)
	}
}
