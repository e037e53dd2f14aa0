package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"

	"github.com/adrg/xdg"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/gridos/gridos/internal/agent"
	"github.com/gridos/gridos/internal/app"
	"github.com/gridos/gridos/internal/config"
	"github.com/gridos/gridos/internal/workspace"
)

// filterMouseMotion drops mouse motion events outside of drags to keep
// idle CPU usage down.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	shell, ok := model.(*app.Shell)
	if !ok {
		return msg
	}
	if shell.Interacting() {
		return msg
	}
	return nil
}

func runLocal() error {
	if debugMode {
		_ = os.Setenv("GRIDOS_DEBUG_INTERNAL", "1")
		if logPath, err := xdg.StateFile(filepath.Join("gridos", "gridos.log")); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				log.SetOutput(f)
				defer f.Close()
			}
		}
		fmt.Println("Debug mode enabled")
	} else {
		// The alt screen owns stderr while the program runs; drop
		// warnings unless debugging.
		log.SetOutput(io.Discard)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Printf("warning: close CPU profile file: %v", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("warning: failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if themeName != "" {
		cfg.Appearance.Theme = themeName
	}
	app.ApplyTheme(cfg.Appearance.Theme)

	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
	}

	var store workspace.Store
	fileStore, err := workspace.NewFileStore("gridos")
	if err != nil {
		log.Printf("warning: layout persistence unavailable: %v", err)
		store = workspace.NewMemStore()
	} else {
		store = fileStore
	}

	shell := app.NewShell(cfg, store)

	p := tea.NewProgram(
		shell,
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go config.Watch(ctx, func(next *config.Config) {
		p.Send(app.ConfigReloadedMsg{Config: next})
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	_, err = p.Run()
	shell.Close()

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func resetConfigToDefaults() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("This will overwrite your existing configuration at:\n  %s\n\n", configPath)
		if !confirm("Are you sure you want to reset to defaults?") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteDefaultConfig(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Println("Configuration reset to defaults")
	fmt.Printf("  Location: %s\n", configPath)
	return nil
}

func showLayout() error {
	store, err := workspace.NewFileStore("gridos")
	if err != nil {
		return fmt.Errorf("could not open layout store: %w", err)
	}

	result := workspace.Load(store, app.LayoutKey)
	switch {
	case result.Fresh:
		fmt.Println("No persisted layout; the next session starts with a single pane.")
		return nil
	case result.Legacy != nil:
		fmt.Printf("Legacy layout: %d panel group(s), split %s\n",
			len(result.Legacy.PanelGroups), result.Legacy.PanelLayout.Direction)
		return nil
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := [][]string{}
	for _, g := range result.Groups {
		tabs := make([]string, 0, len(g.Tabs))
		for _, t := range g.Tabs {
			name := fmt.Sprintf("%s (%s)", t.Title, t.Kind)
			if t.ID == g.ActiveTabID {
				name += " *"
			}
			tabs = append(tabs, name)
		}
		rows = append(rows, []string{
			g.ID,
			fmt.Sprintf("%.0f%%", g.Percentage*100),
			fmt.Sprintf("%d", len(g.Tabs)),
			fmt.Sprintf("%v", tabs),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Group", "Area", "Tabs", "Contents").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Printf("Persisted layout: %d panel group(s)\n", len(result.Groups))
	fmt.Println(t.Render())
	return nil
}

func resetLayout() error {
	store, err := workspace.NewFileStore("gridos")
	if err != nil {
		return fmt.Errorf("could not open layout store: %w", err)
	}
	if err := workspace.Clear(store, app.LayoutKey); err != nil {
		return fmt.Errorf("could not discard layout: %w", err)
	}
	fmt.Println("Persisted layout discarded.")
	return nil
}

func listAgents() error {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("warning: failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	registry := agent.NewRegistry(cfg.Agents)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := [][]string{}
	for _, a := range registry.List() {
		name := a.Name
		if a.Name == registry.Default().Name {
			name += " (default)"
		}
		installed := "no"
		if agent.Available(a) {
			installed = "yes"
		}
		rows = append(rows, []string{name, a.Command, installed})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Agent", "Command", "Installed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Println(t.Render())
	return nil
}

func listKeybindings() error {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("gridos Keybindings"))
	fmt.Println()

	for _, section := range config.GetKeybindings() {
		rows := [][]string{}
		for _, kb := range section.Bindings {
			rows = append(rows, []string{kb.Key, kb.Description})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}
