// Package main implements gridos, a terminal shell that runs AI coding
// agents and terminals side by side in a resizable panel grid.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	cpuProfile string
	themeName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridos",
		Short: "Agent grid for your terminal",
		Long: `gridos - agent grid for your terminal

A terminal shell that runs AI coding agents and plain terminals side by
side in a resizable panel grid. Split panes with the keyboard or by
dragging tabs to pane edges; the layout persists across sessions.`,
		Example: `  # Run gridos
  gridos

  # Run with a different theme
  gridos --theme dracula

  # Run with CPU profiling
  gridos --cpuprofile cpu.prof

  # List available agents
  gridos agents

  # List all keybindings
  gridos keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Override the configured theme")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gridos configuration",
		Long:  `Manage the gridos configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configResetCmd := &cobra.Command{
		Use:     "reset",
		Aliases: []string{"init"},
		Short:   "Reset configuration to defaults",
		Long: `Reset the gridos configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configResetCmd)

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect the persisted panel layout",
	}

	layoutShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the persisted panel layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showLayout()
		},
	}

	layoutResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the persisted panel layout",
		Long: `Discard the persisted panel layout

The next gridos session starts with a single pane.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetLayout()
		},
	}

	layoutCmd.AddCommand(layoutShowCmd, layoutResetCmd)

	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "List configured agents",
		Long:  `Display the configured agents and whether their commands are installed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAgents()
		},
	}

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybindings",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	rootCmd.AddCommand(configCmd, layoutCmd, agentsCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s (yes/no): ", prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "yes" || response == "y"
}
