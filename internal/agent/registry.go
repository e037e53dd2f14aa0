// Package agent launches and supervises coding-agent CLIs and shells
// inside PTY-backed panes.
package agent

import (
	"os/exec"
	"sort"

	"github.com/gridos/gridos/internal/config"
)

// Agent describes one launchable CLI.
type Agent struct {
	Name    string
	Command string
	Args    []string
	Env     []string
}

// builtins are the agent CLIs known out of the box. User config entries
// with the same name override them.
func builtins() []Agent {
	return []Agent{
		{Name: "claude", Command: "claude"},
		{Name: "aider", Command: "aider"},
		{Name: "goose", Command: "goose", Args: []string{"session"}},
		{Name: "codex", Command: "codex"},
		{Name: "opencode", Command: "opencode"},
	}
}

// Registry resolves agent names to launch specs.
type Registry struct {
	agents      map[string]Agent
	defaultName string
}

// NewRegistry merges the built-in agents with the user's custom entries.
func NewRegistry(cfg config.AgentsConfig) *Registry {
	r := &Registry{
		agents:      make(map[string]Agent),
		defaultName: cfg.Default,
	}
	for _, a := range builtins() {
		r.agents[a.Name] = a
	}
	for name, c := range cfg.Custom {
		if name == "" || c.Command == "" {
			continue
		}
		r.agents[name] = Agent{Name: name, Command: c.Command, Args: c.Args, Env: c.Env}
	}
	if _, ok := r.agents[r.defaultName]; !ok {
		r.defaultName = "claude"
	}
	return r
}

// Get looks an agent up by name.
func (r *Registry) Get(name string) (Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Default returns the configured default agent.
func (r *Registry) Default() Agent {
	return r.agents[r.defaultName]
}

// List returns all known agents sorted by name.
func (r *Registry) List() []Agent {
	out := make([]Agent, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Available reports whether the agent's command is on PATH.
func Available(a Agent) bool {
	_, err := exec.LookPath(a.Command)
	return err == nil
}
