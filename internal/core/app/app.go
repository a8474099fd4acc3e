// Package app wires configuration, the discovery provider and the analysis
// engine into the application services exposed to the CLI and the tool
// server.
package app

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"depcycle/internal/core/config"
	"depcycle/internal/core/ports"
	"depcycle/internal/engine/graph"
)

type App struct {
	Config   *config.Config
	Provider ports.GraphProvider

	excludes []glob.Glob
}

func New(cfg *config.Config, provider ports.GraphProvider) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	excludes := make([]glob.Glob, 0, len(cfg.Exclude.Nodes))
	for _, pattern := range cfg.Exclude.Nodes {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}

	return &App{
		Config:   cfg,
		Provider: provider,
		excludes: excludes,
	}, nil
}

// excluded reports whether a node id matches any configured exclude pattern.
func (a *App) excluded(id string) bool {
	for _, g := range a.excludes {
		if g.Match(id) {
			return true
		}
	}
	return false
}

// filterSnapshot drops excluded nodes and every edge touching them before the
// graph is built.
func (a *App) filterSnapshot(s graph.Snapshot) graph.Snapshot {
	if len(a.excludes) == 0 {
		return s
	}

	out := graph.Snapshot{
		Nodes: make([]graph.Node, 0, len(s.Nodes)),
		Edges: make([]graph.Edge, 0, len(s.Edges)),
	}
	for _, n := range s.Nodes {
		if a.excluded(n.ID) {
			continue
		}
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range s.Edges {
		if a.excluded(e.Source) || a.excluded(e.Target) {
			continue
		}
		out.Edges = append(out.Edges, e)
	}
	return out
}

func (a *App) ProviderName() string {
	if a.Provider == nil {
		return "none"
	}
	return strings.TrimSpace(a.Provider.Name())
}
