package cycles

import (
	"fmt"

	"depcycle/internal/engine/graph"
)

// Strategy is one independent way of finding cycles in a graph. The three
// shipped strategies evolved separately and overlap on purpose; their pooled
// output is deduplicated afterwards by the normalizer.
type Strategy interface {
	Name() string
	Find(g *graph.Graph) []Cycle
}

// Selection names a configured strategy set.
type Selection string

const (
	SelectDFS           Selection = "dfs"
	SelectTarjan        Selection = "tarjan"
	SelectComprehensive Selection = "comprehensive"
)

// ParseSelection validates a detection-method string, defaulting to
// comprehensive when empty.
func ParseSelection(raw string) (Selection, error) {
	switch Selection(raw) {
	case SelectDFS, SelectTarjan, SelectComprehensive:
		return Selection(raw), nil
	case "":
		return SelectComprehensive, nil
	default:
		return "", fmt.Errorf("unknown detection method %q; must be one of: dfs, tarjan, comprehensive", raw)
	}
}

// Finder runs a strategy set over a graph and pools the results in strategy
// order. Output order feeds the normalizer's first-seen dedup, so the
// strategy sequence (dfs, tarjan, tracers) is load-bearing.
type Finder struct {
	strategies []Strategy
}

func NewFinder(selection Selection) *Finder {
	switch selection {
	case SelectDFS:
		return &Finder{strategies: []Strategy{DFS{}}}
	case SelectTarjan:
		return &Finder{strategies: []Strategy{Tarjan{}}}
	default:
		return &Finder{strategies: []Strategy{DFS{}, Tarjan{}, TypeTracer{}}}
	}
}

func (f *Finder) Strategies() []string {
	names := make([]string, 0, len(f.strategies))
	for _, s := range f.strategies {
		names = append(names, s.Name())
	}
	return names
}

func (f *Finder) Find(g *graph.Graph) []Cycle {
	pooled := make([]Cycle, 0)
	for _, s := range f.strategies {
		pooled = append(pooled, s.Find(g)...)
	}
	return pooled
}
