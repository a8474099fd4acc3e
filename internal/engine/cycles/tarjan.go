package cycles

import (
	"depcycle/internal/engine/graph"
)

// Tarjan reports every non-trivial strongly connected component as a cycle.
// It captures cycles the DFS enumeration misses when several cycles share
// nodes, at the cost of coarser path fidelity: the reported path is the
// popped component order, reversed, and for components larger than two nodes
// consecutive path elements are not guaranteed to be joined by direct edges.
type Tarjan struct{}

func (Tarjan) Name() string { return "tarjan" }

func (Tarjan) Find(g *graph.Graph) []Cycle {
	t := &tarjanState{
		g:       g,
		indexOf: make(map[string]int, g.NodeCount()),
		lowLink: make(map[string]int, g.NodeCount()),
		onStack: make(map[string]bool, g.NodeCount()),
	}

	for _, n := range g.Nodes() {
		if _, seen := t.indexOf[n.ID]; !seen {
			t.strongConnect(n.ID)
		}
	}

	return t.cycles
}

type tarjanState struct {
	g       *graph.Graph
	index   int
	stack   []string
	indexOf map[string]int
	lowLink map[string]int
	onStack map[string]bool
	cycles  []Cycle
}

func (t *tarjanState) strongConnect(v string) {
	t.indexOf[v] = t.index
	t.lowLink[v] = t.index
	t.index++

	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, edge := range t.g.Outbound(v) {
		w := edge.Target
		if _, seen := t.indexOf[w]; !seen {
			t.strongConnect(w)
			if t.lowLink[w] < t.lowLink[v] {
				t.lowLink[v] = t.lowLink[w]
			}
		} else if t.onStack[w] && t.indexOf[w] < t.lowLink[v] {
			t.lowLink[v] = t.indexOf[w]
		}
	}

	if t.lowLink[v] != t.indexOf[v] {
		return
	}

	component := make([]string, 0)
	for {
		last := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[last] = false
		component = append(component, last)
		if last == v {
			break
		}
	}

	if len(component) == 1 && !t.g.HasEdge(component[0], component[0]) {
		return
	}

	reversed := make([]string, 0, len(component)+1)
	for i := len(component) - 1; i >= 0; i-- {
		reversed = append(reversed, component[i])
	}
	reversed = append(reversed, reversed[0])
	t.cycles = append(t.cycles, NewCycle(reversed, MethodTarjan, t.g))
}
