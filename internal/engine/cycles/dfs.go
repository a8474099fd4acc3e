package cycles

import (
	"depcycle/internal/engine/graph"
)

// DFS enumerates cycles along one depth-first tree. Each recursive call
// carries its own copy of the recursion path so sibling branches cannot
// interfere. Cycles that interleave through nodes already colored by an
// earlier branch may not surface here; the Tarjan pass catches those.
// Self-loop edges are left to the Tarjan pass as well.
type DFS struct{}

func (DFS) Name() string { return "dfs" }

func (DFS) Find(g *graph.Graph) []Cycle {
	var cycles []Cycle
	visited := make(map[string]bool, g.NodeCount())
	onStack := make(map[string]bool, g.NodeCount())

	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			dfsWalk(g, n.ID, []string{n.ID}, visited, onStack, &cycles)
		}
	}

	return cycles
}

func dfsWalk(g *graph.Graph, curr string, path []string, visited, onStack map[string]bool, cycles *[]Cycle) {
	visited[curr] = true
	onStack[curr] = true

	for _, edge := range g.Outbound(curr) {
		next := edge.Target
		if next == curr {
			continue
		}
		if !visited[next] {
			branch := make([]string, len(path), len(path)+1)
			copy(branch, path)
			dfsWalk(g, next, append(branch, next), visited, onStack, cycles)
			continue
		}
		if onStack[next] {
			start := indexOf(path, next)
			if start == -1 {
				continue
			}
			closed := make([]string, 0, len(path)-start+1)
			closed = append(closed, path[start:]...)
			closed = append(closed, next)
			*cycles = append(*cycles, NewCycle(closed, MethodDFS, g))
		}
	}

	onStack[curr] = false
}

func indexOf(path []string, id string) int {
	for i, p := range path {
		if p == id {
			return i
		}
	}
	return -1
}
