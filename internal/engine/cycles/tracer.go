package cycles

import (
	"depcycle/internal/engine/graph"
)

// TypeTracer runs two type-restricted depth-first traversals: one seeded
// from every component node that follows edges into component or service
// targets, and one seeded from every service node that follows service
// targets only. Each branch carries its own copy of the visited set, so the
// same downstream node can be revisited through different branches. That
// buys branch independence at exponential worst-case cost on dense graphs;
// callers are expected to cap node/edge counts before invoking it.
type TypeTracer struct{}

func (TypeTracer) Name() string { return "type_tracer" }

func (TypeTracer) Find(g *graph.Graph) []Cycle {
	var cycles []Cycle

	componentAllowed := map[graph.NodeType]bool{
		graph.NodeComponent: true,
		graph.NodeService:   true,
	}
	for _, id := range g.NodesOfType(graph.NodeComponent) {
		trace(g, id, []string{id}, map[string]bool{id: true}, componentAllowed, MethodComponent, &cycles)
	}

	serviceAllowed := map[graph.NodeType]bool{
		graph.NodeService: true,
	}
	for _, id := range g.NodesOfType(graph.NodeService) {
		trace(g, id, []string{id}, map[string]bool{id: true}, serviceAllowed, MethodService, &cycles)
	}

	return cycles
}

func trace(g *graph.Graph, curr string, path []string, visited map[string]bool, allowed map[graph.NodeType]bool, method Method, cycles *[]Cycle) {
	for _, edge := range g.Outbound(curr) {
		next := edge.Target
		if !allowed[g.TypeOf(next)] {
			continue
		}
		if visited[next] {
			start := indexOf(path, next)
			if start == -1 {
				continue
			}
			closed := make([]string, 0, len(path)-start+1)
			closed = append(closed, path[start:]...)
			closed = append(closed, next)
			*cycles = append(*cycles, NewCycle(closed, method, g))
			continue
		}

		branchPath := make([]string, len(path), len(path)+1)
		copy(branchPath, path)
		branchVisited := make(map[string]bool, len(visited)+1)
		for k := range visited {
			branchVisited[k] = true
		}
		branchVisited[next] = true
		trace(g, next, append(branchPath, next), branchVisited, allowed, method, cycles)
	}
}
