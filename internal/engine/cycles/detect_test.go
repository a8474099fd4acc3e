package cycles

import (
	"testing"

	"depcycle/internal/engine/graph"
)

func buildGraph(nodes map[string]graph.NodeType, edges [][2]string) *graph.Graph {
	b := graph.NewBuilder()
	for id, t := range nodes {
		b.AddNode(graph.Node{ID: id, Name: id, Type: t})
	}
	for _, e := range edges {
		b.AddEdge(graph.Edge{Source: e[0], Target: e[1]})
	}
	return b.Build()
}

func serviceNodes(ids ...string) map[string]graph.NodeType {
	out := make(map[string]graph.NodeType, len(ids))
	for _, id := range ids {
		out[id] = graph.NodeService
	}
	return out
}

// isClosedWalk checks that consecutive ids are joined by existing edges and
// the walk returns to its start.
func isClosedWalk(t *testing.T, g *graph.Graph, path []string) {
	t.Helper()
	if len(path) < 2 {
		t.Fatalf("path too short to be a closed walk: %v", path)
	}
	if path[0] != path[len(path)-1] {
		t.Fatalf("walk not closed: %v", path)
	}
	for i := 0; i+1 < len(path); i++ {
		if !g.HasEdge(path[i], path[i+1]) {
			t.Fatalf("missing edge %s->%s in walk %v", path[i], path[i+1], path)
		}
	}
}

func TestDFS_SimpleCycle(t *testing.T) {
	g := buildGraph(serviceNodes("modA", "modB", "modC"), [][2]string{
		{"modA", "modB"}, {"modB", "modC"}, {"modC", "modA"},
	})

	found := DFS{}.Find(g)
	if len(found) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(found))
	}
	isClosedWalk(t, g, found[0].Path)
	if found[0].Length != 3 {
		t.Errorf("length = %d, want 3", found[0].Length)
	}
	if found[0].DetectionMethod != MethodDFS {
		t.Errorf("method = %s, want dfs", found[0].DetectionMethod)
	}
}

func TestDFS_NoCycleInDAG(t *testing.T) {
	g := buildGraph(serviceNodes("a", "b", "c"), [][2]string{
		{"a", "b"}, {"a", "c"}, {"b", "c"},
	})
	if found := (DFS{}).Find(g); len(found) != 0 {
		t.Errorf("DAG should have no cycles, got %v", found)
	}
}

func TestDFS_SelfLoopNotReported(t *testing.T) {
	g := buildGraph(serviceNodes("a"), [][2]string{{"a", "a"}})
	if found := (DFS{}).Find(g); len(found) != 0 {
		t.Errorf("dfs should not report self-loops, got %v", found)
	}
}

func TestDFS_BranchIndependence(t *testing.T) {
	// Two sibling branches from the root share no state: the path carried
	// into b must not contain c and vice versa.
	g := buildGraph(serviceNodes("root", "b", "c"), [][2]string{
		{"root", "b"}, {"root", "c"}, {"b", "root"}, {"c", "root"},
	})

	found := DFS{}.Find(g)
	for _, c := range found {
		isClosedWalk(t, g, c.Path)
	}
	if len(found) != 2 {
		t.Fatalf("expected both sibling cycles, got %d: %v", len(found), found)
	}
}

func TestTarjan_SelfLoopReported(t *testing.T) {
	g := buildGraph(serviceNodes("a"), [][2]string{{"a", "a"}})

	found := Tarjan{}.Find(g)
	if len(found) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(found))
	}
	c := found[0]
	if c.Length != 1 {
		t.Errorf("self-loop length = %d, want 1", c.Length)
	}
	if c.Severity != SeverityMinor {
		t.Errorf("severity = %s, want minor", c.Severity)
	}
	if c.DetectionMethod != MethodTarjan {
		t.Errorf("method = %s, want tarjan", c.DetectionMethod)
	}
}

func TestTarjan_SingleNodeWithoutSelfLoopIgnored(t *testing.T) {
	g := buildGraph(serviceNodes("a", "b"), [][2]string{{"a", "b"}})
	if found := (Tarjan{}).Find(g); len(found) != 0 {
		t.Errorf("acyclic pair should yield no components, got %v", found)
	}
}

func TestTarjan_TwoNodeComponent(t *testing.T) {
	g := buildGraph(serviceNodes("a", "b"), [][2]string{{"a", "b"}, {"b", "a"}})

	found := Tarjan{}.Find(g)
	if len(found) != 1 {
		t.Fatalf("expected 1 component cycle, got %d", len(found))
	}
	isClosedWalk(t, g, found[0].Path)
	if found[0].Length != 2 {
		t.Errorf("length = %d, want 2", found[0].Length)
	}
}

func TestTarjan_FindsInterleavedCycles(t *testing.T) {
	// Two cycles share node b; the DFS tree surfaces only some rotations,
	// Tarjan still reports the merged component.
	g := buildGraph(serviceNodes("a", "b", "c"), [][2]string{
		{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"},
	})

	found := Tarjan{}.Find(g)
	if len(found) != 1 {
		t.Fatalf("expected one merged component, got %d", len(found))
	}
	if found[0].Length != 3 {
		t.Errorf("component size = %d, want 3", found[0].Length)
	}
}

func TestTypeTracer_ComponentSeedsFollowComponentAndService(t *testing.T) {
	g := buildGraph(map[string]graph.NodeType{
		"cmpA": graph.NodeComponent,
		"svcB": graph.NodeService,
		"modC": graph.NodeModule,
	}, [][2]string{
		{"cmpA", "svcB"}, {"svcB", "cmpA"},
		{"cmpA", "modC"}, {"modC", "cmpA"}, // module hop must be ignored
	})

	found := TypeTracer{}.Find(g)
	for _, c := range found {
		if c.DetectionMethod == MethodComponent {
			for _, id := range c.Path {
				if g.TypeOf(id) == graph.NodeModule {
					t.Errorf("component tracer crossed a module node: %v", c.Path)
				}
			}
		}
	}
	if len(found) == 0 {
		t.Fatal("expected the component/service cycle to be traced")
	}
}

func TestTypeTracer_ServiceSeedsFollowServicesOnly(t *testing.T) {
	g := buildGraph(map[string]graph.NodeType{
		"svcA": graph.NodeService,
		"svcB": graph.NodeService,
		"cmpC": graph.NodeComponent,
	}, [][2]string{
		{"svcA", "svcB"}, {"svcB", "svcA"},
		{"svcA", "cmpC"}, {"cmpC", "svcA"},
	})

	found := TypeTracer{}.Find(g)
	for _, c := range found {
		if c.DetectionMethod != MethodService {
			continue
		}
		for _, id := range c.Path {
			if g.TypeOf(id) != graph.NodeService {
				t.Errorf("service tracer crossed a non-service node: %v", c.Path)
			}
		}
	}
}

func TestTypeTracer_BranchVisitedSetsIndependent(t *testing.T) {
	// Diamond into a shared tail cycle: both branches must reach it.
	g := buildGraph(map[string]graph.NodeType{
		"cmpA": graph.NodeComponent,
		"cmpB": graph.NodeComponent,
		"cmpC": graph.NodeComponent,
		"cmpD": graph.NodeComponent,
	}, [][2]string{
		{"cmpA", "cmpB"}, {"cmpA", "cmpC"},
		{"cmpB", "cmpD"}, {"cmpC", "cmpD"},
		{"cmpD", "cmpA"},
	})

	found := TypeTracer{}.Find(g)
	// Seeded from cmpA alone the two branches yield two distinct walks.
	walks := make(map[string]bool)
	for _, c := range found {
		if c.Path[0] == "cmpA" {
			walks[Key(c.Path)] = true
		}
	}
	if len(walks) < 2 {
		t.Errorf("expected both diamond branches to close, got %d distinct walks", len(walks))
	}
}

func TestFinder_Selection(t *testing.T) {
	if got := NewFinder(SelectDFS).Strategies(); len(got) != 1 || got[0] != "dfs" {
		t.Errorf("dfs selection = %v", got)
	}
	if got := NewFinder(SelectTarjan).Strategies(); len(got) != 1 || got[0] != "tarjan" {
		t.Errorf("tarjan selection = %v", got)
	}
	if got := NewFinder(SelectComprehensive).Strategies(); len(got) != 3 {
		t.Errorf("comprehensive selection = %v", got)
	}
}

func TestParseSelection(t *testing.T) {
	if got, err := ParseSelection(""); err != nil || got != SelectComprehensive {
		t.Errorf("empty selection = %v, %v", got, err)
	}
	if _, err := ParseSelection("bfs"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestSeverityForLength(t *testing.T) {
	cases := map[int]Severity{
		1: SeverityMinor,
		2: SeverityMinor,
		3: SeverityMajor,
		4: SeverityMajor,
		5: SeverityCritical,
		9: SeverityCritical,
	}
	for length, want := range cases {
		if got := SeverityForLength(length); got != want {
			t.Errorf("SeverityForLength(%d) = %s, want %s", length, got, want)
		}
	}
}

func TestTypeForPath(t *testing.T) {
	g := buildGraph(map[string]graph.NodeType{
		"cmp": graph.NodeComponent,
		"svc": graph.NodeService,
		"mod": graph.NodeModule,
	}, nil)

	cases := []struct {
		path []string
		want Type
	}{
		{[]string{"cmp", "svc", "mod", "cmp"}, TypeMixed},
		{[]string{"cmp", "svc", "cmp"}, TypeComponentService},
		{[]string{"svc", "svc"}, TypeService},
		{[]string{"cmp", "cmp"}, TypeComponent},
		{[]string{"ghost", "ghost"}, TypeUnknown},
		{[]string{"mod", "mod"}, TypeUnknown},
	}
	for _, tc := range cases {
		if got := TypeForPath(tc.path, g); got != tc.want {
			t.Errorf("TypeForPath(%v) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func BenchmarkFinder_Comprehensive(b *testing.B) {
	builder := graph.NewBuilder()
	const n = 60
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
		builder.AddNode(graph.Node{ID: ids[i], Type: graph.NodeService})
	}
	for i := 0; i < n; i++ {
		builder.AddEdge(graph.Edge{Source: ids[i], Target: ids[(i+1)%n]})
	}
	g := builder.Build()
	finder := NewFinder(SelectComprehensive)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		finder.Find(g)
	}
}
