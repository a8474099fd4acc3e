package graph

import "testing"

func TestBuilder_NodeDedup_FirstWins(t *testing.T) {
	g := NewBuilder().
		AddNode(Node{ID: "svcA", Name: "Service A", Type: NodeService}).
		AddNode(Node{ID: "svcA", Name: "Duplicate", Type: NodeComponent}).
		Build()

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node, got %d", g.NodeCount())
	}
	n, ok := g.Node("svcA")
	if !ok {
		t.Fatal("node svcA missing")
	}
	if n.Name != "Service A" || n.Type != NodeService {
		t.Errorf("first occurrence should win, got %+v", n)
	}
}

func TestBuilder_EdgeDedup_IgnoresTypeAndWeight(t *testing.T) {
	g := NewBuilder().
		AddEdge(Edge{Source: "a", Target: "b", Type: "import", Weight: 2}).
		AddEdge(Edge{Source: "a", Target: "b", Type: "injection", Weight: 9}).
		Build()

	if g.EdgeCount() != 1 {
		t.Fatalf("expected 1 edge, got %d", g.EdgeCount())
	}
	edges := g.Edges()
	if edges[0].Type != "import" || edges[0].Weight != 2 {
		t.Errorf("first occurrence should win, got %+v", edges[0])
	}
}

func TestBuilder_EdgeWeightDefault(t *testing.T) {
	g := NewBuilder().AddEdge(Edge{Source: "a", Target: "b"}).Build()
	if got := g.Edges()[0].Weight; got != 1 {
		t.Errorf("default weight = %d, want 1", got)
	}
}

func TestBuilder_DanglingEdgeTolerated(t *testing.T) {
	g := NewBuilder().
		AddNode(Node{ID: "a", Type: NodeService}).
		AddEdge(Edge{Source: "a", Target: "ghost"}).
		Build()

	if !g.HasEdge("a", "ghost") {
		t.Error("dangling edge should be retained")
	}
	if got := g.TypeOf("ghost"); got != NodeUnknown {
		t.Errorf("dangling endpoint type = %s, want unknown", got)
	}
}

func TestParseNodeType_UnknownFallback(t *testing.T) {
	cases := map[string]NodeType{
		"service":   NodeService,
		"component": NodeComponent,
		"module":    NodeModule,
		"directive": NodeUnknown,
		"":          NodeUnknown,
	}
	for raw, want := range cases {
		if got := ParseNodeType(raw); got != want {
			t.Errorf("ParseNodeType(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestGraph_OutboundOrder(t *testing.T) {
	g := NewBuilder().
		AddEdge(Edge{Source: "a", Target: "c"}).
		AddEdge(Edge{Source: "a", Target: "b"}).
		AddEdge(Edge{Source: "a", Target: "d"}).
		Build()

	out := g.Outbound("a")
	want := []string{"c", "b", "d"}
	for i, e := range out {
		if e.Target != want[i] {
			t.Fatalf("outbound order %v, want targets %v", out, want)
		}
	}
}

func TestGraph_EmptyIsValid(t *testing.T) {
	g := NewBuilder().Build()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Error("empty graph should have zero nodes and edges")
	}
	if got := g.Outbound("missing"); len(got) != 0 {
		t.Errorf("outbound of absent node = %v, want empty", got)
	}
}
