package graph

// Snapshot is the raw discovery payload: nodes and edges as supplied by an
// upstream provider, before construction and dedup.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build constructs a Graph from the snapshot, applying the usual first-wins
// dedup and normalization rules.
func (s Snapshot) Build() *Graph {
	b := NewBuilder()
	for _, n := range s.Nodes {
		b.AddNode(n)
	}
	for _, e := range s.Edges {
		b.AddEdge(e)
	}
	return b.Build()
}
