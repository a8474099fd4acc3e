package graph

import (
	"depcycle/internal/shared/observability"
)

type NodeType string

const (
	NodeService   NodeType = "service"
	NodeComponent NodeType = "component"
	NodeModule    NodeType = "module"
	NodeUnknown   NodeType = "unknown"
)

// ParseNodeType maps discovery-supplied type strings onto the known set.
func ParseNodeType(raw string) NodeType {
	switch NodeType(raw) {
	case NodeService, NodeComponent, NodeModule:
		return NodeType(raw)
	default:
		return NodeUnknown
	}
}

type Node struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            NodeType `json:"type"`
	SubType         string   `json:"subType,omitempty"`
	DependencyCount int      `json:"dependencyCount"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
	Weight int    `json:"weight"`
}

// Graph is an immutable dependency graph built once per analysis call.
// Dangling edge endpoints are tolerated: an edge may reference an id that
// never appears in the node set.
type Graph struct {
	nodes    []Node
	nodeByID map[string]int
	edges    []Edge
	edgeKeys map[string]bool
	outbound map[string][]Edge
}

// Builder accumulates discovery data and produces a Graph. Nodes are unique
// by id and edges by (source,target); the first occurrence wins in both cases.
type Builder struct {
	g Graph
}

func NewBuilder() *Builder {
	return &Builder{
		g: Graph{
			nodeByID: make(map[string]int),
			edgeKeys: make(map[string]bool),
			outbound: make(map[string][]Edge),
		},
	}
}

func (b *Builder) AddNode(n Node) *Builder {
	if n.ID == "" {
		return b
	}
	if _, exists := b.g.nodeByID[n.ID]; exists {
		return b
	}
	if n.Name == "" {
		n.Name = n.ID
	}
	n.Type = ParseNodeType(string(n.Type))
	b.g.nodeByID[n.ID] = len(b.g.nodes)
	b.g.nodes = append(b.g.nodes, n)
	return b
}

func (b *Builder) AddEdge(e Edge) *Builder {
	if e.Source == "" || e.Target == "" {
		return b
	}
	key := e.Source + "->" + e.Target
	if b.g.edgeKeys[key] {
		return b
	}
	if e.Weight == 0 {
		e.Weight = 1
	}
	b.g.edgeKeys[key] = true
	b.g.edges = append(b.g.edges, e)
	b.g.outbound[e.Source] = append(b.g.outbound[e.Source], e)
	return b
}

func (b *Builder) Build() *Graph {
	g := b.g
	observability.GraphNodes.Set(float64(len(g.nodes)))
	observability.GraphEdges.Set(float64(len(g.edges)))
	return &g
}

func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.nodeByID[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[idx], true
}

// TypeOf returns the node type for id, NodeUnknown when the id only appears
// as a dangling edge endpoint.
func (g *Graph) TypeOf(id string) NodeType {
	if n, ok := g.Node(id); ok {
		return n.Type
	}
	return NodeUnknown
}

// Nodes returns nodes in first-seen order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns edges in first-seen order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Outbound returns the outgoing edges of id in first-seen order.
func (g *Graph) Outbound(id string) []Edge {
	edges := g.outbound[id]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

func (g *Graph) HasEdge(source, target string) bool {
	return g.edgeKeys[source+"->"+target]
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// NodesOfType returns the ids of all nodes with the given type, in
// first-seen order.
func (g *Graph) NodesOfType(t NodeType) []string {
	ids := make([]string, 0)
	for _, n := range g.nodes {
		if n.Type == t {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
