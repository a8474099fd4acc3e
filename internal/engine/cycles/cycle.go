package cycles

import (
	"depcycle/internal/engine/graph"
)

// Method identifies which detection strategy produced a cycle.
type Method string

const (
	MethodDFS       Method = "dfs"
	MethodTarjan    Method = "tarjan"
	MethodComponent Method = "component_analysis"
	MethodService   Method = "service_analysis"
)

// Severity classifies a single cycle by its distinct node count.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Type classifies a cycle by the node types present along its path.
type Type string

const (
	TypeComponent        Type = "component_cycle"
	TypeService          Type = "service_cycle"
	TypeMixed            Type = "mixed_architecture_cycle"
	TypeComponentService Type = "component_service_cycle"
	TypeUnknown          Type = "unknown_cycle"
)

// Types lists the fixed classification buckets.
var Types = []Type{TypeComponent, TypeService, TypeMixed, TypeComponentService, TypeUnknown}

// Cycle is a closed walk over the graph: the first path element equals the
// last. Length counts distinct nodes, so a self-loop has length 1.
type Cycle struct {
	Path            []string `json:"path"`
	Length          int      `json:"length"`
	DetectionMethod Method   `json:"detectionMethod"`
	Severity        Severity `json:"severity"`
	Type            Type     `json:"type"`
}

// NewCycle builds a cycle from a closed path, deriving length, severity and
// type from the graph's node types.
func NewCycle(path []string, method Method, g *graph.Graph) Cycle {
	length := distinctCount(path)
	return Cycle{
		Path:            path,
		Length:          length,
		DetectionMethod: method,
		Severity:        SeverityForLength(length),
		Type:            TypeForPath(path, g),
	}
}

// SeverityForLength is a pure function of the distinct node count:
// {1,2} minor, {3,4} major, 5+ critical.
func SeverityForLength(length int) Severity {
	switch {
	case length <= 2:
		return SeverityMinor
	case length <= 4:
		return SeverityMajor
	default:
		return SeverityCritical
	}
}

// TypeForPath derives the cycle type from the node-type multiset along the
// path. Dangling endpoints count as unknown.
func TypeForPath(path []string, g *graph.Graph) Type {
	var hasComponent, hasService, hasModule bool
	for _, id := range distinct(path) {
		switch g.TypeOf(id) {
		case graph.NodeComponent:
			hasComponent = true
		case graph.NodeService:
			hasService = true
		case graph.NodeModule:
			hasModule = true
		}
	}

	switch {
	case hasComponent && hasService && hasModule:
		return TypeMixed
	case hasComponent && hasService:
		return TypeComponentService
	case hasService:
		return TypeService
	case hasComponent:
		return TypeComponent
	default:
		return TypeUnknown
	}
}

func distinct(path []string) []string {
	seen := make(map[string]bool, len(path))
	out := make([]string, 0, len(path))
	for _, id := range path {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func distinctCount(path []string) int {
	return len(distinct(path))
}
