// Package advisor derives resolution guidance for detected cycles. All
// output is computed from fixed decision tables over the cycle set and the
// graph; nothing is looked up or learned, and nothing survives the call.
package advisor

import (
	"fmt"

	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
)

type ResolutionStrategy struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Effort      string `json:"effort"`
}

type Solution struct {
	Source      string   `json:"source"`
	Target      string   `json:"target"`
	Pattern     string   `json:"pattern"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

type CycleSuggestion struct {
	Cycle      cycles.Cycle         `json:"cycle"`
	Strategies []ResolutionStrategy `json:"strategies"`
	Solutions  []Solution           `json:"solutions"`
}

type Suggestions struct {
	PerCycle []CycleSuggestion     `json:"perCycle"`
	Plan     []ImplementationPhase `json:"implementationPlan"`
}

// Suggest produces the advisory block for a whole analysis: per-cycle
// strategies and pairwise solutions, plus one phased plan for the set.
func Suggest(found []cycles.Cycle, g *graph.Graph) Suggestions {
	perCycle := make([]CycleSuggestion, 0, len(found))
	for _, c := range found {
		perCycle = append(perCycle, CycleSuggestion{
			Cycle:      c,
			Strategies: StrategiesFor(c),
			Solutions:  SolutionsFor(c, g),
		})
	}
	return Suggestions{
		PerCycle: perCycle,
		Plan:     BuildPlan(found),
	}
}

// StrategiesFor selects candidate strategies for one cycle. Dependency
// inversion and event-driven decoupling always apply; longer cycles add
// service extraction and cross-layer cycles add a mediator. Deduplicated by
// name, first occurrence kept.
func StrategiesFor(c cycles.Cycle) []ResolutionStrategy {
	candidates := []ResolutionStrategy{
		{
			Name:        "dependency-inversion",
			Description: "Introduce an abstraction both sides depend on, breaking the direct edge.",
			Effort:      "medium",
		},
		{
			Name:        "event-driven-pattern",
			Description: "Replace one direction of the cycle with events so neither side references the other.",
			Effort:      "medium",
		},
	}

	if c.Length > 3 {
		candidates = append(candidates, ResolutionStrategy{
			Name:        "service-extraction",
			Description: "Extract the shared responsibility into a new service the cycle members depend on.",
			Effort:      "high",
		})
	}
	if c.Type == cycles.TypeMixed {
		candidates = append(candidates, ResolutionStrategy{
			Name:        "mediator-pattern",
			Description: "Route cross-layer interaction through a mediator instead of direct references.",
			Effort:      "high",
		})
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]ResolutionStrategy, 0, len(candidates))
	for _, s := range candidates {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	return out
}

// SolutionsFor picks one concrete solution per consecutive (source,target)
// pair in the cycle's path, keyed on the pair of node types. Deduplicated by
// (source,target), first occurrence kept.
func SolutionsFor(c cycles.Cycle, g *graph.Graph) []Solution {
	seen := make(map[string]bool)
	out := make([]Solution, 0)

	for i := 0; i+1 < len(c.Path); i++ {
		source, target := c.Path[i], c.Path[i+1]
		key := source + "->" + target
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, solutionForPair(source, target, g))
	}
	return out
}

func solutionForPair(source, target string, g *graph.Graph) Solution {
	sourceType := g.TypeOf(source)
	targetType := g.TypeOf(target)

	switch {
	case sourceType == graph.NodeService && targetType == graph.NodeService:
		return Solution{
			Source:      source,
			Target:      target,
			Pattern:     "interface-abstraction",
			Description: fmt.Sprintf("Define an interface for %s and let %s depend on the interface instead.", target, source),
			Steps: []string{
				fmt.Sprintf("Extract the methods %s uses from %s into an interface.", source, target),
				fmt.Sprintf("Bind %s to the interface implementation at wiring time.", target),
				fmt.Sprintf("Point %s at the interface and drop the direct reference.", source),
			},
		}
	case sourceType == graph.NodeComponent && targetType == graph.NodeComponent:
		return Solution{
			Source:      source,
			Target:      target,
			Pattern:     "communication-pattern",
			Description: fmt.Sprintf("Replace the direct reference from %s to %s with shared-state or event communication.", source, target),
			Steps: []string{
				fmt.Sprintf("Identify the data %s reads from %s.", source, target),
				"Move that data into a shared state container or event stream.",
				"Have both components subscribe rather than reference each other.",
			},
		}
	default:
		return Solution{
			Source:      source,
			Target:      target,
			Pattern:     "mixed-dependency",
			Description: fmt.Sprintf("Restructure the dependency from %s (%s) to %s (%s) through an intermediate abstraction.", source, sourceType, target, targetType),
			Steps: []string{
				"Decide which side owns the shared contract.",
				"Introduce a boundary type in the owning layer.",
				"Depend on the boundary from the other side.",
			},
		}
	}
}
