// Package impact scores the architectural and runtime consequences of a
// cycle set. Both scorers are pure heuristics over (cycles, graph); they
// share the counting helpers but rate independent concerns.
package impact

import (
	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
)

// Rating is an ordinal low/medium/high assessment.
type Rating string

const (
	RatingLow    Rating = "low"
	RatingMedium Rating = "medium"
	RatingHigh   Rating = "high"
)

func (r Rating) weight() float64 {
	switch r {
	case RatingHigh:
		return 3
	case RatingMedium:
		return 2
	default:
		return 1
	}
}

// Architecture layers touched by cycle members, derived from node types.
const (
	LayerPresentation  = "presentation"
	LayerBusinessLogic = "business-logic"
	LayerModule        = "module"
)

type ArchitectureImpact struct {
	OverallImpact        Rating   `json:"overallImpact"`
	TestabilityImpact    Rating   `json:"testabilityImpact"`
	ScalabilityImpact    Rating   `json:"scalabilityImpact"`
	MaintainabilityScore int      `json:"maintainabilityScore"`
	AffectedLayers       []string `json:"affectedLayers"`
	CriticalCycles       int      `json:"criticalCycles"`
	MajorCycles          int      `json:"majorCycles"`
}

// Architecture rates how the cycle set constrains the structure of the
// system. The maintainability score starts at 100 and loses 20 per critical
// cycle, 10 per major cycle, and 5 per remaining cycle, floored at 0.
func Architecture(found []cycles.Cycle, g *graph.Graph) ArchitectureImpact {
	critical, major := severityCounts(found)
	rest := len(found) - critical - major

	score := 100 - 20*critical - 10*major - 5*rest
	if score < 0 {
		score = 0
	}

	return ArchitectureImpact{
		OverallImpact:        overallRating(critical, major, len(found)),
		TestabilityImpact:    testabilityRating(critical, major, len(found)),
		ScalabilityImpact:    scalabilityRating(critical, major),
		MaintainabilityScore: score,
		AffectedLayers:       affectedLayers(found, g),
		CriticalCycles:       critical,
		MajorCycles:          major,
	}
}

func overallRating(critical, major, total int) Rating {
	switch {
	case critical > 0:
		return RatingHigh
	case major > 2 || total > 3:
		return RatingMedium
	default:
		return RatingLow
	}
}

func testabilityRating(critical, major, total int) Rating {
	switch {
	case critical > 0:
		return RatingHigh
	case major > 1 || total > 2:
		return RatingMedium
	default:
		return RatingLow
	}
}

func scalabilityRating(critical, major int) Rating {
	switch {
	case critical > 1 || major > 3:
		return RatingHigh
	case critical > 0 || major > 0:
		return RatingMedium
	default:
		return RatingLow
	}
}

// affectedLayers maps the node types of every cycle member to architecture
// layers, first-touched order.
func affectedLayers(found []cycles.Cycle, g *graph.Graph) []string {
	seen := make(map[string]bool, 3)
	layers := make([]string, 0, 3)
	add := func(layer string) {
		if !seen[layer] {
			seen[layer] = true
			layers = append(layers, layer)
		}
	}

	for _, c := range found {
		for _, id := range c.Path {
			switch g.TypeOf(id) {
			case graph.NodeComponent:
				add(LayerPresentation)
			case graph.NodeService:
				add(LayerBusinessLogic)
			case graph.NodeModule:
				add(LayerModule)
			}
		}
	}
	return layers
}

func severityCounts(found []cycles.Cycle) (critical, major int) {
	for _, c := range found {
		switch c.Severity {
		case cycles.SeverityCritical:
			critical++
		case cycles.SeverityMajor:
			major++
		}
	}
	return critical, major
}
