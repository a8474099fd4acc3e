package impact

import (
	"depcycle/internal/engine/cycles"
)

type PerformanceImpact struct {
	MemoryLeakRisk        Rating `json:"memoryLeakRisk"`
	StartupTimeImpact     Rating `json:"startupTimeImpact"`
	RuntimeImpact         Rating `json:"runtimeImpact"`
	ChangeDetectionImpact Rating `json:"changeDetectionImpact"`
	OverallImpact         Rating `json:"overallPerformanceImpact"`
}

// Performance rates runtime consequences from counting rules over the cycle
// set. The overall rating averages the four ordinal weights (low=1, medium=2,
// high=3): >=2.5 high, >=1.8 medium, else low.
func Performance(found []cycles.Cycle) PerformanceImpact {
	critical, _ := severityCounts(found)
	component, service := typeCounts(found)
	total := len(found)

	p := PerformanceImpact{
		MemoryLeakRisk:        memoryLeakRisk(critical, service),
		StartupTimeImpact:     startupTimeImpact(total),
		RuntimeImpact:         runtimeImpact(critical, component),
		ChangeDetectionImpact: changeDetectionImpact(component),
	}

	avg := (p.MemoryLeakRisk.weight() + p.StartupTimeImpact.weight() +
		p.RuntimeImpact.weight() + p.ChangeDetectionImpact.weight()) / 4
	switch {
	case avg >= 2.5:
		p.OverallImpact = RatingHigh
	case avg >= 1.8:
		p.OverallImpact = RatingMedium
	default:
		p.OverallImpact = RatingLow
	}
	return p
}

// Retained references across a cycle keep whole object groups alive; service
// cycles are the usual culprit because services outlive views.
func memoryLeakRisk(critical, serviceCycles int) Rating {
	switch {
	case critical > 0:
		return RatingHigh
	case serviceCycles > 1:
		return RatingMedium
	default:
		return RatingLow
	}
}

func startupTimeImpact(total int) Rating {
	switch {
	case total > 5:
		return RatingHigh
	case total > 2:
		return RatingMedium
	default:
		return RatingLow
	}
}

func runtimeImpact(critical, componentCycles int) Rating {
	switch {
	case critical > 1:
		return RatingHigh
	case critical > 0 || componentCycles > 2:
		return RatingMedium
	default:
		return RatingLow
	}
}

func changeDetectionImpact(componentCycles int) Rating {
	switch {
	case componentCycles > 3:
		return RatingHigh
	case componentCycles > 0:
		return RatingMedium
	default:
		return RatingLow
	}
}

func typeCounts(found []cycles.Cycle) (component, service int) {
	for _, c := range found {
		switch c.Type {
		case cycles.TypeComponent:
			component++
		case cycles.TypeService:
			service++
		}
	}
	return component, service
}
