package advisor

import (
	"depcycle/internal/engine/cycles"
)

type ImplementationPhase struct {
	Phase        int      `json:"phase"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Prerequisite string   `json:"prerequisite,omitempty"`
	Targets      []string `json:"targets,omitempty"`
}

const (
	phasePlanning   = "planning"
	phaseCritical   = "critical-cycle-resolution"
	phaseMajor      = "major-cycle-resolution"
	phasePrevention = "minor-cycle-resolution-and-prevention"
)

// BuildPlan synthesizes one phased remediation plan for the analysis.
// Planning and the prevention phase are always present; the critical and
// major phases appear only when cycles of that severity exist, and the major
// phase's prerequisite depends on whether the critical phase was emitted.
func BuildPlan(found []cycles.Cycle) []ImplementationPhase {
	var criticalTargets, majorTargets []string
	for _, c := range found {
		switch c.Severity {
		case cycles.SeverityCritical:
			criticalTargets = append(criticalTargets, cycles.Key(c.Path))
		case cycles.SeverityMajor:
			majorTargets = append(majorTargets, cycles.Key(c.Path))
		}
	}

	plan := []ImplementationPhase{{
		Phase:       1,
		Name:        phasePlanning,
		Description: "Map the affected nodes, agree ownership, and schedule the remediation work.",
	}}

	next := 2
	if len(criticalTargets) > 0 {
		plan = append(plan, ImplementationPhase{
			Phase:        next,
			Name:         phaseCritical,
			Description:  "Break every critical cycle first; these span the most nodes and block refactoring elsewhere.",
			Prerequisite: phasePlanning,
			Targets:      criticalTargets,
		})
		next++
	}
	if len(majorTargets) > 0 {
		prerequisite := phasePlanning
		if len(criticalTargets) > 0 {
			prerequisite = phaseCritical
		}
		plan = append(plan, ImplementationPhase{
			Phase:        next,
			Name:         phaseMajor,
			Description:  "Resolve major cycles once the critical ones no longer interleave with them.",
			Prerequisite: prerequisite,
			Targets:      majorTargets,
		})
		next++
	}

	plan = append(plan, ImplementationPhase{
		Phase:       next,
		Name:        phasePrevention,
		Description: "Clean up remaining minor cycles and add guardrails so new cycles fail the build.",
	})

	return plan
}
