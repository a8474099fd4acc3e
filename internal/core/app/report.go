package app

import (
	"fmt"
	"strings"

	"depcycle/internal/engine/analysis"
	"depcycle/internal/engine/cycles"
)

// FormatReport renders an analysis report as plain text for the CLI.
func FormatReport(report *analysis.Report) string {
	var b strings.Builder

	b.WriteString("Dependency Cycle Analysis\n")
	b.WriteString("=========================\n")
	b.WriteString(fmt.Sprintf("Report: %s\n", report.ID))
	b.WriteString(fmt.Sprintf("Overall severity: %s\n", report.Summary.OverallSeverity))
	b.WriteString(fmt.Sprintf("Resolution complexity: %s\n", report.Summary.ResolutionComplexity))
	b.WriteString(fmt.Sprintf("Execution time: %dms\n", report.Summary.ExecutionTime))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Cycles (%d: %d critical, %d major, %d minor)\n",
		report.Summary.TotalCycles,
		report.Summary.CriticalCycles,
		report.Summary.MajorCycles,
		report.Summary.MinorCycles))
	for _, c := range report.Cycles {
		b.WriteString(fmt.Sprintf("- [%s] %s (%s, length %d, via %s)\n",
			c.Severity, strings.Join(c.Path, " -> "), c.Type, c.Length, c.DetectionMethod))
	}
	b.WriteString("\n")

	if report.Architecture != nil {
		a := report.Architecture
		b.WriteString("Architecture impact\n")
		b.WriteString(fmt.Sprintf("- overall: %s, testability: %s, scalability: %s\n",
			a.OverallImpact, a.TestabilityImpact, a.ScalabilityImpact))
		b.WriteString(fmt.Sprintf("- maintainability score: %d/100\n", a.MaintainabilityScore))
		if len(a.AffectedLayers) > 0 {
			b.WriteString(fmt.Sprintf("- affected layers: %s\n", strings.Join(a.AffectedLayers, ", ")))
		}
		b.WriteString("\n")
	}

	if report.Performance != nil {
		p := report.Performance
		b.WriteString("Performance impact\n")
		b.WriteString(fmt.Sprintf("- overall: %s\n", p.OverallImpact))
		b.WriteString(fmt.Sprintf("- memory leak risk: %s, startup: %s, runtime: %s, change detection: %s\n",
			p.MemoryLeakRisk, p.StartupTimeImpact, p.RuntimeImpact, p.ChangeDetectionImpact))
		b.WriteString("\n")
	}

	if report.Resolution != nil && len(report.Resolution.Plan) > 0 {
		b.WriteString("Implementation plan\n")
		for _, phase := range report.Resolution.Plan {
			b.WriteString(fmt.Sprintf("%d. %s", phase.Phase, phase.Name))
			if phase.Prerequisite != "" {
				b.WriteString(fmt.Sprintf(" (after %s)", phase.Prerequisite))
			}
			b.WriteString("\n")
			if len(phase.Targets) > 0 {
				for _, target := range phase.Targets {
					b.WriteString(fmt.Sprintf("   - %s\n", target))
				}
			}
		}
		b.WriteString("\n")
	}

	if len(report.Errors) > 0 {
		b.WriteString("Degraded steps\n")
		for _, e := range report.Errors {
			b.WriteString(fmt.Sprintf("- %s: %s\n", e.Step, e.Message))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// severityMarker is kept for the compact one-line summary mode.
func severityMarker(s cycles.Severity) string {
	switch s {
	case cycles.SeverityCritical:
		return "!!"
	case cycles.SeverityMajor:
		return "!"
	default:
		return "-"
	}
}

// FormatSummaryLine renders the one-line variant used in verbose logs.
func FormatSummaryLine(report *analysis.Report) string {
	parts := make([]string, 0, len(report.Cycles))
	for _, c := range report.Cycles {
		parts = append(parts, fmt.Sprintf("%s%s", severityMarker(c.Severity), strings.Join(c.Path, ">")))
	}
	if len(parts) == 0 {
		return "no cycles"
	}
	return strings.Join(parts, " ")
}
