// Package analysis sequences the full cycle analysis: detection,
// normalization, classification, and the optional advisory and impact steps.
// Every step is fenced; a failing step records an error on the report and the
// remaining steps proceed on best-effort inputs.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"depcycle/internal/engine/advisor"
	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
	"depcycle/internal/engine/impact"
	"depcycle/internal/shared/observability"
)

// Options controls which optional report sections are produced and how
// cycles are detected.
type Options struct {
	IncludeResolutionSuggestions bool
	AnalyzeArchitectureImpact    bool
	IncludePerformanceAnalysis   bool
	DetectionMethod              cycles.Selection
}

// DefaultOptions enables every section and runs all detection strategies.
func DefaultOptions() Options {
	return Options{
		IncludeResolutionSuggestions: true,
		AnalyzeArchitectureImpact:    true,
		IncludePerformanceAnalysis:   true,
		DetectionMethod:              cycles.SelectComprehensive,
	}
}

// StepError marks one analysis step that failed. Its presence signals a
// degraded report, not a failed analysis.
type StepError struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

type Summary struct {
	ExecutionTime        int64                  `json:"executionTime"`
	TotalCycles          int                    `json:"totalCycles"`
	CriticalCycles       int                    `json:"criticalCycles"`
	MajorCycles          int                    `json:"majorCycles"`
	MinorCycles          int                    `json:"minorCycles"`
	OverallSeverity      cycles.OverallSeverity `json:"overallSeverity"`
	AffectedComponents   int                    `json:"affectedComponents"`
	ResolutionComplexity cycles.Complexity      `json:"resolutionComplexity"`
}

type Report struct {
	ID             string                      `json:"id"`
	Cycles         []cycles.Cycle              `json:"cycles"`
	Classification cycles.Classification       `json:"cycleClassification"`
	Resolution     *advisor.Suggestions        `json:"resolutionSuggestions,omitempty"`
	Architecture   *impact.ArchitectureImpact  `json:"architectureImpact,omitempty"`
	Performance    *impact.PerformanceImpact   `json:"performanceAnalysis,omitempty"`
	Prevention     []advisor.Recommendation    `json:"preventionRecommendations"`
	Errors         []StepError                 `json:"errors,omitempty"`
	Summary        Summary                     `json:"summary"`
}

// Run executes the analysis pipeline over an already-built graph. It always
// returns a report; step failures degrade sections instead of aborting.
func Run(ctx context.Context, g *graph.Graph, opts Options) *Report {
	ctx, span := observability.Tracer.Start(ctx, "analysis.run")
	defer span.End()

	started := time.Now()
	report := &Report{
		ID:     uuid.NewString(),
		Cycles: []cycles.Cycle{},
	}

	report.runStep(ctx, "detection", func() error {
		report.Cycles = cycles.NewFinder(opts.DetectionMethod).Find(g)
		return nil
	})

	report.runStep(ctx, "normalization", func() error {
		report.Cycles = cycles.Dedupe(report.Cycles)
		return nil
	})

	report.runStep(ctx, "classification", func() error {
		report.Classification = cycles.Classify(report.Cycles)
		return nil
	})

	if opts.IncludeResolutionSuggestions {
		report.runStep(ctx, "resolution", func() error {
			s := advisor.Suggest(report.Cycles, g)
			report.Resolution = &s
			return nil
		})
	}

	if opts.AnalyzeArchitectureImpact {
		report.runStep(ctx, "architecture_impact", func() error {
			a := impact.Architecture(report.Cycles, g)
			report.Architecture = &a
			return nil
		})
	}

	if opts.IncludePerformanceAnalysis {
		report.runStep(ctx, "performance_impact", func() error {
			p := impact.Performance(report.Cycles)
			report.Performance = &p
			return nil
		})
	}

	report.Prevention = advisor.PreventionRecommendations()
	report.Summary = summarize(report.Cycles, time.Since(started))
	recordCycleGauges(report.Summary)

	slog.Debug("analysis complete",
		"report_id", report.ID,
		"cycles", report.Summary.TotalCycles,
		"severity", report.Summary.OverallSeverity,
		"errors", len(report.Errors),
		"duration_ms", report.Summary.ExecutionTime)

	return report
}

// runStep executes one pipeline step under its own span and timer. Panics
// and returned errors become StepError entries; downstream steps continue
// with whatever the failed step left behind.
func (r *Report) runStep(ctx context.Context, name string, fn func() error) {
	_, span := observability.Tracer.Start(ctx, "analysis."+name)
	defer span.End()

	timer := prometheus.NewTimer(observability.AnalysisDuration.WithLabelValues(name))
	defer timer.ObserveDuration()

	defer func() {
		if rec := recover(); rec != nil {
			r.recordStepError(name, fmt.Sprintf("panic: %v", rec))
		}
	}()

	if err := fn(); err != nil {
		r.recordStepError(name, err.Error())
	}
}

func (r *Report) recordStepError(step, message string) {
	observability.AnalysisStepErrors.WithLabelValues(step).Inc()
	slog.Warn("analysis step failed", "step", step, "error", message)
	r.Errors = append(r.Errors, StepError{Step: step, Message: message})
}

func summarize(found []cycles.Cycle, elapsed time.Duration) Summary {
	s := Summary{
		ExecutionTime:        elapsed.Milliseconds(),
		TotalCycles:          len(found),
		OverallSeverity:      cycles.Overall(found),
		ResolutionComplexity: cycles.ResolutionComplexity(found),
	}

	affected := make(map[string]bool)
	for _, c := range found {
		switch c.Severity {
		case cycles.SeverityCritical:
			s.CriticalCycles++
		case cycles.SeverityMajor:
			s.MajorCycles++
		case cycles.SeverityMinor:
			s.MinorCycles++
		}
		for _, id := range c.Path {
			affected[id] = true
		}
	}
	s.AffectedComponents = len(affected)
	return s
}

func recordCycleGauges(s Summary) {
	observability.CyclesDetected.WithLabelValues(string(cycles.SeverityCritical)).Set(float64(s.CriticalCycles))
	observability.CyclesDetected.WithLabelValues(string(cycles.SeverityMajor)).Set(float64(s.MajorCycles))
	observability.CyclesDetected.WithLabelValues(string(cycles.SeverityMinor)).Set(float64(s.MinorCycles))
}
