// Package graphinfo handles the graph.* read operations: cycle listings and
// shape summaries over the discovered graph.
package graphinfo

import (
	"context"

	"depcycle/internal/core/ports"
	"depcycle/internal/mcp/contracts"
)

// HandleCycles runs detection and returns the cycle list bounded by the
// caller's limit and the server's response cap.
func HandleCycles(ctx context.Context, svc ports.Analyzer, in contracts.GraphCyclesInput, maxItems int) (contracts.GraphCyclesOutput, error) {
	disabled := false
	report, err := svc.Analyze(ctx, ports.AnalysisRequest{
		DetectionMethod:              in.DetectionMethod,
		IncludeResolutionSuggestions: &disabled,
		AnalyzeArchitectureImpact:    &disabled,
		IncludePerformanceAnalysis:   &disabled,
	})
	if err != nil {
		return contracts.GraphCyclesOutput{}, err
	}

	limit := in.Limit
	if limit <= 0 || (maxItems > 0 && limit > maxItems) {
		limit = maxItems
	}

	out := contracts.GraphCyclesOutput{
		CycleCount: len(report.Cycles),
		Cycles:     report.Cycles,
	}
	if limit > 0 && len(out.Cycles) > limit {
		out.Cycles = out.Cycles[:limit]
		out.Truncated = true
	}
	return out, nil
}

func HandleSummary(ctx context.Context, svc ports.Analyzer, _ contracts.GraphSummaryInput) (contracts.GraphSummaryOutput, error) {
	summary, err := svc.Summary(ctx)
	if err != nil {
		return contracts.GraphSummaryOutput{}, err
	}
	return contracts.GraphSummaryOutput{Summary: summary}, nil
}
