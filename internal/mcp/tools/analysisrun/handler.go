// Package analysisrun handles the analysis.run operation: a full report over
// an inline or discovered graph.
package analysisrun

import (
	"context"

	"depcycle/internal/core/ports"
	"depcycle/internal/mcp/contracts"
)

func HandleRun(ctx context.Context, svc ports.Analyzer, in contracts.AnalysisRunInput) (contracts.AnalysisRunOutput, error) {
	report, err := svc.Analyze(ctx, ports.AnalysisRequest{
		Graph:                        in.Graph,
		DetectionMethod:              in.DetectionMethod,
		IncludeResolutionSuggestions: in.IncludeResolutionSuggestions,
		AnalyzeArchitectureImpact:    in.AnalyzeArchitectureImpact,
		IncludePerformanceAnalysis:   in.IncludePerformanceAnalysis,
	})
	if err != nil {
		return contracts.AnalysisRunOutput{}, err
	}
	return contracts.AnalysisRunOutput{Report: report}, nil
}
