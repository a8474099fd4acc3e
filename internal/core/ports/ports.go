package ports

import (
	"context"

	"depcycle/internal/engine/analysis"
	"depcycle/internal/engine/graph"
)

// GraphProvider abstracts the upstream discovery collaborator that supplies
// raw dependency data. Discovery may be slow or fail independently of the
// analysis core; callers bound it with a context deadline.
type GraphProvider interface {
	Discover(ctx context.Context) (graph.Snapshot, error)
	Name() string
}

// AnalysisRequest defines one analysis invocation for driving adapters.
// When Graph is non-nil it is used directly; otherwise the provider is
// consulted.
type AnalysisRequest struct {
	Graph           *graph.Snapshot
	DetectionMethod string

	IncludeResolutionSuggestions *bool
	AnalyzeArchitectureImpact    *bool
	IncludePerformanceAnalysis   *bool
}

// Analyzer abstracts the analysis application service for driving adapters.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*analysis.Report, error)
	Summary(ctx context.Context) (GraphSummary, error)
}

// GraphSummary describes the discovered graph without running detection.
type GraphSummary struct {
	Nodes       int            `json:"nodes"`
	Edges       int            `json:"edges"`
	NodesByType map[string]int `json:"nodesByType"`
	Provider    string         `json:"provider"`
}

// ComponentHealth reports the status of one subsystem.
type ComponentHealth struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// HealthReporter abstracts system health checks for driving adapters.
type HealthReporter interface {
	Health(ctx context.Context) []ComponentHealth
}
