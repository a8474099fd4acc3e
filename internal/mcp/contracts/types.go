package contracts

import (
	"encoding/json"

	"depcycle/internal/core/ports"
	"depcycle/internal/engine/analysis"
	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
)

const (
	ToolNameDepcycle = "depcycle"
	ContractVersion  = "v1"
)

type OperationID string

const (
	OperationAnalysisRun  OperationID = "analysis.run"
	OperationGraphCycles  OperationID = "graph.cycles"
	OperationGraphSummary OperationID = "graph.summary"
	OperationSystemHealth OperationID = "system.health"
)

type DepcycleToolInput struct {
	Operation OperationID     `json:"operation"`
	Params    json.RawMessage `json:"params,omitempty"`
}

type OperationDescriptor struct {
	ID          OperationID    `json:"id"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

type AnalysisRunInput struct {
	Graph                        *graph.Snapshot `json:"graph,omitempty"`
	DetectionMethod              string          `json:"detection_method,omitempty"`
	IncludeResolutionSuggestions *bool           `json:"include_resolution_suggestions,omitempty"`
	AnalyzeArchitectureImpact    *bool           `json:"analyze_architecture_impact,omitempty"`
	IncludePerformanceAnalysis   *bool           `json:"include_performance_analysis,omitempty"`
}

type AnalysisRunOutput struct {
	Report *analysis.Report `json:"report"`
}

type GraphCyclesInput struct {
	Limit           int    `json:"limit,omitempty"`
	DetectionMethod string `json:"detection_method,omitempty"`
}

type GraphCyclesOutput struct {
	CycleCount int            `json:"cycle_count"`
	Truncated  bool           `json:"truncated,omitempty"`
	Cycles     []cycles.Cycle `json:"cycles,omitempty"`
}

type GraphSummaryInput struct{}

type GraphSummaryOutput struct {
	Summary ports.GraphSummary `json:"summary"`
}

type SystemHealthInput struct{}

type SystemHealthOutput struct {
	Status     string                  `json:"status"`
	Components []ports.ComponentHealth `json:"components"`
}

type ToolError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e ToolError) Error() string {
	return e.Message
}

const (
	ErrorInvalidArgument = "invalid_argument"
	ErrorNotFound        = "not_found"
	ErrorInternal        = "internal"
	ErrorUnavailable     = "unavailable"
)
