package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
	"depcycle/internal/mcp/contracts"
)

const (
	maxLimitValue   = 5000
	maxInlineNodes  = 10000
	maxInlineEdges  = 50000
	maxNodeIDLength = 500
)

func ValidateToolArgs(tool string, raw map[string]any) (any, error) {
	_, input, err := ParseToolArgs(tool, raw)
	return input, err
}

func ParseToolArgs(tool string, raw map[string]any) (contracts.OperationID, any, error) {
	if strings.TrimSpace(tool) == "" {
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool name is required"}
	}
	if tool != contracts.ToolNameDepcycle {
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported tool: %s", tool)}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	operationRaw, ok := raw["operation"].(string)
	if !ok || strings.TrimSpace(operationRaw) == "" {
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "operation is required"}
	}
	operation := contracts.OperationID(strings.TrimSpace(operationRaw))

	params := map[string]any{}
	if rawParams, ok := raw["params"]; ok && rawParams != nil {
		if typed, ok := rawParams.(map[string]any); ok {
			params = typed
		} else {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "params must be an object"}
		}
	}

	switch operation {
	case contracts.OperationAnalysisRun:
		var input contracts.AnalysisRunInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		input.DetectionMethod = strings.TrimSpace(input.DetectionMethod)
		if err := validateMethod(input.DetectionMethod); err != nil {
			return "", nil, err
		}
		if err := validateInlineGraph(input.Graph); err != nil {
			return "", nil, err
		}
		return operation, input, nil
	case contracts.OperationGraphCycles:
		var input contracts.GraphCyclesInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		if input.Limit < 0 || input.Limit > maxLimitValue {
			return "", nil, invalidLimitError("limit")
		}
		input.DetectionMethod = strings.TrimSpace(input.DetectionMethod)
		if err := validateMethod(input.DetectionMethod); err != nil {
			return "", nil, err
		}
		return operation, input, nil
	case contracts.OperationGraphSummary:
		var input contracts.GraphSummaryInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		return operation, input, nil
	case contracts.OperationSystemHealth:
		var input contracts.SystemHealthInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		return operation, input, nil
	default:
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported operation: %s", operation)}
	}
}

func validateMethod(method string) error {
	if _, err := cycles.ParseSelection(method); err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: err.Error()}
	}
	return nil
}

// validateInlineGraph bounds caller-supplied graphs before any detection
// runs; the tracer strategy is not polynomially bounded on adversarial input.
func validateInlineGraph(s *graph.Snapshot) error {
	if s == nil {
		return nil
	}
	if len(s.Nodes) > maxInlineNodes {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("graph.nodes exceeds the maximum of %d", maxInlineNodes)}
	}
	if len(s.Edges) > maxInlineEdges {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("graph.edges exceeds the maximum of %d", maxInlineEdges)}
	}
	for _, n := range s.Nodes {
		if len(n.ID) > maxNodeIDLength {
			return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "node id is too long"}
		}
	}
	return nil
}

func decodeParams(params map[string]any, out any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "invalid params encoding"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "invalid params", Details: map[string]any{"error": err.Error()}}
	}
	return nil
}

func invalidLimitError(field string) error {
	return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("%s is out of range", field)}
}
