package schema

import "depcycle/internal/mcp/contracts"

type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
	Version     string         `json:"version"`
}

func BuildToolDefinitions() []ToolDefinition {
	operations := []string{
		string(contracts.OperationAnalysisRun),
		string(contracts.OperationGraphCycles),
		string(contracts.OperationGraphSummary),
		string(contracts.OperationSystemHealth),
	}

	return []ToolDefinition{
		{
			Name:        contracts.ToolNameDepcycle,
			Description: "Single entry tool for dependency-cycle analysis operations.",
			Version:     contracts.ContractVersion,
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"operation": map[string]any{
						"type":        "string",
						"description": "Operation identifier (e.g., analysis.run).",
						"enum":        operations,
					},
					"params": map[string]any{
						"type":                 "object",
						"additionalProperties": true,
					},
				},
				"required": []string{"operation"},
			},
		},
	}
}
