package system

import (
	"context"

	"depcycle/internal/core/ports"
	"depcycle/internal/mcp/contracts"
)

func HandleHealth(ctx context.Context, reporter ports.HealthReporter, _ contracts.SystemHealthInput) (contracts.SystemHealthOutput, error) {
	if reporter == nil {
		return contracts.SystemHealthOutput{}, contracts.ToolError{
			Code:    contracts.ErrorUnavailable,
			Message: "health reporter is not configured",
		}
	}

	components := reporter.Health(ctx)
	status := "up"
	for _, c := range components {
		if c.Status != "ok" {
			status = "degraded"
			break
		}
	}

	return contracts.SystemHealthOutput{
		Status:     status,
		Components: components,
	}, nil
}
