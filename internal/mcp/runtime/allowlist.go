package runtime

import (
	"strings"

	"depcycle/internal/core/config"
	"depcycle/internal/mcp/contracts"
)

type OperationAllowlist struct {
	allowAll bool
	allowed  map[contracts.OperationID]bool
}

func BuildOperationAllowlist(cfg *config.Config) OperationAllowlist {
	if cfg == nil {
		return OperationAllowlist{allowAll: true}
	}

	entries := cfg.Server.OperationAllowlist
	if len(entries) == 0 {
		return OperationAllowlist{allowAll: true}
	}

	allowed := make(map[contracts.OperationID]bool)
	for _, entry := range entries {
		id := normalizeOperationAlias(entry)
		if id == "" {
			continue
		}
		allowed[id] = true
	}

	return OperationAllowlist{allowed: allowed}
}

func (o OperationAllowlist) Allows(id contracts.OperationID) bool {
	if o.allowAll {
		return true
	}
	return o.allowed[id]
}

func normalizeOperationAlias(raw string) contracts.OperationID {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "analysis.run", "analyze":
		return contracts.OperationAnalysisRun
	case "graph.cycles", "detect_cycles":
		return contracts.OperationGraphCycles
	case "graph.summary":
		return contracts.OperationGraphSummary
	case "system.health", "health":
		return contracts.OperationSystemHealth
	default:
		return ""
	}
}
