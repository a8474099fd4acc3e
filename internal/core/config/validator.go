package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"depcycle/internal/engine/cycles"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; only version 1 is supported", cfg.Version)
	}
	return nil
}

func validateAnalysis(cfg *Config) error {
	if _, err := cycles.ParseSelection(cfg.Analysis.DetectionMethod); err != nil {
		return fmt.Errorf("analysis.detection_method: %w", err)
	}
	if cfg.Analysis.MaxNodes < 1 || cfg.Analysis.MaxNodes > 100000 {
		return fmt.Errorf("analysis.max_nodes must be between 1 and 100000, got %d", cfg.Analysis.MaxNodes)
	}
	if cfg.Analysis.MaxEdges < 1 || cfg.Analysis.MaxEdges > 1000000 {
		return fmt.Errorf("analysis.max_edges must be between 1 and 1000000, got %d", cfg.Analysis.MaxEdges)
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Nodes {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude.nodes[%d] must not be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("exclude.nodes[%d]: invalid pattern %q: %w", i, pattern, err)
		}
	}
	return nil
}

func validateServer(cfg *Config) error {
	switch cfg.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("server.transport must be one of: stdio, http")
	}
	if cfg.Server.Transport == "http" && cfg.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty when server.transport=http")
	}
	if cfg.Server.MaxResponseItems < 1 || cfg.Server.MaxResponseItems > 5000 {
		return fmt.Errorf("server.max_response_items must be between 1 and 5000")
	}
	if cfg.Server.RequestTimeout < time.Second || cfg.Server.RequestTimeout > 2*time.Minute {
		return fmt.Errorf("server.request_timeout must be between 1s and 2m")
	}

	if len(cfg.Server.OperationAllowlist) > 0 {
		seen := make(map[string]bool, len(cfg.Server.OperationAllowlist))
		for _, op := range cfg.Server.OperationAllowlist {
			if seen[op] {
				return fmt.Errorf("duplicate entry %q in server.operation_allowlist", op)
			}
			seen[op] = true
		}
	}

	rl := cfg.Server.RateLimit
	if rl.Enabled {
		if rl.RequestsPerMinute < 1 || rl.RequestsPerMinute > 100000 {
			return fmt.Errorf("server.rate_limit.requests_per_minute must be between 1 and 100000")
		}
		if rl.Burst < 1 || rl.Burst > 10000 {
			return fmt.Errorf("server.rate_limit.burst must be between 1 and 10000")
		}
	}
	return nil
}
