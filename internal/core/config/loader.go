package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes, defaults, normalizes and validates a TOML document.
func Parse(raw string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(raw, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	normalizeServer(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateAnalysis(&cfg); err != nil {
		return nil, err
	}
	if err := validateExclude(&cfg); err != nil {
		return nil, err
	}
	if err := validateServer(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Analysis.DetectionMethod) == "" {
		cfg.Analysis.DetectionMethod = "comprehensive"
	}
	if cfg.Analysis.IncludeResolutionSuggestions == nil {
		enabled := true
		cfg.Analysis.IncludeResolutionSuggestions = &enabled
	}
	if cfg.Analysis.AnalyzeArchitectureImpact == nil {
		enabled := true
		cfg.Analysis.AnalyzeArchitectureImpact = &enabled
	}
	if cfg.Analysis.IncludePerformanceAnalysis == nil {
		enabled := true
		cfg.Analysis.IncludePerformanceAnalysis = &enabled
	}
	if cfg.Analysis.MaxNodes <= 0 {
		cfg.Analysis.MaxNodes = 2000
	}
	if cfg.Analysis.MaxEdges <= 0 {
		cfg.Analysis.MaxEdges = 10000
	}

	if strings.TrimSpace(cfg.Server.Transport) == "" {
		cfg.Server.Transport = "stdio"
	}
	if strings.TrimSpace(cfg.Server.Address) == "" {
		cfg.Server.Address = "127.0.0.1:8765"
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.MaxResponseItems == 0 {
		cfg.Server.MaxResponseItems = 500
	}
	if cfg.Server.RateLimit.RequestsPerMinute <= 0 {
		cfg.Server.RateLimit.RequestsPerMinute = 120
	}
	if cfg.Server.RateLimit.Burst <= 0 {
		cfg.Server.RateLimit.Burst = 10
	}

	if strings.TrimSpace(cfg.Observability.Address) == "" {
		cfg.Observability.Address = "127.0.0.1:9095"
	}
	if strings.TrimSpace(cfg.Observability.Tracing.OTLPEndpoint) == "" {
		cfg.Observability.Tracing.OTLPEndpoint = "localhost:4317"
	}
}

func normalizeServer(cfg *Config) {
	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	cfg.Server.Address = strings.TrimSpace(cfg.Server.Address)
	if len(cfg.Server.OperationAllowlist) == 0 {
		return
	}
	normalized := make([]string, 0, len(cfg.Server.OperationAllowlist))
	for _, op := range cfg.Server.OperationAllowlist {
		op = strings.ToLower(strings.TrimSpace(op))
		if op == "" {
			continue
		}
		normalized = append(normalized, op)
	}
	cfg.Server.OperationAllowlist = normalized
}
