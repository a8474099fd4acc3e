package config

import "time"

type Config struct {
	Version       int           `toml:"version"`
	Analysis      Analysis      `toml:"analysis"`
	Exclude       Exclude       `toml:"exclude"`
	Server        Server        `toml:"server"`
	Observability Observability `toml:"observability"`
}

type Analysis struct {
	DetectionMethod              string `toml:"detection_method"`
	IncludeResolutionSuggestions *bool  `toml:"include_resolution_suggestions"`
	AnalyzeArchitectureImpact    *bool  `toml:"analyze_architecture_impact"`
	IncludePerformanceAnalysis   *bool  `toml:"include_performance_analysis"`
	MaxNodes                     int    `toml:"max_nodes"`
	MaxEdges                     int    `toml:"max_edges"`
}

type Exclude struct {
	Nodes []string `toml:"nodes"` // Glob patterns on node ids
}

type Server struct {
	Enabled            bool          `toml:"enabled"`
	Transport          string        `toml:"transport"`
	Address            string        `toml:"address"`
	RequestTimeout     time.Duration `toml:"request_timeout"`
	MaxResponseItems   int           `toml:"max_response_items"`
	OperationAllowlist []string      `toml:"operation_allowlist"`
	RateLimit          RateLimit     `toml:"rate_limit"`
}

type RateLimit struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

type Observability struct {
	Address string  `toml:"address"`
	Tracing Tracing `toml:"tracing"`
}

type Tracing struct {
	Enabled      bool   `toml:"enabled"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}
