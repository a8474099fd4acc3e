package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Analysis.DetectionMethod != "comprehensive" {
		t.Errorf("detection_method = %q", cfg.Analysis.DetectionMethod)
	}
	if cfg.Analysis.IncludeResolutionSuggestions == nil || !*cfg.Analysis.IncludeResolutionSuggestions {
		t.Error("include_resolution_suggestions should default to true")
	}
	if cfg.Analysis.MaxNodes != 2000 || cfg.Analysis.MaxEdges != 10000 {
		t.Errorf("caps = %d/%d", cfg.Analysis.MaxNodes, cfg.Analysis.MaxEdges)
	}
	if cfg.Server.Transport != "stdio" || cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if cfg.Server.MaxResponseItems != 500 {
		t.Errorf("max_response_items = %d", cfg.Server.MaxResponseItems)
	}
	if cfg.Observability.Address != "127.0.0.1:9095" {
		t.Errorf("observability address = %q", cfg.Observability.Address)
	}
}

func TestParse_ExplicitFalseSurvivesDefaults(t *testing.T) {
	cfg, err := Parse(`
[analysis]
include_resolution_suggestions = false
`)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.Analysis.IncludeResolutionSuggestions {
		t.Error("explicit false was overwritten by the default")
	}
	if !*cfg.Analysis.AnalyzeArchitectureImpact {
		t.Error("untouched flag should default true")
	}
}

func TestParse_RejectsBadDetectionMethod(t *testing.T) {
	_, err := Parse(`
[analysis]
detection_method = "floyd"
`)
	if err == nil || !strings.Contains(err.Error(), "detection_method") {
		t.Errorf("expected detection_method error, got %v", err)
	}
}

func TestParse_RejectsBadExcludePattern(t *testing.T) {
	_, err := Parse(`
[exclude]
nodes = ["[unclosed"]
`)
	if err == nil || !strings.Contains(err.Error(), "exclude.nodes") {
		t.Errorf("expected exclude pattern error, got %v", err)
	}
}

func TestParse_RejectsUnknownVersion(t *testing.T) {
	_, err := Parse("version = 7")
	if err == nil {
		t.Error("expected version error")
	}
}

func TestParse_ServerValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bad transport", "[server]\ntransport = \"grpc\""},
		{"timeout too small", "[server]\nrequest_timeout = \"100ms\""},
		{"response items out of range", "[server]\nmax_response_items = 9999"},
		{"duplicate allowlist", "[server]\noperation_allowlist = [\"graph.cycles\", \"graph.cycles\"]"},
		{"rate limit out of range", "[server.rate_limit]\nenabled = true\nrequests_per_minute = 0"},
	}
	for _, tc := range cases {
		if _, err := Parse(tc.raw); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestParse_AllowlistNormalized(t *testing.T) {
	cfg, err := Parse(`
[server]
operation_allowlist = [" Graph.Cycles ", "system.health"]
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.OperationAllowlist[0] != "graph.cycles" {
		t.Errorf("allowlist = %v", cfg.Server.OperationAllowlist)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "depcycle.toml")
	doc := `
version = 1
[analysis]
detection_method = "tarjan"
max_nodes = 50
[exclude]
nodes = ["vendor.*"]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.DetectionMethod != "tarjan" || cfg.Analysis.MaxNodes != 50 {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if len(cfg.Exclude.Nodes) != 1 || cfg.Exclude.Nodes[0] != "vendor.*" {
		t.Errorf("exclude = %v", cfg.Exclude.Nodes)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
