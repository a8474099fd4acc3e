package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"depcycle/internal/core/errors"
	"depcycle/internal/core/ports"
	"depcycle/internal/engine/analysis"
	"depcycle/internal/engine/cycles"
	"depcycle/internal/engine/graph"
	"depcycle/internal/shared/observability"
)

type analysisService struct {
	app *App
}

var _ ports.Analyzer = (*analysisService)(nil)

func NewAnalysisService(app *App) ports.Analyzer {
	return &analysisService{app: app}
}

func (a *App) AnalysisService() ports.Analyzer {
	return NewAnalysisService(a)
}

// Analyze resolves a graph (inline or via the provider), applies exclusion
// filters and resource caps, and runs the analysis pipeline.
func (s *analysisService) Analyze(ctx context.Context, req ports.AnalysisRequest) (*analysis.Report, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.Analyze",
		trace.WithAttributes(attribute.String("detection_method", req.DetectionMethod)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot, err := s.resolveSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	opts, err := s.options(req)
	if err != nil {
		return nil, err
	}

	filtered := s.app.filterSnapshot(snapshot)
	g := filtered.Build()

	// The tracer strategy is exponential in adversarial graphs, so the
	// comprehensive set is narrowed to tarjan once the graph exceeds the
	// configured caps.
	if opts.DetectionMethod == cycles.SelectComprehensive && s.overCaps(g) {
		slog.Warn("graph exceeds configured caps, narrowing detection to tarjan",
			"nodes", g.NodeCount(), "edges", g.EdgeCount(),
			"max_nodes", s.app.Config.Analysis.MaxNodes, "max_edges", s.app.Config.Analysis.MaxEdges)
		opts.DetectionMethod = cycles.SelectTarjan
	}

	return analysis.Run(ctx, g, opts), nil
}

// Summary discovers the current graph and reports its shape without running
// detection.
func (s *analysisService) Summary(ctx context.Context) (ports.GraphSummary, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.Summary")
	defer span.End()

	snapshot, err := s.discover(ctx)
	if err != nil {
		return ports.GraphSummary{}, err
	}

	g := s.app.filterSnapshot(snapshot).Build()
	byType := make(map[string]int)
	for _, n := range g.Nodes() {
		byType[string(n.Type)]++
	}

	return ports.GraphSummary{
		Nodes:       g.NodeCount(),
		Edges:       g.EdgeCount(),
		NodesByType: byType,
		Provider:    s.app.ProviderName(),
	}, nil
}

func (s *analysisService) resolveSnapshot(ctx context.Context, req ports.AnalysisRequest) (graph.Snapshot, error) {
	if req.Graph != nil {
		return *req.Graph, nil
	}
	return s.discover(ctx)
}

func (s *analysisService) discover(ctx context.Context) (graph.Snapshot, error) {
	if s.app.Provider == nil {
		return graph.Snapshot{}, errors.New(errors.CodeUpstreamUnavailable, "no graph provider configured")
	}

	start := time.Now()
	snapshot, err := s.app.Provider.Discover(ctx)
	observability.DiscoveryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return graph.Snapshot{}, errors.AddContext(
			errors.Wrap(err, errors.CodeUpstreamUnavailable, "graph discovery failed"),
			errors.CtxProvider, s.app.ProviderName())
	}
	return snapshot, nil
}

func (s *analysisService) options(req ports.AnalysisRequest) (analysis.Options, error) {
	cfg := s.app.Config.Analysis

	method := req.DetectionMethod
	if method == "" {
		method = cfg.DetectionMethod
	}
	selection, err := cycles.ParseSelection(method)
	if err != nil {
		return analysis.Options{}, errors.Wrap(err, errors.CodeValidationError, "invalid detection method")
	}

	pick := func(override, configured *bool) bool {
		if override != nil {
			return *override
		}
		if configured != nil {
			return *configured
		}
		return true
	}

	return analysis.Options{
		IncludeResolutionSuggestions: pick(req.IncludeResolutionSuggestions, cfg.IncludeResolutionSuggestions),
		AnalyzeArchitectureImpact:    pick(req.AnalyzeArchitectureImpact, cfg.AnalyzeArchitectureImpact),
		IncludePerformanceAnalysis:   pick(req.IncludePerformanceAnalysis, cfg.IncludePerformanceAnalysis),
		DetectionMethod:              selection,
	}, nil
}

func (s *analysisService) overCaps(g *graph.Graph) bool {
	return g.NodeCount() > s.app.Config.Analysis.MaxNodes ||
		g.EdgeCount() > s.app.Config.Analysis.MaxEdges
}
