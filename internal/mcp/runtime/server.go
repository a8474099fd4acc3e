package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"depcycle/internal/core/config"
	"depcycle/internal/core/ports"
	"depcycle/internal/mcp/contracts"
	"depcycle/internal/mcp/registry"
	"depcycle/internal/mcp/tools/analysisrun"
	"depcycle/internal/mcp/tools/graphinfo"
	"depcycle/internal/mcp/tools/system"
	"depcycle/internal/mcp/transport"
	"depcycle/internal/mcp/validate"
	"depcycle/internal/shared/observability"
)

type Dependencies struct {
	Analysis ports.Analyzer
	Health   ports.HealthReporter
	Logger   *slog.Logger
}

type Server struct {
	cfg       *config.Config
	deps      Dependencies
	registry  *registry.Registry
	transport transport.Adapter
	allowlist OperationAllowlist
	toolName  string

	mu      sync.Mutex
	running bool
}

func New(cfg *config.Config, deps Dependencies, reg *registry.Registry, adapter transport.Adapter, allowlist OperationAllowlist, toolName string) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Analysis == nil {
		return nil, fmt.Errorf("analysis service dependency is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if reg == nil {
		reg = registry.New()
	}
	if adapter == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if strings.TrimSpace(toolName) == "" {
		toolName = contracts.ToolNameDepcycle
	}

	return &Server{
		cfg:       cfg,
		deps:      deps,
		registry:  reg,
		transport: adapter,
		allowlist: allowlist,
		toolName:  toolName,
	}, nil
}

func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
	s.running = true
	s.mu.Unlock()

	s.deps.Logger.Info("tool server active", "transport", s.cfg.Server.Transport, "tool", s.toolName)

	if err := s.registerDefaultTool(); err != nil {
		return err
	}

	err := s.transport.Start(ctx, s.handleToolCall)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return err
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	return s.transport.Stop()
}

func (s *Server) Run(ctx context.Context) error {
	return s.Start(ctx)
}

func (s *Server) registerDefaultTool() error {
	if _, ok := s.registry.HandlerFor(s.toolName); ok {
		return nil
	}
	return s.registry.Register(s.toolName, func(ctx context.Context, input any) (any, error) {
		raw, ok := input.(map[string]any)
		if !ok {
			return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool args must be an object"}
		}
		return s.dispatchOperation(ctx, raw)
	})
}

func (s *Server) handleToolCall(ctx context.Context, tool string, raw map[string]any) (any, error) {
	if strings.TrimSpace(tool) == "" {
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool is required"}
	}
	if !strings.EqualFold(tool, s.toolName) {
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported tool: %s", tool)}
	}

	handler, ok := s.registry.HandlerFor(s.toolName)
	if !ok {
		return nil, contracts.ToolError{Code: contracts.ErrorUnavailable, Message: "tool handler not registered"}
	}

	timeout := s.cfg.Server.RequestTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := handler(ctx, raw)
	if err != nil {
		return nil, toToolError(err)
	}
	return out, nil
}

func (s *Server) dispatchOperation(ctx context.Context, raw map[string]any) (any, error) {
	operation, input, err := validate.ParseToolArgs(contracts.ToolNameDepcycle, raw)
	if err != nil {
		observability.ToolRequestsTotal.WithLabelValues("invalid", "error").Inc()
		return nil, err
	}
	if !s.allowlist.Allows(operation) {
		observability.ToolRequestsTotal.WithLabelValues(string(operation), "denied").Inc()
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("operation not allowlisted: %s", operation)}
	}

	out, err := s.runOperation(ctx, operation, input)
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.ToolRequestsTotal.WithLabelValues(string(operation), status).Inc()
	if err != nil {
		return nil, err
	}
	return wrapToolResult(operation, out), nil
}

func (s *Server) runOperation(ctx context.Context, operation contracts.OperationID, input any) (any, error) {
	maxItems := s.cfg.Server.MaxResponseItems
	switch operation {
	case contracts.OperationAnalysisRun:
		return analysisrun.HandleRun(ctx, s.deps.Analysis, input.(contracts.AnalysisRunInput))
	case contracts.OperationGraphCycles:
		return graphinfo.HandleCycles(ctx, s.deps.Analysis, input.(contracts.GraphCyclesInput), maxItems)
	case contracts.OperationGraphSummary:
		return graphinfo.HandleSummary(ctx, s.deps.Analysis, input.(contracts.GraphSummaryInput))
	case contracts.OperationSystemHealth:
		return system.HandleHealth(ctx, s.deps.Health, input.(contracts.SystemHealthInput))
	default:
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported operation: %s", operation)}
	}
}

func wrapToolResult(operation contracts.OperationID, payload any) any {
	return map[string]any{
		"version":   contracts.ContractVersion,
		"operation": operation,
		"result":    payload,
	}
}

func toToolError(err error) error {
	var toolErr contracts.ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return contracts.ToolError{Code: contracts.ErrorUnavailable, Message: "request timed out"}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	code := contracts.ErrorInternal
	switch {
	case strings.Contains(lower, "upstream_unavailable"), strings.Contains(lower, "unavailable"):
		code = contracts.ErrorUnavailable
	case strings.Contains(lower, "not_found"), strings.Contains(lower, "not found"):
		code = contracts.ErrorNotFound
	case strings.Contains(lower, "validation_error"), strings.Contains(lower, "invalid"), strings.Contains(lower, "required"), strings.Contains(lower, "must be"):
		code = contracts.ErrorInvalidArgument
	}
	return contracts.ToolError{Code: code, Message: msg}
}
