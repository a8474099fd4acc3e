package app

import (
	"context"
	"fmt"
	"time"

	"depcycle/internal/core/ports"
	"depcycle/internal/shared/util"
)

type HealthStatus struct {
	Status     string                  `json:"status"`
	Timestamp  time.Time               `json:"timestamp"`
	Components []ports.ComponentHealth `json:"components"`
}

type HealthService struct {
	app *App
}

var _ ports.HealthReporter = (*HealthService)(nil)

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Health(ctx context.Context) []ports.ComponentHealth {
	return s.Check(ctx).Components
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "up",
		Timestamp: time.Now().UTC(),
	}

	add := func(name, state, detail string) {
		status.Components = append(status.Components, ports.ComponentHealth{
			Name:   name,
			Status: state,
			Detail: detail,
		})
		if state != "ok" {
			status.Status = "degraded"
		}
	}

	if s.app.Config == nil {
		add("config", "missing", "")
	} else {
		add("config", "ok", fmt.Sprintf("version %d", s.app.Config.Version))
	}

	if s.app.Provider == nil {
		add("provider", "missing", "no graph provider configured")
	} else {
		add("provider", "ok", s.app.ProviderName())
	}

	add("memory", "ok", fmt.Sprintf("%d MB heap", util.GetHeapAllocMB()))

	return status
}
