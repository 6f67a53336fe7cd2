package usecase

import (
	"context"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// readiness is implemented by the background workers.
type readiness interface {
	Ready() bool
}

// HealthReport is the readiness of the backend and of each worker.
type HealthReport struct {
	Backend types.HealthStatus `json:"backend"`
	Workers map[string]bool    `json:"workers"`
}

// Ready reports whether a case can run without waiting on initialization.
func (h HealthReport) Ready() bool {
	if !h.Backend.IsReady() {
		return false
	}
	for _, ok := range h.Workers {
		if !ok {
			return false
		}
	}
	return true
}

// HealthUseCase aggregates readiness.
type HealthUseCase struct {
	checker interfaces.HealthChecker
	workers map[string]readiness
}

func (uc *HealthUseCase) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Backend: types.HealthStatusNotReady,
		Workers: make(map[string]bool, len(uc.workers)),
	}

	if uc.checker != nil {
		status, err := uc.checker.Health(ctx)
		if err != nil {
			logging.From(ctx).Warn("health check failed", "error", err.Error())
		} else {
			report.Backend = status
		}
	}

	for name, w := range uc.workers {
		report.Workers[name] = w.Ready()
	}
	return report
}
