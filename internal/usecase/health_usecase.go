package usecase

import (
	"context"
	"time"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks ...HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check reports "ok" per dependency and overall, or "degraded" overall when
// any optional dependency is down. The console keeps serving either way.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": "ok",
	}
	for _, hc := range u.checks {
		checkCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := hc.Check(checkCtx)
		cancel()
		if err != nil {
			result[hc.Name] = "down"
			result["status"] = "degraded"
			continue
		}
		result[hc.Name] = "ok"
	}
	return result
}
