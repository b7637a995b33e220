package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthCheck pings one external dependency.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Status    string          `json:"status"` // "ok" or "degraded"
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth = HealthStatus{Status: "ok", Checks: map[string]bool{}}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	checks := make(map[string]bool, len(currentHealth.Checks))
	for k, v := range currentHealth.Checks {
		checks[k] = v
	}
	return HealthStatus{Status: currentHealth.Status, Checks: checks, CheckedAt: currentHealth.CheckedAt}
}

// RunHealthChecks runs every check once and stores the snapshot.
func RunHealthChecks(ctx context.Context, checks map[string]HealthCheck) HealthStatus {
	results := make(map[string]bool, len(checks))
	status := "ok"
	for name, check := range checks {
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check(cctx)
		cancel()
		results[name] = err == nil
		if err != nil {
			status = "degraded"
			GetLogger().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
		}
	}

	snapshot := HealthStatus{Status: status, Checks: results, CheckedAt: time.Now()}
	mu.Lock()
	currentHealth = snapshot
	mu.Unlock()
	return snapshot
}

// StartHealthMonitor performs periodic health checks until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, checks map[string]HealthCheck, interval time.Duration) {
	if len(checks) == 0 {
		return
	}
	if interval <= 0 {
		interval = HealthCheckInterval
	}
	RunHealthChecks(ctx, checks)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunHealthChecks(ctx, checks)
			}
		}
	}()
}
