// Package health reports liveness and dependency readiness.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by the opened store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the body of /healthz and /readyz.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

type Checker struct {
	deps   map[string]Pinger
	logger *slog.Logger
	up     *prometheus.GaugeVec
}

// NewChecker registers jobtracker_health_check_up{dependency} on reg.
func NewChecker(deps map[string]Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	up := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "jobtracker",
		Name:      "health_check_up",
		Help:      "Whether a dependency answered its last readiness ping (1) or not (0).",
	}, []string{"dependency"})
	reg.MustRegister(up)

	return &Checker{
		deps:   deps,
		logger: logger.With("component", "health"),
		up:     up,
	}
}

// Liveness only proves the process can serve HTTP.
func (c *Checker) Liveness(context.Context) HealthResult {
	return HealthResult{Status: StatusUp}
}

// Readiness pings all dependencies in parallel. One failure marks the
// whole result down.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]CheckResult, len(c.deps))
	)
	for name, dep := range c.deps {
		wg.Go(func() {
			check := c.ping(ctx, name, dep)
			mu.Lock()
			checks[name] = check
			mu.Unlock()
		})
	}
	wg.Wait()

	result := HealthResult{Status: StatusUp, Checks: checks}
	for _, check := range checks {
		if check.Status == StatusDown {
			result.Status = StatusDown
			break
		}
	}
	return result
}

func (c *Checker) ping(ctx context.Context, name string, dep Pinger) CheckResult {
	if err := dep.Ping(ctx); err != nil {
		c.logger.WarnContext(ctx, "dependency not ready", "dependency", name, "error", err)
		c.up.WithLabelValues(name).Set(0)
		return CheckResult{Status: StatusDown, Error: err.Error()}
	}
	c.up.WithLabelValues(name).Set(1)
	return CheckResult{Status: StatusUp}
}
