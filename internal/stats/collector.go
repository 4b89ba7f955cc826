// Package stats periodically publishes aggregate job counts as metrics.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/metrics"
	"github.com/robfig/cron/v3"
)

const collectTimeout = 10 * time.Second

type statusCounter interface {
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

type Collector struct {
	repo     statusCounter
	logger   *slog.Logger
	spec     string
	schedule cron.Schedule
}

// NewCollector parses spec as a standard cron expression or descriptor
// such as "@every 1m".
func NewCollector(repo statusCounter, logger *slog.Logger, spec string) (*Collector, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse stats schedule %q: %w", spec, err)
	}

	return &Collector{
		repo:     repo,
		logger:   logger.With("component", "stats_collector"),
		spec:     spec,
		schedule: schedule,
	}, nil
}

// Start collects once, then on every tick until ctx is done.
func (c *Collector) Start(ctx context.Context) {
	c.collect(ctx)

	runner := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	runner.Schedule(c.schedule, cron.FuncJob(func() { c.collect(ctx) }))
	runner.Start()

	c.logger.Info("stats collector started", "schedule", c.spec)

	<-ctx.Done()
	<-runner.Stop().Done()
	c.logger.Info("stats collector shut down")
}

func (c *Collector) collect(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.StatsCollectDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	counts, err := c.repo.CountByStatus(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Error("count jobs by status", "error", err)
		}
		metrics.StatsCollectFailuresTotal.Inc()
		return
	}

	// every known status gets a sample, zero included
	for _, s := range domain.Statuses {
		metrics.JobsByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
	c.logger.Debug("job stats collected", "counts", counts)
}
