package usecase

import (
	"context"
	"log/slog"
	"time"

	"DemandScout/internal/ports"
)

// Scheduler wires the cron driver with recurring pipeline runs.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	registry *RunRegistry
	maxPosts int
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring crawls. The
// registry may be nil when nobody needs to inspect scheduled runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, registry *RunRegistry, maxPosts int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		driver:   driver,
		pipeline: pipeline,
		registry: registry,
		maxPosts: maxPosts,
		logger:   logger,
	}
}

// Start registers a job that crawls every configured platform on each tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		for _, platform := range s.pipeline.Platforms() {
			var id string
			if s.registry != nil {
				id = s.registry.Create(platform)
			}

			result := s.pipeline.Run(ctx, platform, s.maxPosts)

			if s.registry != nil {
				_ = s.registry.Complete(id, result)
			}
			if s.logger != nil {
				s.logger.Info("scheduled run finished",
					"platform", platform,
					"trigger", trigger.Format(time.RFC3339),
					"status", result.Status,
					"demands_saved", result.Stats.DemandsSaved)
			}
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
