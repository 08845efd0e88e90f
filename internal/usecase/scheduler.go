package usecase

import (
	"context"
	"log/slog"
	"time"

	"LinkBrief/internal/domain"
	"LinkBrief/internal/ports"
)

// Scheduler wires the interval driver with the ingestion pipeline.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	source   ports.MessageSource
	cfg      domain.AIConfig
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring ingestion runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, source ports.MessageSource, cfg domain.AIConfig, log *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, source: source, cfg: cfg, logger: log}
}

// Start registers the ingestion job with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil || s.source == nil {
		return nil
	}
	return s.driver.Start(ctx, func(trigger time.Time) {
		s.RunOnce(ctx, trigger)
	})
}

// RunOnce reads the message source and ingests it; errors are logged.
func (s *Scheduler) RunOnce(ctx context.Context, trigger time.Time) {
	messages, err := s.source.Messages(ctx)
	if err != nil {
		s.log(slog.LevelError, "read messages", "error", err)
		return
	}

	report, err := s.pipeline.Ingest(ctx, messages, s.cfg)
	if err != nil {
		s.log(slog.LevelError, "ingest", "error", err)
		return
	}
	s.log(slog.LevelInfo, "ingest finished",
		"trigger", trigger.Format(time.RFC3339),
		"extracted", report.Extracted,
		"skipped", report.Skipped,
		"rejected", len(report.Rejected),
		"collected", len(report.Collected),
		"failed", len(report.Failed),
	)
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

func (s *Scheduler) log(level slog.Level, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Log(context.Background(), level, msg, args...)
}
