// Package scheduler manages the two background goroutines behind the
// marketplace:
//  1. analyticsRefreshLoop – regenerates stale creator analytics periodically.
//  2. insightWorkerLoop    – drains PENDING AI insight jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/service"
)

// Batch sizes per tick. Small enough to keep each tick short, large enough
// that the queues drain faster than they fill.
const (
	analyticsBatchSize = 50
	insightBatchSize   = 10
)

// Scheduler runs the background maintenance loops. Call Start(ctx) once from
// main(); cancel the context to shut it down gracefully.
type Scheduler struct {
	creatorSvc *service.CreatorService
	insightSvc *service.InsightService
	cfg        *config.Config
	logger     *slog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(
	creatorSvc *service.CreatorService,
	insightSvc *service.InsightService,
	cfg *config.Config,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		creatorSvc: creatorSvc,
		insightSvc: insightSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start launches the background goroutines. It returns immediately; all
// loops run until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.analyticsRefreshLoop(ctx)
	go s.insightWorkerLoop(ctx)
	s.logger.Info("scheduler started",
		"analytics_interval", s.cfg.Analytics.RefreshInterval,
		"insight_poll", s.cfg.Insight.PollInterval)
}

// ──────────────────────────────────────────────────────────────────────────────
// analyticsRefreshLoop
// ──────────────────────────────────────────────────────────────────────────────

// analyticsRefreshLoop regenerates creator analytics older than
// Analytics.StaleAfter on every Analytics.RefreshInterval tick.
func (s *Scheduler) analyticsRefreshLoop(ctx context.Context) {
	defer s.recoverAndLog("analyticsRefreshLoop")

	ticker := time.NewTicker(s.cfg.Analytics.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("analyticsRefreshLoop: shutting down")
			return
		case <-ticker.C:
			refreshed, err := s.creatorSvc.RefreshStale(ctx, analyticsBatchSize)
			if err != nil {
				s.logger.Error("analyticsRefreshLoop: RefreshStale", "err", err)
				continue
			}
			if refreshed > 0 {
				s.logger.Info("creator analytics refreshed", "count", refreshed)
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// insightWorkerLoop
// ──────────────────────────────────────────────────────────────────────────────

// insightWorkerLoop polls for PENDING insight jobs every Insight.PollInterval
// and processes them. Claiming uses FOR UPDATE SKIP LOCKED, so running more
// than one server instance is safe.
func (s *Scheduler) insightWorkerLoop(ctx context.Context) {
	defer s.recoverAndLog("insightWorkerLoop")

	ticker := time.NewTicker(s.cfg.Insight.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("insightWorkerLoop: shutting down")
			return
		case <-ticker.C:
			processed, err := s.insightSvc.ProcessPending(ctx, insightBatchSize)
			if err != nil {
				s.logger.Error("insightWorkerLoop: ProcessPending", "err", err)
				continue
			}
			if processed > 0 {
				s.logger.Info("insight jobs completed", "count", processed)
			}
		}
	}
}

// recoverAndLog is deferred inside each goroutine to catch unexpected panics,
// log them, and allow the scheduler to continue running.
func (s *Scheduler) recoverAndLog(loop string) {
	if r := recover(); r != nil {
		s.logger.Error("PANIC recovered in scheduler loop",
			"loop", loop, "panic", r)
	}
}
