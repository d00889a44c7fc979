// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"time"

	"construlink/internal/application/subscription/usecases"
	"construlink/internal/shared/logger"
)

// TrialSweepScheduler drives the trial countdown sweep on a fixed interval.
// The sweep itself is idempotent within a day, so the interval only affects
// how quickly a lapsed trial is noticed, not how many emails go out.
type TrialSweepScheduler struct {
	sweep    *usecases.ProcessTrialRemindersUseCase
	logger   logger.Interface
	stopChan chan struct{}
	interval time.Duration
}

func NewTrialSweepScheduler(
	sweep *usecases.ProcessTrialRemindersUseCase,
	interval time.Duration,
	logger logger.Interface,
) *TrialSweepScheduler {
	return &TrialSweepScheduler{
		sweep:    sweep,
		logger:   logger,
		stopChan: make(chan struct{}),
		interval: interval,
	}
}

// Start blocks until the context is cancelled or Stop is called.
func (s *TrialSweepScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting trial sweep scheduler", "interval", s.interval)

	// Run immediately on start
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("trial sweep scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("trial sweep scheduler stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *TrialSweepScheduler) Stop() {
	close(s.stopChan)
}

func (s *TrialSweepScheduler) runSweep(ctx context.Context) {
	s.logger.Debugw("trial sweep started")

	result, err := s.sweep.Execute(ctx)
	if err != nil {
		s.logger.Errorw("trial sweep failed", "error", err)
		return
	}

	s.logger.Debugw("trial sweep completed",
		"scanned", result.Scanned,
		"reminders_sent", result.RemindersSent,
		"trials_ended", result.TrialsEnded,
	)
}
