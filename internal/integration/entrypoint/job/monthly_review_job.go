// Package job runs the scheduled background jobs.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/review"
)

const monthlyReviewLockPrefix = "monthly-review:"

// BatchRunner generates the monthly reviews of every user.
type BatchRunner interface {
	Execute(ctx context.Context, input review.RunMonthlyBatchInput) (*review.RunMonthlyBatchOutput, error)
}

// MonthlyReviewJob runs the review batch on the last day of each month.
type MonthlyReviewJob struct {
	runner  BatchRunner
	lock    adapter.JobLock
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewMonthlyReviewJob creates a new MonthlyReviewJob.
func NewMonthlyReviewJob(runner BatchRunner, lock adapter.JobLock, lockTTL time.Duration) *MonthlyReviewJob {
	return &MonthlyReviewJob{
		runner:  runner,
		lock:    lock,
		lockTTL: lockTTL,
		logger:  slog.With("component", "monthly_review_job"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one tick. It returns false when the batch did not run.
func (j *MonthlyReviewJob) Run(ctx context.Context) bool {
	now := j.now()
	if !isLastDayOfMonth(now) {
		j.logger.Debug("not the last day of the month, skipping", "date", now.Format("2006-01-02"))
		return false
	}

	key := monthlyReviewLockPrefix + now.Format("2006-01")
	acquired, err := j.lock.Acquire(ctx, key, j.lockTTL)
	if err != nil {
		j.logger.Error("failed to acquire job lock", "key", key, "error", err)
		return false
	}
	if !acquired {
		j.logger.Info("monthly review batch already claimed by another instance", "key", key)
		return false
	}

	start := time.Now()
	out, err := j.runner.Execute(ctx, review.RunMonthlyBatchInput{Now: now})
	if err != nil {
		j.logger.Error("monthly review batch failed", "error", err)
		// Free the month so a later tick can retry.
		if releaseErr := j.lock.Release(ctx, key); releaseErr != nil {
			j.logger.Warn("failed to release job lock", "key", key, "error", releaseErr)
		}
		return false
	}

	j.logger.Info("monthly review batch finished",
		"month", out.Month.Format("2006-01"),
		"processed", out.Processed,
		"generated", out.Generated,
		"skipped", out.Skipped,
		"failed", out.Failed,
		"duration", time.Since(start),
	)
	return true
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

// Scheduler triggers jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewScheduler creates a Scheduler evaluating schedules in UTC.
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a job under a standard five-field cron expression.
func (s *Scheduler) Register(schedule string, run func(ctx context.Context) bool) error {
	if _, err := s.cron.AddFunc(schedule, func() { run(s.ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return nil
}

// Start begins running registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	s.once.Do(func() {
		s.cancel()
		done := s.cron.Stop()
		select {
		case <-done.Done():
		case <-ctx.Done():
			slog.Warn("scheduler stop timed out")
		}
	})
}
