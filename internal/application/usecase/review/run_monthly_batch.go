package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// DefaultBatchConcurrency is the number of users processed at once.
const DefaultBatchConcurrency = 4

// RunMonthlyBatchInput represents the input of a batch run.
type RunMonthlyBatchInput struct {
	Now time.Time
}

// RunMonthlyBatchOutput summarizes a batch run.
type RunMonthlyBatchOutput struct {
	Month     time.Time
	Processed int
	Generated int
	Skipped   int
	Failed    int
}

// RunMonthlyBatchUseCase generates the current month's review for every user.
type RunMonthlyBatchUseCase struct {
	userRepo    adapter.UserRepository
	reviewRepo  adapter.MonthlyReviewRepository
	builder     *MonthDataBuilder
	pipeline    *Pipeline
	notifier    adapter.ReviewNotifier
	concurrency int
}

// NewRunMonthlyBatchUseCase creates a new RunMonthlyBatchUseCase instance.
// notifier may be nil, in which case no email is queued.
func NewRunMonthlyBatchUseCase(
	userRepo adapter.UserRepository,
	reviewRepo adapter.MonthlyReviewRepository,
	builder *MonthDataBuilder,
	pipeline *Pipeline,
	notifier adapter.ReviewNotifier,
	concurrency int,
) *RunMonthlyBatchUseCase {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &RunMonthlyBatchUseCase{
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
		builder:     builder,
		pipeline:    pipeline,
		notifier:    notifier,
		concurrency: concurrency,
	}
}

type userOutcome int

const (
	outcomeGenerated userOutcome = iota
	outcomeSkipped
)

// Execute runs the batch. An unreachable generator aborts the whole run; any
// other failure is logged per user and counted without stopping the others.
func (uc *RunMonthlyBatchUseCase) Execute(ctx context.Context, input RunMonthlyBatchInput) (*RunMonthlyBatchOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	month := entity.FirstOfMonth(now)
	logger := slog.Default().With("month", month.Format("2006-01"))

	if err := uc.pipeline.Preflight(ctx); err != nil {
		logger.Error("Monthly review batch aborted", "error", err)
		return nil, err
	}

	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	logger.Info("Monthly review batch started", "users", len(users))

	var generated, skipped, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(uc.concurrency)
	for _, user := range users {
		g.Go(func() error {
			outcome, err := uc.processUser(ctx, user, month, now)
			if err != nil {
				failed.Add(1)
				logger.Error("Monthly review failed for user", "user_id", user.ID, "error", err)
				return nil
			}
			switch outcome {
			case outcomeGenerated:
				generated.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := &RunMonthlyBatchOutput{
		Month:     month,
		Processed: len(users),
		Generated: int(generated.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
	}
	logger.Info("Monthly review batch finished",
		"processed", out.Processed,
		"generated", out.Generated,
		"skipped", out.Skipped,
		"failed", out.Failed,
	)
	return out, nil
}

func (uc *RunMonthlyBatchUseCase) processUser(ctx context.Context, user *entity.User, month, now time.Time) (userOutcome, error) {
	exists, err := uc.reviewRepo.ExistsByUserAndMonth(ctx, user.ID, month)
	if err != nil {
		return 0, err
	}
	if exists {
		return outcomeSkipped, nil
	}

	count, err := uc.builder.CountTransactions(ctx, user.ID, month)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		slog.Debug("No transactions this month, review not generated", "user_id", user.ID)
		return outcomeSkipped, nil
	}

	current, err := uc.builder.Build(ctx, user.ID, month, now)
	if err != nil {
		return 0, err
	}

	review, cached, err := uc.pipeline.Generate(ctx, user, month, current, now)
	if err != nil {
		return 0, err
	}
	if cached {
		return outcomeSkipped, nil
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyReviewReady(ctx, user, review); err != nil {
			slog.Warn("Failed to queue review ready email", "user_id", user.ID, "error", err)
		}
	}
	return outcomeGenerated, nil
}
