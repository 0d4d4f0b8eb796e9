package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// NoTransactionsMessage is returned instead of an analysis for an empty month.
const NoTransactionsMessage = "No transactions found for this month."

// GetMonthlyReviewInput represents the input for the current month's review.
type GetMonthlyReviewInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// GetMonthlyReviewOutput represents a review or the skipped state of a month.
// AnalysisText is nil and IsActive false when the month has no transactions.
type GetMonthlyReviewOutput struct {
	Month         time.Time
	CurrentMonth  *entity.MonthData
	PreviousMonth *entity.MonthData
	AnalysisText  *string
	IsCached      bool
	IsActive      bool
	Message       string
}

// GetMonthlyReviewUseCase serves the current month's review, generating it on
// the first request.
type GetMonthlyReviewUseCase struct {
	reviewRepo adapter.MonthlyReviewRepository
	userRepo   adapter.UserRepository
	builder    *MonthDataBuilder
	pipeline   *Pipeline
}

// NewGetMonthlyReviewUseCase creates a new GetMonthlyReviewUseCase instance.
func NewGetMonthlyReviewUseCase(
	reviewRepo adapter.MonthlyReviewRepository,
	userRepo adapter.UserRepository,
	builder *MonthDataBuilder,
	pipeline *Pipeline,
) *GetMonthlyReviewUseCase {
	return &GetMonthlyReviewUseCase{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		builder:    builder,
		pipeline:   pipeline,
	}
}

// Execute returns the stored review for the month, or generates one.
func (uc *GetMonthlyReviewUseCase) Execute(ctx context.Context, input GetMonthlyReviewInput) (*GetMonthlyReviewOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	month := entity.FirstOfMonth(now)

	stored, err := uc.reviewRepo.FindByUserAndMonth(ctx, input.UserID, month)
	if err == nil {
		return fromReview(stored, true), nil
	}
	if !errors.Is(err, domainerror.ErrMonthlyReviewNotFound) {
		return nil, persistFailed(err)
	}

	current, err := uc.builder.Build(ctx, input.UserID, month, now)
	if err != nil {
		return nil, err
	}
	if !current.HasTransactions() {
		return &GetMonthlyReviewOutput{
			Month:        month,
			CurrentMonth: current,
			IsActive:     false,
			Message:      NoTransactionsMessage,
		}, nil
	}

	if err := uc.pipeline.Preflight(ctx); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewUserError(domainerror.ErrCodeUserNotFound, "user not found", err)
		}
		return nil, err
	}

	review, cached, err := uc.pipeline.Generate(ctx, user, month, current, now)
	if err != nil {
		return nil, err
	}

	return fromReview(review, cached), nil
}

func fromReview(review *entity.MonthlyReview, cached bool) *GetMonthlyReviewOutput {
	current := review.CurrentMonth
	text := review.AnalysisText
	return &GetMonthlyReviewOutput{
		Month:         review.Month,
		CurrentMonth:  &current,
		PreviousMonth: review.PreviousMonth,
		AnalysisText:  &text,
		IsCached:      cached,
		IsActive:      true,
	}
}
