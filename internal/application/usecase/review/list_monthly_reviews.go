package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// ListMonthlyReviewsInput represents the input for listing a user's reviews.
type ListMonthlyReviewsInput struct {
	UserID uuid.UUID
}

// ListMonthlyReviewsOutput holds the reviews, most recent month first.
type ListMonthlyReviewsOutput struct {
	Reviews []*entity.MonthlyReview
}

// ListMonthlyReviewsUseCase lists stored reviews.
type ListMonthlyReviewsUseCase struct {
	reviewRepo adapter.MonthlyReviewRepository
}

// NewListMonthlyReviewsUseCase creates a new ListMonthlyReviewsUseCase instance.
func NewListMonthlyReviewsUseCase(reviewRepo adapter.MonthlyReviewRepository) *ListMonthlyReviewsUseCase {
	return &ListMonthlyReviewsUseCase{
		reviewRepo: reviewRepo,
	}
}

// Execute lists the reviews.
func (uc *ListMonthlyReviewsUseCase) Execute(ctx context.Context, input ListMonthlyReviewsInput) (*ListMonthlyReviewsOutput, error) {
	reviews, err := uc.reviewRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, persistFailed(err)
	}
	if reviews == nil {
		reviews = []*entity.MonthlyReview{}
	}
	return &ListMonthlyReviewsOutput{Reviews: reviews}, nil
}
