// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// MonthlyReviewRepository defines the interface for monthly review persistence.
type MonthlyReviewRepository interface {
	// Create stores a review. When a review for the same (user, month) already
	// exists it returns domainerror.ErrMonthlyReviewExists and writes nothing.
	Create(ctx context.Context, review *entity.MonthlyReview) error

	// FindByUserAndMonth retrieves the review keyed by the first day of month.
	// It returns domainerror.ErrMonthlyReviewNotFound when absent.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) (*entity.MonthlyReview, error)

	// ExistsByUserAndMonth reports whether a review exists for (user, month).
	ExistsByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) (bool, error)

	// FindByUser lists a user's reviews, most recent month first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.MonthlyReview, error)
}
