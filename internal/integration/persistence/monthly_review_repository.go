// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

// monthlyReviewRepository implements the adapter.MonthlyReviewRepository interface.
type monthlyReviewRepository struct {
	db *gorm.DB
}

// NewMonthlyReviewRepository creates a new monthly review repository instance.
func NewMonthlyReviewRepository(db *gorm.DB) adapter.MonthlyReviewRepository {
	return &monthlyReviewRepository{
		db: db,
	}
}

// Create inserts the review. The unique (user_id, month) index turns a
// concurrent second insert into domainerror.ErrMonthlyReviewExists.
func (r *monthlyReviewRepository) Create(ctx context.Context, review *entity.MonthlyReview) error {
	result := r.db.WithContext(ctx).Create(model.MonthlyReviewFromEntity(review))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrMonthlyReviewExists
		}
		return result.Error
	}
	return nil
}

// FindByUserAndMonth retrieves the review of the month containing month.
func (r *monthlyReviewRepository) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) (*entity.MonthlyReview, error) {
	var reviewModel model.MonthlyReviewModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, entity.FirstOfMonth(month)).
		First(&reviewModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMonthlyReviewNotFound
		}
		return nil, result.Error
	}
	return reviewModel.ToEntity(), nil
}

// ExistsByUserAndMonth reports whether a review exists for (user, month).
func (r *monthlyReviewRepository) ExistsByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyReviewModel{}).
		Where("user_id = ? AND month = ?", userID, entity.FirstOfMonth(month)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindByUser lists a user's reviews, most recent month first.
func (r *monthlyReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.MonthlyReview, error) {
	var reviewModels []model.MonthlyReviewModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("month DESC").
		Find(&reviewModels)
	if result.Error != nil {
		return nil, result.Error
	}

	reviews := make([]*entity.MonthlyReview, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = reviewModels[i].ToEntity()
	}
	return reviews, nil
}
