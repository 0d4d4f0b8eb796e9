// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface. Every write
// stores the goal row and its contribution rows in one database transaction.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

func preloadContributions(db *gorm.DB) *gorm.DB {
	return db.Preload("Contributions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("date ASC, position ASC")
	})
}

func checkAggregate(goal *entity.Goal) error {
	if !goal.CurrentAmount.Equal(entity.RecomputeCurrentAmount(goal.Contributions)) {
		return domainerror.ErrGoalAggregateMismatch
	}
	return nil
}

// Create stores a goal together with its contributions.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	if err := checkAggregate(goal); err != nil {
		return err
	}

	goalModel := model.GoalFromEntity(goal)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(goalModel).Error; err != nil {
			return err
		}
		if len(goalModel.Contributions) > 0 {
			if err := tx.Create(&goalModel.Contributions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a goal owned by userID with its contributions.
func (r *goalRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := preloadContributions(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves all goals of a user, nearest deadline first.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return r.find(preloadContributions(r.db.WithContext(ctx)).Where("user_id = ?", userID))
}

// FindByUserCreatedBefore retrieves the user's goals created at or before t.
func (r *goalRepository) FindByUserCreatedBefore(ctx context.Context, userID uuid.UUID, t time.Time) ([]*entity.Goal, error) {
	return r.find(preloadContributions(r.db.WithContext(ctx)).
		Where("user_id = ? AND created_at <= ?", userID, t.UTC()))
}

func (r *goalRepository) find(query *gorm.DB) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	if err := query.Order("deadline ASC, created_at ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// Mutate loads the goal under a row lock, applies mutation and rewrites the
// goal with its contribution list. The aggregate is checked before anything
// is written; a mismatch rolls the transaction back.
func (r *goalRepository) Mutate(ctx context.Context, userID, id uuid.UUID, mutation adapter.GoalMutation) (*entity.Goal, error) {
	var goal *entity.Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goalModel model.GoalModel
		result := preloadContributions(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			Where("id = ? AND user_id = ?", id, userID).
			First(&goalModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrGoalNotFound
			}
			return result.Error
		}

		goal = goalModel.ToEntity()
		if err := mutation(goal); err != nil {
			return err
		}
		if err := checkAggregate(goal); err != nil {
			return err
		}

		updated := model.GoalFromEntity(goal)
		err := tx.Model(&model.GoalModel{}).
			Where("id = ?", goal.ID).
			Updates(map[string]any{
				"title":          updated.Title,
				"target_amount":  updated.TargetAmount,
				"current_amount": updated.CurrentAmount,
				"deadline":       updated.Deadline,
				"updated_at":     updated.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("goal_id = ?", goal.ID).Delete(&model.ContributionModel{}).Error; err != nil {
			return err
		}
		if len(updated.Contributions) > 0 {
			if err := tx.Create(&updated.Contributions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal and its contributions.
func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.GoalModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrGoalNotFound
		}
		return tx.Where("goal_id = ?", id).Delete(&model.ContributionModel{}).Error
	})
}
