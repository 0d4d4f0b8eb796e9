// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
// A non-nil Contributions replaces the whole list.
type UpdateGoalInput struct {
	GoalID        uuid.UUID
	UserID        uuid.UUID
	Title         *string
	TargetAmount  *decimal.Decimal
	Deadline      *time.Time
	Contributions *[]ContributionInput
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.TargetAmount != nil {
		if err := validateTargetAmount(*input.TargetAmount); err != nil {
			return nil, err
		}
	}

	var replacement []entity.Contribution
	if input.Contributions != nil {
		built, err := buildContributions(*input.Contributions, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		replacement = built
	}

	goal, err := uc.goalRepo.Mutate(ctx, input.UserID, input.GoalID, func(goal *entity.Goal) error {
		if input.Title != nil {
			goal.Title = strings.TrimSpace(*input.Title)
		}
		if input.TargetAmount != nil {
			goal.TargetAmount = *input.TargetAmount
		}
		if input.Deadline != nil {
			goal.Deadline = input.Deadline.UTC()
		}
		if input.Contributions != nil {
			goal.ReplaceContributions(replacement)
		}
		goal.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		if notFound := goalNotFound(err); notFound != nil {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal: goal,
	}, nil
}
