// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// AddContributionInput represents the input for adding a contribution to a goal.
type AddContributionInput struct {
	GoalID       uuid.UUID
	UserID       uuid.UUID
	Contribution ContributionInput
}

// AddContributionOutput represents the output of adding a contribution.
type AddContributionOutput struct {
	Goal         *entity.Goal
	Contribution entity.Contribution
}

// AddContributionUseCase appends a contribution and re-derives the goal's current amount.
type AddContributionUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewAddContributionUseCase creates a new AddContributionUseCase instance.
func NewAddContributionUseCase(goalRepo adapter.GoalRepository) *AddContributionUseCase {
	return &AddContributionUseCase{
		goalRepo: goalRepo,
	}
}

// Execute adds the contribution.
func (uc *AddContributionUseCase) Execute(ctx context.Context, input AddContributionInput) (*AddContributionOutput, error) {
	contribution, err := buildContribution(input.Contribution, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	goal, err := uc.goalRepo.Mutate(ctx, input.UserID, input.GoalID, func(goal *entity.Goal) error {
		goal.AddContribution(contribution)
		return nil
	})
	if err != nil {
		if notFound := goalNotFound(err); notFound != nil {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	return &AddContributionOutput{
		Goal:         goal,
		Contribution: contribution,
	}, nil
}
