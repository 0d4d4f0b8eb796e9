// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// DeleteContributionInput represents the input for removing a contribution.
type DeleteContributionInput struct {
	GoalID         uuid.UUID
	UserID         uuid.UUID
	ContributionID uuid.UUID
}

// DeleteContributionOutput represents the output of removing a contribution.
type DeleteContributionOutput struct {
	Goal *entity.Goal
}

// DeleteContributionUseCase removes one contribution and re-derives the current amount.
type DeleteContributionUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteContributionUseCase creates a new DeleteContributionUseCase instance.
func NewDeleteContributionUseCase(goalRepo adapter.GoalRepository) *DeleteContributionUseCase {
	return &DeleteContributionUseCase{
		goalRepo: goalRepo,
	}
}

// Execute deletes the contribution.
func (uc *DeleteContributionUseCase) Execute(ctx context.Context, input DeleteContributionInput) (*DeleteContributionOutput, error) {
	goal, err := uc.goalRepo.Mutate(ctx, input.UserID, input.GoalID, func(goal *entity.Goal) error {
		if !goal.RemoveContribution(input.ContributionID) {
			return domainerror.ErrContributionNotFound
		}
		return nil
	})
	if err != nil {
		if notFound := goalNotFound(err); notFound != nil {
			return nil, notFound
		}
		if errors.Is(err, domainerror.ErrContributionNotFound) {
			return nil, contributionNotFound()
		}
		return nil, fmt.Errorf("failed to delete contribution: %w", err)
	}

	return &DeleteContributionOutput{
		Goal: goal,
	}, nil
}
