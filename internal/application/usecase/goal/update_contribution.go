// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// UpdateContributionInput represents the input for editing a single contribution.
// Nil fields are left unchanged.
type UpdateContributionInput struct {
	GoalID         uuid.UUID
	UserID         uuid.UUID
	ContributionID uuid.UUID
	Amount         *decimal.Decimal
	Date           *time.Time
	Note           *string
}

// UpdateContributionOutput represents the output of editing a contribution.
type UpdateContributionOutput struct {
	Goal *entity.Goal
}

// UpdateContributionUseCase edits one contribution in place and re-derives the current amount.
type UpdateContributionUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateContributionUseCase creates a new UpdateContributionUseCase instance.
func NewUpdateContributionUseCase(goalRepo adapter.GoalRepository) *UpdateContributionUseCase {
	return &UpdateContributionUseCase{
		goalRepo: goalRepo,
	}
}

// Execute updates the contribution.
func (uc *UpdateContributionUseCase) Execute(ctx context.Context, input UpdateContributionInput) (*UpdateContributionOutput, error) {
	if input.Amount != nil {
		if err := validateContributionAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	var note *string
	if input.Note != nil {
		if err := validateNote(*input.Note); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*input.Note)
		note = &trimmed
	}

	var date *time.Time
	if input.Date != nil {
		utc := input.Date.UTC()
		date = &utc
	}

	goal, err := uc.goalRepo.Mutate(ctx, input.UserID, input.GoalID, func(goal *entity.Goal) error {
		if !goal.UpdateContribution(input.ContributionID, input.Amount, date, note) {
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
		return nil, fmt.Errorf("failed to update contribution: %w", err)
	}

	return &UpdateContributionOutput{
		Goal: goal,
	}, nil
}
