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
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID        uuid.UUID
	Title         string
	TargetAmount  decimal.Decimal
	Deadline      time.Time
	Contributions []ContributionInput // Optional initial contributions
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateTargetAmount(input.TargetAmount); err != nil {
		return nil, err
	}
	if input.Deadline.IsZero() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalDeadlineRequired,
			"deadline is required",
			domainerror.ErrGoalDeadlineRequired,
		)
	}

	contributions, err := buildContributions(input.Contributions, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	goal := entity.NewGoal(
		input.UserID,
		strings.TrimSpace(input.Title),
		input.TargetAmount,
		input.Deadline.UTC(),
		contributions,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
