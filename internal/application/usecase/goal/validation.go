// Package goal contains goal-related use cases.
package goal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

const (
	// MaxGoalTitleLength is the maximum allowed length for goal titles.
	MaxGoalTitleLength = 100
	// MaxContributionNoteLength is the maximum allowed length for contribution notes.
	MaxContributionNoteLength = 200
)

// ContributionInput describes a contribution supplied by the caller.
type ContributionInput struct {
	Amount decimal.Decimal
	Date   *time.Time // Defaults to now
	Note   string
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleRequired,
			"title is required",
			domainerror.ErrGoalTitleRequired,
		)
	}
	if len(title) > MaxGoalTitleLength {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleTooLong,
			fmt.Sprintf("title must not exceed %d characters", MaxGoalTitleLength),
			domainerror.ErrGoalTitleTooLong,
		)
	}
	return nil
}

func validateTargetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	if !entity.FitsAmountScale(amount) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must have at most 2 decimal places",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

func validateContributionAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionAmount,
			"contribution amount must not be negative",
			domainerror.ErrInvalidContributionAmount,
		)
	}
	if !entity.FitsAmountScale(amount) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionAmount,
			"contribution amount must have at most 2 decimal places",
			domainerror.ErrInvalidContributionAmount,
		)
	}
	return nil
}

func validateNote(note string) error {
	if len(note) > MaxContributionNoteLength {
		return domainerror.NewGoalError(
			domainerror.ErrCodeContributionNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", MaxContributionNoteLength),
			domainerror.ErrContributionNoteTooLong,
		)
	}
	return nil
}

// buildContributions validates caller-supplied contributions and turns them into entities.
func buildContributions(inputs []ContributionInput, now time.Time) ([]entity.Contribution, error) {
	contributions := make([]entity.Contribution, 0, len(inputs))
	for _, in := range inputs {
		c, err := buildContribution(in, now)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

func buildContribution(in ContributionInput, now time.Time) (entity.Contribution, error) {
	if err := validateContributionAmount(in.Amount); err != nil {
		return entity.Contribution{}, err
	}
	if err := validateNote(in.Note); err != nil {
		return entity.Contribution{}, err
	}
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}
	return entity.NewContribution(in.Amount, date, strings.TrimSpace(in.Note)), nil
}

// goalNotFound normalizes repository lookups into the goal error taxonomy.
func goalNotFound(err error) error {
	if errors.Is(err, domainerror.ErrGoalNotFound) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}
	return nil
}

func contributionNotFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeContributionNotFound,
		"contribution not found",
		domainerror.ErrContributionNotFound,
	)
}
