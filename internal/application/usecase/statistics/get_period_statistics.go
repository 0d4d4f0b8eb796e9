// Package statistics contains the period statistics use cases.
package statistics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// GetPeriodStatisticsInput represents the input for an arbitrary period summary.
type GetPeriodStatisticsInput struct {
	UserID              uuid.UUID
	FromDate            *time.Time
	ToDate              *time.Time
	Type                *entity.TransactionType
	CompareWithPrevious bool
	Now                 time.Time
}

// PreviousPeriodStatistics is the summary of the preceding period of equal length.
type PreviousPeriodStatistics struct {
	Period     entity.Period
	Totals     Totals
	Comparison Comparison
}

// GetPeriodStatisticsOutput summarizes a period.
type GetPeriodStatisticsOutput struct {
	Period   entity.Period
	Totals   Totals
	Previous *PreviousPeriodStatistics
}

// GetPeriodStatisticsUseCase summarizes an arbitrary period.
type GetPeriodStatisticsUseCase struct {
	statsRepo StatisticsRepository
}

// NewGetPeriodStatisticsUseCase creates a new GetPeriodStatisticsUseCase instance.
func NewGetPeriodStatisticsUseCase(statsRepo StatisticsRepository) *GetPeriodStatisticsUseCase {
	return &GetPeriodStatisticsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute computes the period summary and, on request, the comparison with
// the immediately preceding period of the same number of days.
func (uc *GetPeriodStatisticsUseCase) Execute(ctx context.Context, input GetPeriodStatisticsInput) (*GetPeriodStatisticsOutput, error) {
	if err := ValidateType(input.Type); err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	period, err := ResolveRange(input.FromDate, input.ToDate, now)
	if err != nil {
		return nil, err
	}

	txs, err := uc.statsRepo.FindPeriodTransactions(ctx, PeriodFilter{UserID: input.UserID, Period: period, Type: input.Type})
	if err != nil {
		return nil, queryFailed(err)
	}

	output := &GetPeriodStatisticsOutput{
		Period: period,
		Totals: ComputeTotals(txs),
	}

	if input.CompareWithPrevious {
		previousPeriod := period.Previous()
		previousTxs, err := uc.statsRepo.FindPeriodTransactions(ctx, PeriodFilter{UserID: input.UserID, Period: previousPeriod, Type: input.Type})
		if err != nil {
			return nil, queryFailed(err)
		}
		previousTotals := ComputeTotals(previousTxs)
		output.Previous = &PreviousPeriodStatistics{
			Period:     previousPeriod,
			Totals:     previousTotals,
			Comparison: Compare(output.Totals, previousTotals),
		}
	}

	return output, nil
}
