// Package statistics contains the period statistics use cases.
package statistics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

// GetTrendsInput represents the input for the income/expense time series.
type GetTrendsInput struct {
	UserID      uuid.UUID
	Granularity string
	StartDate   *time.Time
	EndDate     *time.Time
	Type        *entity.TransactionType
	Now         time.Time
}

// GetTrendsOutput represents the time series of a period.
type GetTrendsOutput struct {
	Granularity valueobject.Granularity
	Period      entity.Period
	Points      []SeriesPoint
}

// GetTrendsUseCase builds income/expense trends.
type GetTrendsUseCase struct {
	statsRepo StatisticsRepository
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(statsRepo StatisticsRepository) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute builds the trend series.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	granularity, ok := valueobject.ParseGranularity(input.Granularity)
	if !ok {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidGranularity,
			"period must be one of: daily, weekly, monthly, yearly",
			domainerror.ErrInvalidGranularity,
		)
	}
	if err := ValidateType(input.Type); err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	period, err := ResolveRange(input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, err
	}

	txs, err := uc.statsRepo.FindPeriodTransactions(ctx, PeriodFilter{UserID: input.UserID, Period: period, Type: input.Type})
	if err != nil {
		return nil, queryFailed(err)
	}

	return &GetTrendsOutput{
		Granularity: granularity,
		Period:      period,
		Points:      BuildSeries(txs, granularity),
	}, nil
}
