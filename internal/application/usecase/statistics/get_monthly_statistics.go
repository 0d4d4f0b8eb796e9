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

// GetMonthlyStatisticsInput represents the input for monthly statistics.
// Zero Month/Year default to the month of Now.
type GetMonthlyStatisticsInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
	Type   *entity.TransactionType
	Now    time.Time
}

// GetMonthlyStatisticsOutput represents one month's statistics with a
// comparison against the previous calendar month.
type GetMonthlyStatisticsOutput struct {
	Period            entity.Period
	Totals            Totals
	PreviousTotals    Totals
	Comparison        Comparison
	CategoryBreakdown CategoryBreakdown
	DailyBreakdown    []SeriesPoint
}

// GetMonthlyStatisticsUseCase computes statistics for one calendar month.
type GetMonthlyStatisticsUseCase struct {
	statsRepo StatisticsRepository
}

// NewGetMonthlyStatisticsUseCase creates a new GetMonthlyStatisticsUseCase instance.
func NewGetMonthlyStatisticsUseCase(statsRepo StatisticsRepository) *GetMonthlyStatisticsUseCase {
	return &GetMonthlyStatisticsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute computes the monthly statistics.
func (uc *GetMonthlyStatisticsUseCase) Execute(ctx context.Context, input GetMonthlyStatisticsInput) (*GetMonthlyStatisticsOutput, error) {
	if err := ValidateType(input.Type); err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	month, year := input.Month, input.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidMonth,
			"month must be 1-12 and year a four digit year",
			domainerror.ErrInvalidMonth,
		)
	}

	period := entity.MonthPeriod(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))

	current, err := uc.statsRepo.FindPeriodTransactions(ctx, PeriodFilter{UserID: input.UserID, Period: period, Type: input.Type})
	if err != nil {
		return nil, queryFailed(err)
	}
	previous, err := uc.statsRepo.FindPeriodTransactions(ctx, PeriodFilter{UserID: input.UserID, Period: period.PreviousMonth(), Type: input.Type})
	if err != nil {
		return nil, queryFailed(err)
	}

	totals := ComputeTotals(current)
	previousTotals := ComputeTotals(previous)

	return &GetMonthlyStatisticsOutput{
		Period:            period,
		Totals:            totals,
		PreviousTotals:    previousTotals,
		Comparison:        Compare(totals, previousTotals),
		CategoryBreakdown: BuildBreakdown(current),
		DailyBreakdown:    BuildSeries(current, valueobject.GranularityDaily),
	}, nil
}
