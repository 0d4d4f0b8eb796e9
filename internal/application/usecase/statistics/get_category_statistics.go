// Package statistics contains the period statistics use cases.
package statistics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// GetCategoryStatisticsInput represents the input for category statistics.
type GetCategoryStatisticsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Now       time.Time
}

// GetCategoryStatisticsOutput lists per-category aggregates for a period.
type GetCategoryStatisticsOutput struct {
	Period     entity.Period
	Totals     Totals
	Categories []CategoryBreakdownItem
}

// GetCategoryStatisticsUseCase computes per-category statistics.
type GetCategoryStatisticsUseCase struct {
	statsRepo StatisticsRepository
}

// NewGetCategoryStatisticsUseCase creates a new GetCategoryStatisticsUseCase instance.
func NewGetCategoryStatisticsUseCase(statsRepo StatisticsRepository) *GetCategoryStatisticsUseCase {
	return &GetCategoryStatisticsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute computes the category statistics. Percentages are relative to the
// total of the item's own transaction type.
func (uc *GetCategoryStatisticsUseCase) Execute(ctx context.Context, input GetCategoryStatisticsInput) (*GetCategoryStatisticsOutput, error) {
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

	breakdown := BuildBreakdown(txs)
	categories := make([]CategoryBreakdownItem, 0, len(breakdown.Income)+len(breakdown.Expense))
	categories = append(categories, breakdown.Expense...)
	categories = append(categories, breakdown.Income...)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	return &GetCategoryStatisticsOutput{
		Period:     period,
		Totals:     ComputeTotals(txs),
		Categories: categories,
	}, nil
}
