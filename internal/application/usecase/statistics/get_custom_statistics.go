// Package statistics contains the period statistics use cases.
package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// Metric names accepted by the custom statistics endpoint.
const (
	MetricAverageTransaction   = "averageTransaction"
	MetricLargestTransaction   = "largestTransaction"
	MetricMostFrequentCategory = "mostFrequentCategory"
	MetricSavingRate           = "savingRate"
)

// DefaultMetrics is used when no metric is requested.
var DefaultMetrics = []string{
	MetricAverageTransaction,
	MetricLargestTransaction,
	MetricMostFrequentCategory,
	MetricSavingRate,
}

// GetCustomStatisticsInput represents the input for custom metrics.
type GetCustomStatisticsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Metrics   []string
	Now       time.Time
}

// LargestTransaction describes the single largest transaction of a period.
type LargestTransaction struct {
	ID       uuid.UUID
	Type     entity.TransactionType
	Amount   decimal.Decimal
	Date     time.Time
	Category string
}

// FrequentCategory is the category with the most transactions.
type FrequentCategory struct {
	Name  string
	Count int
}

// GetCustomStatisticsOutput carries only the requested metrics.
type GetCustomStatisticsOutput struct {
	Period               entity.Period
	Totals               Totals
	AverageTransaction   *decimal.Decimal
	LargestTransaction   *LargestTransaction
	MostFrequentCategory *FrequentCategory
	SavingRate           *float64
}

// GetCustomStatisticsUseCase computes a selectable set of metrics.
type GetCustomStatisticsUseCase struct {
	statsRepo StatisticsRepository
}

// NewGetCustomStatisticsUseCase creates a new GetCustomStatisticsUseCase instance.
func NewGetCustomStatisticsUseCase(statsRepo StatisticsRepository) *GetCustomStatisticsUseCase {
	return &GetCustomStatisticsUseCase{
		statsRepo: statsRepo,
	}
}

// Execute computes the requested metrics.
func (uc *GetCustomStatisticsUseCase) Execute(ctx context.Context, input GetCustomStatisticsInput) (*GetCustomStatisticsOutput, error) {
	metrics := input.Metrics
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}
	for _, m := range metrics {
		if !isKnownMetric(m) {
			return nil, domainerror.NewStatisticsError(
				domainerror.ErrCodeUnknownMetric,
				fmt.Sprintf("unknown metric %q", m),
				domainerror.ErrUnknownMetric,
			)
		}
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

	output := &GetCustomStatisticsOutput{
		Period: period,
		Totals: ComputeTotals(txs),
	}
	for _, m := range metrics {
		switch m {
		case MetricAverageTransaction:
			avg := AverageAmount(txs)
			output.AverageTransaction = &avg
		case MetricLargestTransaction:
			output.LargestTransaction = Largest(txs)
		case MetricMostFrequentCategory:
			output.MostFrequentCategory = MostFrequentCategory(txs)
		case MetricSavingRate:
			rate := SavingRate(output.Totals)
			output.SavingRate = &rate
		}
	}

	return output, nil
}

func isKnownMetric(m string) bool {
	for _, known := range DefaultMetrics {
		if m == known {
			return true
		}
	}
	return false
}

// AverageAmount returns the mean transaction amount, rounded to two decimals.
func AverageAmount(txs []PeriodTransaction) decimal.Decimal {
	if len(txs) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(txs)))).Round(2)
}

// Largest returns the largest transaction, or nil for an empty set. Ties keep
// the earliest-dated transaction.
func Largest(txs []PeriodTransaction) *LargestTransaction {
	var best *PeriodTransaction
	for i := range txs {
		tx := &txs[i]
		if best == nil || tx.Amount.GreaterThan(best.Amount) ||
			(tx.Amount.Equal(best.Amount) && tx.Date.Before(best.Date)) {
			best = tx
		}
	}
	if best == nil {
		return nil
	}
	return &LargestTransaction{
		ID:       best.ID,
		Type:     best.Type,
		Amount:   best.Amount,
		Date:     best.Date,
		Category: categoryName(*best),
	}
}

// MostFrequentCategory returns the category with the most transactions, or
// nil for an empty set. Ties are broken by name.
func MostFrequentCategory(txs []PeriodTransaction) *FrequentCategory {
	counts := make(map[string]int)
	for _, tx := range txs {
		counts[categoryName(tx)]++
	}

	var best *FrequentCategory
	for name, count := range counts {
		if best == nil || count > best.Count || (count == best.Count && name < best.Name) {
			best = &FrequentCategory{Name: name, Count: count}
		}
	}
	return best
}

// SavingRate returns net/income*100, or 0 without income.
func SavingRate(totals Totals) float64 {
	return PercentageOf(totals.Net, totals.Income)
}

func categoryName(tx PeriodTransaction) string {
	if tx.CategoryID == nil || tx.CategoryName == nil {
		return entity.OtherCategoryName
	}
	return *tx.CategoryName
}
