// Package review contains the monthly review use cases.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/statistics"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// MonthDataBuilder assembles the statistical snapshot of one calendar month.
type MonthDataBuilder struct {
	statsRepo statistics.StatisticsRepository
	goalRepo  adapter.GoalRepository
}

// NewMonthDataBuilder creates a new MonthDataBuilder instance.
func NewMonthDataBuilder(statsRepo statistics.StatisticsRepository, goalRepo adapter.GoalRepository) *MonthDataBuilder {
	return &MonthDataBuilder{
		statsRepo: statsRepo,
		goalRepo:  goalRepo,
	}
}

// Build computes the snapshot of the month containing month. Goal state is
// evaluated at now; only goals created up to the end of the month count.
func (b *MonthDataBuilder) Build(ctx context.Context, userID uuid.UUID, month, now time.Time) (*entity.MonthData, error) {
	period := entity.MonthPeriod(month)

	var (
		txs   []statistics.PeriodTransaction
		goals []*entity.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = b.statsRepo.FindPeriodTransactions(gctx, statistics.PeriodFilter{UserID: userID, Period: period})
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = b.goalRepo.FindByUserCreatedBefore(gctx, userID, period.End)
		if err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return SummarizeMonth(period, txs, goals, now), nil
}

// CountTransactions returns how many transactions the user has in the month
// containing month.
func (b *MonthDataBuilder) CountTransactions(ctx context.Context, userID uuid.UUID, month time.Time) (int, error) {
	count, err := b.statsRepo.CountTransactions(ctx, userID, entity.MonthPeriod(month))
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// SummarizeMonth builds a MonthData from already loaded rows.
func SummarizeMonth(period entity.Period, txs []statistics.PeriodTransaction, goals []*entity.Goal, now time.Time) *entity.MonthData {
	totals := statistics.ComputeTotals(txs)

	data := &entity.MonthData{
		Period: entity.MonthPeriodSnapshot{
			Start: period.Start,
			End:   period.End,
			Month: period.MonthLabel(),
		},
		TotalIncome:             totals.Income,
		TotalExpense:            totals.Expense,
		NetBalance:              totals.Net,
		SavingRate:              savingRate(totals),
		TransactionCount:        totals.TransactionCount,
		ExpensesByCategory:      amountsByName(statistics.BreakdownByCategory(txs, entity.TransactionTypeExpense)),
		IncomeBySource:          amountsByName(statistics.BreakdownByCategory(txs, entity.TransactionTypeIncome)),
		GoalsContributionAmount: decimal.Zero,
	}
	if days := period.Days(); days > 0 {
		data.AverageTransactionPerDay = float64(totals.TransactionCount) / float64(days)
	}

	for _, goal := range goals {
		if goal.IsActive(now) {
			data.ActiveGoalCount++
		}
		if goal.IsCompleted() {
			data.CompletedGoalCount++
		}
		data.GoalsContributionAmount = data.GoalsContributionAmount.Add(goal.ContributedBetween(period.Start, period.End))
	}
	data.ActiveGoalsAverageProgress = entity.AverageActiveProgress(goals, now)

	return data
}

// savingRate is the share of income not spent, 1 - expense/income, or 0 without income.
func savingRate(totals statistics.Totals) float64 {
	if !totals.Income.IsPositive() {
		return 0
	}
	rate, _ := decimal.NewFromInt(1).Sub(totals.Expense.Div(totals.Income)).Round(4).Float64()
	return rate
}

func amountsByName(items []statistics.CategoryBreakdownItem) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		// A user category literally named "Other" merges with the fallback bucket.
		out[item.Name] = out[item.Name].Add(item.Amount)
	}
	return out
}
