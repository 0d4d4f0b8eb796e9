// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// GetGoalStatisticsInput represents the input for goal statistics.
type GetGoalStatisticsInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// GoalMonthStats aggregates goals sharing a deadline month.
type GoalMonthStats struct {
	Month         string // YYYY-MM of the deadline
	Count         int
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
}

// GetGoalStatisticsOutput summarizes a user's goals.
type GetGoalStatisticsOutput struct {
	TotalGoals         int
	ActiveGoals        int
	CompletedGoals     int
	TotalTargetAmount  decimal.Decimal
	TotalCurrentAmount decimal.Decimal
	AverageProgress    float64
	GoalsByMonth       []GoalMonthStats
}

// GetGoalStatisticsUseCase computes goal statistics.
type GetGoalStatisticsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalStatisticsUseCase creates a new GetGoalStatisticsUseCase instance.
func NewGetGoalStatisticsUseCase(goalRepo adapter.GoalRepository) *GetGoalStatisticsUseCase {
	return &GetGoalStatisticsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute computes the statistics.
func (uc *GetGoalStatisticsUseCase) Execute(ctx context.Context, input GetGoalStatisticsInput) (*GetGoalStatisticsOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return SummarizeGoals(goals, now), nil
}

// SummarizeGoals aggregates goal totals and per-deadline-month buckets.
func SummarizeGoals(goals []*entity.Goal, now time.Time) *GetGoalStatisticsOutput {
	out := &GetGoalStatisticsOutput{
		TotalGoals:         len(goals),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
		GoalsByMonth:       []GoalMonthStats{},
	}

	byMonth := make(map[string]*GoalMonthStats)
	for _, g := range goals {
		if g.IsActive(now) {
			out.ActiveGoals++
		}
		if g.IsCompleted() {
			out.CompletedGoals++
		}
		out.TotalTargetAmount = out.TotalTargetAmount.Add(g.TargetAmount)
		out.TotalCurrentAmount = out.TotalCurrentAmount.Add(g.CurrentAmount)

		key := g.Deadline.UTC().Format("2006-01")
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &GoalMonthStats{Month: key, TargetAmount: decimal.Zero, CurrentAmount: decimal.Zero}
			byMonth[key] = bucket
		}
		bucket.Count++
		bucket.TargetAmount = bucket.TargetAmount.Add(g.TargetAmount)
		bucket.CurrentAmount = bucket.CurrentAmount.Add(g.CurrentAmount)
	}
	out.AverageProgress = entity.AverageActiveProgress(goals, now)

	for _, bucket := range byMonth {
		out.GoalsByMonth = append(out.GoalsByMonth, *bucket)
	}
	sort.Slice(out.GoalsByMonth, func(i, j int) bool {
		return out.GoalsByMonth[i].Month < out.GoalsByMonth[j].Month
	})

	return out
}
