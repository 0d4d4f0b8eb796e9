package dto

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/goal"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// ContributionRequest is a contribution in a goal request body.
type ContributionRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Date   *string          `json:"date"`
	Note   string           `json:"note"`
}

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title         string                `json:"title"`
	TargetAmount  *decimal.Decimal      `json:"targetAmount" binding:"required"`
	Deadline      string                `json:"deadline"`
	Contributions []ContributionRequest `json:"contributions" binding:"omitempty,dive"`
}

// UpdateGoalRequest represents the request body for goal update. When
// contributions is present the list is replaced.
type UpdateGoalRequest struct {
	Title         *string                `json:"title"`
	TargetAmount  *decimal.Decimal       `json:"targetAmount"`
	Deadline      *string                `json:"deadline"`
	Contributions *[]ContributionRequest `json:"contributions" binding:"omitempty,dive"`
}

// UpdateContributionRequest represents the request body for contribution update.
type UpdateContributionRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
	Note   *string          `json:"note"`
}

// ContributionResponse represents a contribution in API responses.
type ContributionResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Note   string          `json:"note"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	TargetAmount  decimal.Decimal        `json:"targetAmount"`
	CurrentAmount decimal.Decimal        `json:"currentAmount"`
	Deadline      time.Time              `json:"deadline"`
	Progress      float64                `json:"progress"` // percent of target reached
	IsActive      bool                   `json:"isActive"`
	IsCompleted   bool                   `json:"isCompleted"`
	Contributions []ContributionResponse `json:"contributions"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// GoalMonthResponse aggregates goals whose deadline falls in one month.
type GoalMonthResponse struct {
	Count         int             `json:"count"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// GoalStatisticsResponse represents GET /goals/statistics.
type GoalStatisticsResponse struct {
	TotalGoals         int                          `json:"totalGoals"`
	ActiveGoals        int                          `json:"activeGoals"`
	CompletedGoals     int                          `json:"completedGoals"`
	TotalTargetAmount  decimal.Decimal              `json:"totalTargetAmount"`
	TotalCurrentAmount decimal.Decimal              `json:"totalCurrentAmount"`
	AverageProgress    float64                      `json:"averageProgress"` // ratio, not percent
	GoalsByMonth       map[string]GoalMonthResponse `json:"goalsByMonth"`
}

// ToContributionInputs converts request contributions to use case inputs.
func ToContributionInputs(in []ContributionRequest) ([]goal.ContributionInput, error) {
	out := make([]goal.ContributionInput, 0, len(in))
	for _, c := range in {
		date, err := ParseOptionalDateTime(c.Date)
		if err != nil {
			return nil, err
		}
		input := goal.ContributionInput{Date: date, Note: c.Note}
		if c.Amount != nil {
			input.Amount = *c.Amount
		}
		out = append(out, input)
	}
	return out, nil
}

// ToContributionResponse converts a domain contribution.
func ToContributionResponse(c entity.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:     c.ID.String(),
		Amount: c.Amount,
		Date:   c.Date,
		Note:   c.Note,
	}
}

// progressPercent turns a progress ratio into a percentage rounded to 2 places.
func progressPercent(ratio float64) float64 {
	return math.Round(ratio*10000) / 100
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal, now time.Time) GoalResponse {
	resp := GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		Progress:      progressPercent(g.Progress()),
		IsActive:      g.IsActive(now),
		IsCompleted:   g.IsCompleted(),
		Contributions: make([]ContributionResponse, 0, len(g.Contributions)),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	for _, c := range g.Contributions {
		resp.Contributions = append(resp.Contributions, ToContributionResponse(c))
	}
	return resp
}

// ToGoalListResponse converts goals to their DTOs.
func ToGoalListResponse(goals []*entity.Goal, now time.Time) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, ToGoalResponse(g, now))
	}
	return out
}

// ToGoalStatisticsResponse converts the goal statistics output.
func ToGoalStatisticsResponse(output *goal.GetGoalStatisticsOutput) GoalStatisticsResponse {
	byMonth := make(map[string]GoalMonthResponse, len(output.GoalsByMonth))
	for _, m := range output.GoalsByMonth {
		byMonth[m.Month] = GoalMonthResponse{
			Count:         m.Count,
			TargetAmount:  m.TargetAmount,
			CurrentAmount: m.CurrentAmount,
		}
	}
	return GoalStatisticsResponse{
		TotalGoals:         output.TotalGoals,
		ActiveGoals:        output.ActiveGoals,
		CompletedGoals:     output.CompletedGoals,
		TotalTargetAmount:  output.TotalTargetAmount,
		TotalCurrentAmount: output.TotalCurrentAmount,
		AverageProgress:    output.AverageProgress,
		GoalsByMonth:       byMonth,
	}
}
