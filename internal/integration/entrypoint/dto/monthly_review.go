package dto

import (
	"time"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/review"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// MonthlyReviewResponse represents GET /monthly-review.
type MonthlyReviewResponse struct {
	Month         string            `json:"month"`
	CurrentMonth  *entity.MonthData `json:"currentMonth"`
	PreviousMonth *entity.MonthData `json:"previousMonth"`
	AnalysisText  *string           `json:"analysisText"`
	IsCached      bool              `json:"isCached"`
	IsActive      bool              `json:"isActive"`
	Message       string            `json:"message,omitempty"`
}

// StoredReviewResponse is a persisted review in GET /monthly-review/all.
type StoredReviewResponse struct {
	ID            string            `json:"id"`
	Month         string            `json:"month"`
	CurrentMonth  entity.MonthData  `json:"currentMonth"`
	PreviousMonth *entity.MonthData `json:"previousMonth"`
	AnalysisText  string            `json:"analysisText"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ToMonthlyReviewResponse converts the get-review output.
func ToMonthlyReviewResponse(output *review.GetMonthlyReviewOutput) MonthlyReviewResponse {
	return MonthlyReviewResponse{
		Month:         output.Month.Format(YearMonthLayout),
		CurrentMonth:  output.CurrentMonth,
		PreviousMonth: output.PreviousMonth,
		AnalysisText:  output.AnalysisText,
		IsCached:      output.IsCached,
		IsActive:      output.IsActive,
		Message:       output.Message,
	}
}

// ToStoredReviewList converts stored reviews, most recent first as given.
func ToStoredReviewList(reviews []*entity.MonthlyReview) []StoredReviewResponse {
	out := make([]StoredReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, StoredReviewResponse{
			ID:            r.ID.String(),
			Month:         r.Month.Format(YearMonthLayout),
			CurrentMonth:  r.CurrentMonth,
			PreviousMonth: r.PreviousMonth,
			AnalysisText:  r.AnalysisText,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out
}
