// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OtherCategoryName is the bucket used when a transaction's category cannot be resolved.
const OtherCategoryName = "Other"

// MonthPeriodSnapshot is the period section of a month snapshot.
type MonthPeriodSnapshot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Month string    `json:"month"`
}

// MonthData is the statistical snapshot of one calendar month that feeds a review.
type MonthData struct {
	Period                     MonthPeriodSnapshot        `json:"period"`
	TotalIncome                decimal.Decimal            `json:"totalIncome"`
	TotalExpense               decimal.Decimal            `json:"totalExpense"`
	NetBalance                 decimal.Decimal            `json:"netBalance"`
	SavingRate                 float64                    `json:"savingRate"`
	TransactionCount           int                        `json:"transactionCount"`
	AverageTransactionPerDay   float64                    `json:"averageTransactionPerDay"`
	ExpensesByCategory         map[string]decimal.Decimal `json:"expensesByCategory"`
	IncomeBySource             map[string]decimal.Decimal `json:"incomeBySource"`
	ActiveGoalCount            int                        `json:"activeGoalCount"`
	CompletedGoalCount         int                        `json:"completedGoalCount"`
	ActiveGoalsAverageProgress float64                    `json:"activeGoalsAverageProgress"`
	GoalsContributionAmount    decimal.Decimal            `json:"goalsContributionAmount"`
}

// HasTransactions reports whether the month recorded any transaction.
func (m *MonthData) HasTransactions() bool {
	return m != nil && m.TransactionCount > 0
}

// MonthlyReview is a generated analysis for one user and one calendar month.
// At most one exists per (UserID, Month) and it is never modified after creation.
type MonthlyReview struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Month         time.Time
	CurrentMonth  MonthData
	PreviousMonth *MonthData
	AnalysisText  string
	CreatedAt     time.Time
}

// NewMonthlyReview creates a review keyed by the first day of month's month.
func NewMonthlyReview(userID uuid.UUID, month time.Time, current MonthData, previous *MonthData, analysisText string) *MonthlyReview {
	return &MonthlyReview{
		ID:            uuid.New(),
		UserID:        userID,
		Month:         FirstOfMonth(month),
		CurrentMonth:  current,
		PreviousMonth: previous,
		AnalysisText:  analysisText,
		CreatedAt:     time.Now().UTC(),
	}
}
