// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// MonthlyReviewModel represents the monthly_reviews table. The (user_id,
// month) pair is unique and rows are never updated.
type MonthlyReviewModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_reviews_user_month,priority:1"`
	Month         time.Time         `gorm:"type:date;not null;uniqueIndex:idx_monthly_reviews_user_month,priority:2"`
	CurrentMonth  entity.MonthData  `gorm:"serializer:json;type:jsonb;not null"`
	PreviousMonth *entity.MonthData `gorm:"serializer:json;type:jsonb"`
	AnalysisText  string            `gorm:"type:text;not null"`
	CreatedAt     time.Time         `gorm:"not null"`
}

// TableName returns the table name for the MonthlyReviewModel.
func (MonthlyReviewModel) TableName() string {
	return "monthly_reviews"
}

// ToEntity converts a MonthlyReviewModel to a domain MonthlyReview.
func (m *MonthlyReviewModel) ToEntity() *entity.MonthlyReview {
	return &entity.MonthlyReview{
		ID:            m.ID,
		UserID:        m.UserID,
		Month:         entity.FirstOfMonth(m.Month.UTC()),
		CurrentMonth:  m.CurrentMonth,
		PreviousMonth: m.PreviousMonth,
		AnalysisText:  m.AnalysisText,
		CreatedAt:     m.CreatedAt,
	}
}

// MonthlyReviewFromEntity creates a MonthlyReviewModel from a domain MonthlyReview.
func MonthlyReviewFromEntity(review *entity.MonthlyReview) *MonthlyReviewModel {
	return &MonthlyReviewModel{
		ID:            review.ID,
		UserID:        review.UserID,
		Month:         entity.FirstOfMonth(review.Month),
		CurrentMonth:  review.CurrentMonth,
		PreviousMonth: review.PreviousMonth,
		AnalysisText:  review.AnalysisText,
		CreatedAt:     review.CreatedAt,
	}
}
