// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// GoalModel represents the goals table in the database. CurrentAmount is
// always the sum of the goal's contribution rows.
type GoalModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title         string              `gorm:"type:varchar(100);not null"`
	TargetAmount  decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal     `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline      time.Time           `gorm:"not null"`
	CreatedAt     time.Time           `gorm:"not null"`
	UpdatedAt     time.Time           `gorm:"not null"`
	Contributions []ContributionModel `gorm:"foreignKey:GoalID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ContributionModel represents the goal_contributions table. Position keeps
// the insertion order among contributions sharing a date.
type ContributionModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date     time.Time       `gorm:"not null"`
	Note     string          `gorm:"type:varchar(200)"`
	Position int             `gorm:"not null;default:0"`
}

// TableName returns the table name for the ContributionModel.
func (ContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a GoalModel with its loaded contributions to a domain Goal.
func (m *GoalModel) ToEntity() *entity.Goal {
	contributions := make([]entity.Contribution, len(m.Contributions))
	for i, c := range m.Contributions {
		contributions[i] = entity.Contribution{
			ID:     c.ID,
			Amount: c.Amount,
			Date:   c.Date.UTC(),
			Note:   c.Note,
		}
	}

	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Deadline:      m.Deadline.UTC(),
		Contributions: contributions,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel and its contribution rows from a domain Goal.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	contributions := make([]ContributionModel, len(goal.Contributions))
	for i, c := range goal.Contributions {
		contributions[i] = ContributionModel{
			ID:       c.ID,
			GoalID:   goal.ID,
			Amount:   c.Amount,
			Date:     c.Date.UTC(),
			Note:     c.Note,
			Position: i,
		}
	}

	return &GoalModel{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Title:         goal.Title,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      goal.Deadline.UTC(),
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
		Contributions: contributions,
	}
}
