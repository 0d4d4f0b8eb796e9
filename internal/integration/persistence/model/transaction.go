// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	Type        string              `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	CategoryID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	AccountType string              `gorm:"type:varchar(20);not null;default:'cash'"`
	Description string              `gorm:"type:varchar(255)"`
	Date        time.Time           `gorm:"not null;index:idx_transactions_user_date,priority:2"`
	Attachments []entity.Attachment `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time           `gorm:"not null"`
	UpdatedAt   time.Time           `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []entity.Attachment{}
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		AccountType: entity.AccountType(m.AccountType),
		Description: m.Description,
		Date:        m.Date.UTC(),
		Attachments: attachments,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		CategoryID:  tx.CategoryID,
		AccountType: string(tx.AccountType),
		Description: tx.Description,
		Date:        tx.Date.UTC(),
		Attachments: tx.Attachments,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

// TransactionWithCategoryRow is the result of the transactions/categories LEFT JOIN.
type TransactionWithCategoryRow struct {
	TransactionModel
	CategoryName *string
	CategoryType *string
}

// ToEntity converts the joined row. The category is nil when it was deleted.
func (r *TransactionWithCategoryRow) ToEntity() *entity.TransactionWithCategory {
	tx := r.TransactionModel.ToEntity()
	out := &entity.TransactionWithCategory{Transaction: tx}
	if r.CategoryName != nil {
		out.Category = &entity.Category{
			ID:     tx.CategoryID,
			UserID: tx.UserID,
			Name:   *r.CategoryName,
		}
		if r.CategoryType != nil {
			out.Category.Type = entity.CategoryType(*r.CategoryType)
		}
	}
	return out
}
