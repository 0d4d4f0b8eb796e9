// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update. Nil
// fields are left unchanged; a non-nil Attachments replaces the list.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	AccountType   *entity.AccountType
	Description   *string
	Date          *time.Time
	Attachments   *[]entity.Attachment
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.TransactionWithCategory
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction update. The category is re-checked
// whenever the type or the category changes.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	existing, err := uc.transactionRepo.FindByID(ctx, input.UserID, input.TransactionID)
	if err != nil {
		if nf := transactionNotFound(err); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	tx := existing.Transaction
	category := existing.Category

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		tx.Type = *input.Type
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		tx.Amount = *input.Amount
	}
	if input.AccountType != nil {
		if err := validateAccountType(*input.AccountType); err != nil {
			return nil, err
		}
		tx.AccountType = *input.AccountType
	}
	if input.Description != nil {
		description, err := normalizeDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		tx.Description = description
	}
	if input.Date != nil {
		tx.Date = input.Date.UTC()
	}
	if input.Attachments != nil {
		if err := validateAttachments(*input.Attachments); err != nil {
			return nil, err
		}
		tx.Attachments = *input.Attachments
	}

	if input.CategoryID != nil || input.Type != nil {
		categoryID := tx.CategoryID
		if input.CategoryID != nil {
			categoryID = *input.CategoryID
		}
		category, err = resolveCategory(ctx, uc.categoryRepo, input.UserID, categoryID, tx.Type)
		if err != nil {
			return nil, err
		}
		tx.CategoryID = category.ID
	}

	tx.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, tx); err != nil {
		if nf := transactionNotFound(err); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{
		Transaction: &entity.TransactionWithCategory{
			Transaction: tx,
			Category:    category,
		},
	}, nil
}
