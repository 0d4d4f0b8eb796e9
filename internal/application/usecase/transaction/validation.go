// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for descriptions.
const MaxDescriptionLength = 255

// MaxAttachments is the maximum number of attachments per transaction.
const MaxAttachments = 5

func validateType(t entity.TransactionType) error {
	if !t.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if !entity.FitsAmountScale(amount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must have at most 2 decimal places",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}

func validateAccountType(a entity.AccountType) error {
	if !a.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAccountType,
			"accountType must be one of: cash, bank, credit-card",
			domainerror.ErrInvalidAccountType,
		)
	}
	return nil
}

func normalizeDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return description, nil
}

func validateAttachments(attachments []entity.Attachment) error {
	if len(attachments) > MaxAttachments {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAttachment,
			fmt.Sprintf("at most %d attachments are allowed", MaxAttachments),
			domainerror.ErrInvalidAttachment,
		)
	}
	for _, a := range attachments {
		if strings.TrimSpace(a.URL) == "" || !entity.IsValidAttachmentType(a.Type) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidAttachment,
				"attachments need a url and a type of image/jpeg, image/png or image/jpg",
				domainerror.ErrInvalidAttachment,
			)
		}
	}
	return nil
}

// resolveCategory loads the caller's category and checks that its type matches
// the transaction type.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID, txType entity.TransactionType) (*entity.Category, error) {
	if categoryID == uuid.Nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionCategoryMissing,
			"categoryId is required",
			domainerror.ErrTransactionCategoryRequired,
		)
	}

	category, err := repo.FindByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionCategoryInvalid,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if string(category.Type) != string(txType) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionCategoryInvalid,
			"category type does not match transaction type",
			domainerror.ErrTransactionCategoryMismatch,
		)
	}
	return category, nil
}

func transactionNotFound(err error) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return nil
}
