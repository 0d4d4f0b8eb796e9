// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

const (
	// DefaultPageSize is used when no limit is given.
	DefaultPageSize = 20
	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID      uuid.UUID
	Type        *entity.TransactionType
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryID  *uuid.UUID
	AccountType *entity.AccountType
	Sort        adapter.TransactionSort
	Page        int
	Limit       int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *entity.TransactionListResult
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, invalidFilter("type must be 'income' or 'expense'")
	}
	if input.AccountType != nil && !input.AccountType.IsValid() {
		return nil, invalidFilter("accountType must be one of: cash, bank, credit-card")
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, invalidFilter("endDate must not be before startDate")
	}

	sort := input.Sort
	if sort == "" {
		sort = adapter.SortDateDesc
	}
	if !sort.IsValid() {
		return nil, invalidFilter("sort must be one of: date, -date, amount, -amount")
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filter := adapter.TransactionFilter{
		UserID:      input.UserID,
		Type:        input.Type,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CategoryID:  input.CategoryID,
		AccountType: input.AccountType,
		Sort:        sort,
	}

	result, err := uc.transactionRepo.List(ctx, filter, adapter.TransactionPagination{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if result.Transactions == nil {
		result.Transactions = []*entity.TransactionWithCategory{}
	}

	return &ListTransactionsOutput{Result: result}, nil
}

func invalidFilter(message string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidTransactionFilter,
		message,
		domainerror.ErrInvalidTransactionFilter,
	)
}
