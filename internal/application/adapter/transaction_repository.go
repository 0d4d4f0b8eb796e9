// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// TransactionSort is the ordering of a transaction listing.
type TransactionSort string

const (
	SortDateDesc   TransactionSort = "-date"
	SortDateAsc    TransactionSort = "date"
	SortAmountDesc TransactionSort = "-amount"
	SortAmountAsc  TransactionSort = "amount"
)

// IsValid reports whether the sort value is supported.
func (s TransactionSort) IsValid() bool {
	switch s {
	case SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return true
	}
	return false
}

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	Type        *entity.TransactionType
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryID  *uuid.UUID
	AccountType *entity.AccountType
	Sort        TransactionSort
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction owned by userID with its category resolved.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// List retrieves a filtered, sorted page of transactions.
	List(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction owned by userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
