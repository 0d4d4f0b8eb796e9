// Package statistics contains the period statistics use cases.
package statistics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// StatisticsRepository defines the read-only queries the statistics engine needs.
type StatisticsRepository interface {
	// FindPeriodTransactions returns the user's transactions dated within the
	// filter's period, with the category name resolved when it still exists.
	FindPeriodTransactions(ctx context.Context, filter PeriodFilter) ([]PeriodTransaction, error)

	// CountTransactions returns how many transactions the user has in the period.
	CountTransactions(ctx context.Context, userID uuid.UUID, period entity.Period) (int, error)
}

// PeriodFilter selects the transactions of one user in a closed period.
type PeriodFilter struct {
	UserID uuid.UUID
	Period entity.Period
	Type   *entity.TransactionType
}

// PeriodTransaction is the read model of a transaction used for aggregation.
// CategoryName is nil when the referenced category no longer exists.
type PeriodTransaction struct {
	ID           uuid.UUID
	Type         entity.TransactionType
	Amount       decimal.Decimal
	Date         time.Time
	CategoryID   *uuid.UUID
	CategoryName *string
}
