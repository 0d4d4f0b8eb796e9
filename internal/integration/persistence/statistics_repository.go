// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/statistics"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

// statisticsRepository implements the statistics.StatisticsRepository interface.
// It only reads raw rows; every aggregate is computed by the statistics package.
type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new statistics repository instance.
func NewStatisticsRepository(db *gorm.DB) statistics.StatisticsRepository {
	return &statisticsRepository{
		db: db,
	}
}

// FindPeriodTransactions returns the user's transactions within the period.
// Categories are LEFT JOINed so deleted ones surface with a nil name.
func (r *statisticsRepository) FindPeriodTransactions(ctx context.Context, filter statistics.PeriodFilter) ([]statistics.PeriodTransaction, error) {
	var results []struct {
		ID           uuid.UUID       `gorm:"column:id"`
		Type         string          `gorm:"column:type"`
		Amount       decimal.Decimal `gorm:"column:amount"`
		Date         time.Time       `gorm:"column:date"`
		CategoryID   *uuid.UUID      `gorm:"column:category_id"`
		CategoryName *string         `gorm:"column:category_name"`
	}

	query := r.db.WithContext(ctx).
		Table("transactions t").
		Select("t.id, t.type, t.amount, t.date, t.category_id, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id").
		Where("t.user_id = ?", filter.UserID).
		Where("t.date >= ?", filter.Period.Start.UTC()).
		Where("t.date <= ?", filter.Period.End.UTC())
	if filter.Type != nil {
		query = query.Where("t.type = ?", string(*filter.Type))
	}

	if err := query.Order("t.date ASC, t.created_at ASC").Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get period transactions: %w", err)
	}

	rows := make([]statistics.PeriodTransaction, len(results))
	for i, res := range results {
		rows[i] = statistics.PeriodTransaction{
			ID:           res.ID,
			Type:         entity.TransactionType(res.Type),
			Amount:       res.Amount,
			Date:         res.Date.UTC(),
			CategoryID:   res.CategoryID,
			CategoryName: res.CategoryName,
		}
	}
	return rows, nil
}

// CountTransactions returns how many transactions the user has in the period.
func (r *statisticsRepository) CountTransactions(ctx context.Context, userID uuid.UUID, period entity.Period) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, period.Start.UTC(), period.End.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int(count), nil
}
