// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

const transactionWithCategoryColumns = "t.*, c.name AS category_name, c.type AS category_type"

var transactionOrder = map[adapter.TransactionSort]string{
	adapter.SortDateDesc:   "t.date DESC, t.created_at DESC",
	adapter.SortDateAsc:    "t.date ASC, t.created_at ASC",
	adapter.SortAmountDesc: "t.amount DESC, t.date DESC",
	adapter.SortAmountAsc:  "t.amount ASC, t.date DESC",
}

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// joined selects transactions with the category resolved through a LEFT JOIN,
// so rows whose category was deleted are still returned.
func (r *transactionRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions t").
		Joins("LEFT JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id")
}

// FindByID retrieves a transaction owned by userID with its category.
func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	var rows []model.TransactionWithCategoryRow
	err := r.joined(ctx).
		Select(transactionWithCategoryColumns).
		Where("t.id = ? AND t.user_id = ?", id, userID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerror.ErrTransactionNotFound
	}
	return rows[0].ToEntity(), nil
}

// List retrieves a filtered, sorted page of transactions.
func (r *transactionRepository) List(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := r.joined(ctx).Where("t.user_id = ?", filter.UserID)

	if filter.Type != nil {
		query = query.Where("t.type = ?", string(*filter.Type))
	}
	if filter.StartDate != nil {
		query = query.Where("t.date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("t.date <= ?", filter.EndDate.UTC())
	}
	if filter.CategoryID != nil {
		query = query.Where("t.category_id = ?", *filter.CategoryID)
	}
	if filter.AccountType != nil {
		query = query.Where("t.account_type = ?", string(*filter.AccountType))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	order, ok := transactionOrder[filter.Sort]
	if !ok {
		order = transactionOrder[adapter.SortDateDesc]
	}

	var rows []model.TransactionWithCategoryRow
	err := query.
		Select(transactionWithCategoryColumns).
		Order(order).
		Offset((pagination.Page - 1) * pagination.Limit).
		Limit(pagination.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.TransactionWithCategory, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToEntity()
	}

	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	m := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ? AND user_id = ?", m.ID, m.UserID).
		Select("type", "amount", "category_id", "account_type", "description", "date", "attachments", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction owned by userID.
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
