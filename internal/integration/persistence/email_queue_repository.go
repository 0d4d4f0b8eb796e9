// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a new email job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error
}

// ClaimPending moves up to limit due pending jobs to processing and returns
// them. Rows locked by another worker are skipped.
func (r *emailQueueRepository) ClaimPending(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var claimed []model.EmailQueueModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND scheduled_at <= ?", string(entity.EmailStatusPending), now.UTC()).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&claimed)
		if result.Error != nil {
			return result.Error
		}
		if len(claimed) == 0 {
			return nil
		}

		ids := make([]any, len(claimed))
		for i := range claimed {
			ids[i] = claimed[i].ID
			claimed[i].Status = string(entity.EmailStatusProcessing)
		}
		return tx.Model(&model.EmailQueueModel{}).
			Where("id IN ?", ids).
			Update("status", string(entity.EmailStatusProcessing)).Error
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(claimed))
	for i := range claimed {
		jobs[i] = claimed[i].ToEntity()
	}
	return jobs, nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}
