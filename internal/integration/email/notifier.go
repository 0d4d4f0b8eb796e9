package email

import (
	"context"
	"fmt"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// Notifier queues notification emails for the worker.
type Notifier struct {
	queue adapter.EmailQueueRepository
}

// NewNotifier creates a new Notifier.
func NewNotifier(queue adapter.EmailQueueRepository) *Notifier {
	return &Notifier{queue: queue}
}

var _ adapter.ReviewNotifier = (*Notifier)(nil)

// NotifyReviewReady queues the "monthly review ready" email.
func (n *Notifier) NotifyReviewReady(ctx context.Context, user *entity.User, review *entity.MonthlyReview) error {
	if err := n.queue.Create(ctx, entity.NewMonthlyReviewEmail(user, review)); err != nil {
		return fmt.Errorf("failed to queue review email: %w", err)
	}
	return nil
}
