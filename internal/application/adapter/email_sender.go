// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// SendEmailInput represents a rendered email ready for delivery.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's message id.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender delivers rendered emails through an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// ReviewNotifier queues the notification sent after a review was generated.
type ReviewNotifier interface {
	NotifyReviewReady(ctx context.Context, user *entity.User, review *entity.MonthlyReview) error
}
