// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email is rendered from.
type EmailTemplateType string

// TemplateMonthlyReviewReady announces a freshly generated monthly review.
const TemplateMonthlyReviewReady EmailTemplateType = "monthly_review_ready"

// DefaultEmailMaxAttempts bounds delivery attempts per queued email.
const DefaultEmailMaxAttempts = 3

// emailRetryDelays holds the wait before attempt n+1.
var emailRetryDelays = []time.Duration{time.Minute, 10 * time.Minute, time.Hour}

// EmailJob is an outgoing email persisted in the queue until the worker delivers it.
type EmailJob struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewMonthlyReviewEmail queues the "your review is ready" notification for a user.
func NewMonthlyReviewEmail(user *User, review *MonthlyReview) *EmailJob {
	now := time.Now().UTC()
	label := review.CurrentMonth.Period.Month
	if label == "" {
		label = review.Month.Format("January 2006")
	}

	return &EmailJob{
		ID:             uuid.New(),
		UserID:         user.ID,
		TemplateType:   TemplateMonthlyReviewReady,
		RecipientEmail: user.Email,
		RecipientName:  user.FullName(),
		Subject:        "Your " + label + " financial review is ready",
		TemplateData: map[string]any{
			"Name":         user.FirstName,
			"Month":        label,
			"TotalIncome":  review.CurrentMonth.TotalIncome.StringFixed(2),
			"TotalExpense": review.CurrentMonth.TotalExpense.StringFixed(2),
			"NetBalance":   review.CurrentMonth.NetBalance.StringFixed(2),
		},
		Status:      EmailStatusPending,
		MaxAttempts: DefaultEmailMaxAttempts,
		CreatedAt:   now,
		ScheduledAt: now,
	}
}

// MarkProcessing flags the job as claimed by a worker.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job goes back to pending with a
// delayed schedule until attempts run out or the failure is permanent.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	now := time.Now().UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts-1 < len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(delay)
}
