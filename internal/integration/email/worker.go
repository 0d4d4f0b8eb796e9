package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	appBaseURL   string
	logger       *slog.Logger
	now          func() time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	AppBaseURL   string
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		appBaseURL:   config.AppBaseURL,
		logger:       slog.With("component", "email_worker"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("email worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.ProcessBatch(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("email worker shutting down")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch claims due jobs and delivers them. It returns the number of
// jobs claimed.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	jobs, err := w.queue.ClaimPending(ctx, w.now(), w.batchSize)
	if err != nil {
		w.logger.Error("failed to claim email jobs", "error", err)
		return 0
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		w.processJob(ctx, job)
	}
	return len(jobs)
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := w.logger.With("job_id", job.ID, "template", job.TemplateType, "user_id", job.UserID)

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("failed to render email", "error", err)
		w.fail(ctx, logger, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		logger.Error("failed to send email", "error", err, "permanent", permanent)
		w.fail(ctx, logger, job, err, permanent)
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("failed to mark email as sent", "error", err)
		return
	}
	logger.Info("email sent", "provider_id", result.ProviderID)
}

func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	switch job.TemplateType {
	case entity.TemplateMonthlyReviewReady:
		return w.renderer.Render(string(job.TemplateType), templates.MonthlyReviewReadyData{
			Name:         stringField(job.TemplateData, "Name"),
			Month:        stringField(job.TemplateData, "Month"),
			TotalIncome:  stringField(job.TemplateData, "TotalIncome"),
			TotalExpense: stringField(job.TemplateData, "TotalExpense"),
			NetBalance:   stringField(job.TemplateData, "NetBalance"),
			ReviewURL:    w.appBaseURL + "/monthly-review",
		})
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeUnknownTemplate,
			"unknown template type "+string(job.TemplateType),
			domainerror.ErrUnknownTemplate,
		)
	}
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)
	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		logger.Error("failed to record email failure", "error", updateErr)
		return
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("email permanently failed", "attempts", job.Attempts, "last_error", job.LastError)
		return
	}
	logger.Info("email scheduled for retry", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt)
}

func stringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}
