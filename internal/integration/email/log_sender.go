package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
)

// LogSender writes emails to the log instead of delivering them. It is used
// when no provider key is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{logger: slog.With("component", "log_email_sender")}
}

var _ adapter.EmailSender = (*LogSender)(nil)

// Send logs the email and reports a synthetic provider id.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	id := "log-" + uuid.NewString()
	s.logger.Info("email not delivered, no provider configured",
		"to", input.To,
		"subject", input.Subject,
		"provider_id", id,
	)
	return &adapter.SendEmailResult{ProviderID: id}, nil
}
