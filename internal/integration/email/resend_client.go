// Package email delivers queued notification emails.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

var _ adapter.EmailSender = (*ResendClient)(nil)

// SetBaseURL points the client at another API host.
func (c *ResendClient) SetBaseURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSuffix(rawURL, "/") + "/")
	if err != nil {
		return fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = u
	return nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{ProviderID: resp.Id}, nil
}

// classifySendError marks rejected requests as permanent. Rate limits and
// transport or server errors are retried.
func classifySendError(err error) error {
	if errors.Is(err, resend.ErrRateLimit) {
		return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "email provider rate limit",
			errors.Join(domainerror.ErrTemporaryEmailFailure, err))
	}

	var missing *resend.MissingRequiredFieldsError
	if errors.As(err, &missing) || isRejection(err) {
		return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "email rejected by provider",
			errors.Join(domainerror.ErrPermanentEmailFailure, err))
	}

	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure",
		errors.Join(domainerror.ErrTemporaryEmailFailure, err))
}

var rejectionPatterns = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid"}

func isRejection(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range rejectionPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
