package review

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// classifyGenerationError maps a text generation failure to a ReviewError.
// Provider errors are matched on their message since the SDK does not
// expose typed errors for every case.
func classifyGenerationError(err error) *domainerror.ReviewError {
	var reviewErr *domainerror.ReviewError
	if errors.As(err, &reviewErr) {
		return reviewErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domainerror.ErrGenerationTimeout) {
		return domainerror.NewReviewError(
			domainerror.ErrCodeGenerationTimeout,
			"generating the review took too long",
			err,
		)
	}
	if errors.Is(err, domainerror.ErrGeneratorUnavailable) {
		return domainerror.NewReviewError(
			domainerror.ErrCodeGeneratorUnavailable,
			"text generation service is unreachable",
			err,
		)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "rate limit", "quota", "429", "resource exhausted"):
		return domainerror.NewReviewError(
			domainerror.ErrCodeGenerationRateLimit,
			"text generation rate limit reached",
			err,
		)
	case containsAny(msg, "401", "403", "invalid api key", "api key not valid", "unauthorized", "permission denied"):
		return domainerror.NewReviewError(
			domainerror.ErrCodeGeneratorUnavailable,
			"text generation service rejected the credentials",
			err,
		)
	case containsAny(msg, "connection", "network", "dial", "unavailable", "503", "timeout"):
		return domainerror.NewReviewError(
			domainerror.ErrCodeGeneratorUnavailable,
			"text generation service is unreachable",
			err,
		)
	}

	return domainerror.NewReviewError(
		domainerror.ErrCodeGenerationFailed,
		"text generation failed",
		err,
	)
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
