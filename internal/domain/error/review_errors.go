// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Monthly review domain errors.
var (
	// ErrMonthlyReviewNotFound is returned when no review exists for the requested month.
	ErrMonthlyReviewNotFound = errors.New("monthly review not found")

	// ErrMonthlyReviewExists is returned by the store when (user, month) is already taken.
	ErrMonthlyReviewExists = errors.New("monthly review already exists")

	// ErrGeneratorUnavailable is returned when the text generation service is not reachable.
	ErrGeneratorUnavailable = errors.New("text generation service unavailable")

	// ErrGenerationFailed is returned when the text generation call failed.
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrGenerationTimeout is returned when the generation call exceeded its deadline.
	ErrGenerationTimeout = errors.New("text generation timed out")

	// ErrEmptyGeneration is returned when the service answered without any text.
	ErrEmptyGeneration = errors.New("text generation returned no content")
)

// ReviewErrorCode defines error codes for monthly review errors.
// Format: REV-XXYYYY where XX is category and YYYY is specific error.
type ReviewErrorCode string

const (
	// Lookup errors (02XXXX)
	ErrCodeMonthlyReviewNotFound ReviewErrorCode = "REV-020001"

	// External dependency errors (05XXXX)
	ErrCodeGeneratorUnavailable ReviewErrorCode = "REV-050001"
	ErrCodeGenerationFailed     ReviewErrorCode = "REV-050002"
	ErrCodeGenerationTimeout    ReviewErrorCode = "REV-050003"
	ErrCodeGenerationRateLimit  ReviewErrorCode = "REV-050004"

	// Internal errors (99XXXX)
	ErrCodeReviewPersistFailed ReviewErrorCode = "REV-990001"
)

// ReviewError represents a monthly review error with code and message.
type ReviewError struct {
	Code    ReviewErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReviewError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReviewError) Unwrap() error {
	return e.Err
}

// NewReviewError creates a new ReviewError with the given code and message.
func NewReviewError(code ReviewErrorCode, message string, err error) *ReviewError {
	return &ReviewError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
