// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Email domain errors.
var (
	// ErrEmailJobNotFound is returned when a queued email is not found.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrUnknownTemplate is returned when no template exists for a job's template type.
	ErrUnknownTemplate = errors.New("unknown email template")

	// ErrPermanentEmailFailure marks a delivery failure that must not be retried.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure marks a delivery failure worth retrying.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode defines error codes for email errors.
// Format: EML-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	ErrCodeEmailJobNotFound      EmailErrorCode = "EML-010001"
	ErrCodeUnknownTemplate       EmailErrorCode = "EML-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-030001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
