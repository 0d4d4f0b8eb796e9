// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is absent or not owned by the caller.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the type is not income or expense.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidAmount is returned when the amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidAccountType is returned for an unknown account type tag.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrTransactionCategoryRequired is returned when no category is supplied.
	ErrTransactionCategoryRequired = errors.New("category is required")

	// ErrTransactionCategoryMismatch is returned when the category type differs from the transaction type.
	ErrTransactionCategoryMismatch = errors.New("category type does not match transaction type")

	// ErrInvalidAttachment is returned for attachment metadata with an unsupported type or empty url.
	ErrInvalidAttachment = errors.New("invalid attachment")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrInvalidTransactionFilter is returned for malformed list filters.
	ErrInvalidTransactionFilter = errors.New("invalid transaction filter")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TRX-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType     TransactionErrorCode = "TRX-010001"
	ErrCodeInvalidAmount              TransactionErrorCode = "TRX-010002"
	ErrCodeInvalidAccountType         TransactionErrorCode = "TRX-010003"
	ErrCodeTransactionCategoryMissing TransactionErrorCode = "TRX-010004"
	ErrCodeTransactionCategoryInvalid TransactionErrorCode = "TRX-010005"
	ErrCodeInvalidAttachment          TransactionErrorCode = "TRX-010006"
	ErrCodeDescriptionTooLong         TransactionErrorCode = "TRX-010007"
	ErrCodeInvalidTransactionFilter   TransactionErrorCode = "TRX-010008"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TRX-010009"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TRX-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
