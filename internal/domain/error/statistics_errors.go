// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidDateRange is returned when the end date is before the start date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidGranularity is returned when the trend period is unknown.
	ErrInvalidGranularity = errors.New("period must be one of: daily, weekly, monthly, yearly")

	// ErrInvalidDateFormat is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidMonth is returned when month/year parameters are out of range.
	ErrInvalidMonth = errors.New("invalid month or year")

	// ErrInvalidStatisticsType is returned when the type filter is unknown.
	ErrInvalidStatisticsType = errors.New("type must be income or expense")

	// ErrUnknownMetric is returned when a custom metric name is not supported.
	ErrUnknownMetric = errors.New("unknown metric")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange      StatisticsErrorCode = "STA-010001"
	ErrCodeInvalidGranularity    StatisticsErrorCode = "STA-010002"
	ErrCodeInvalidDateFormat     StatisticsErrorCode = "STA-010003"
	ErrCodeInvalidMonth          StatisticsErrorCode = "STA-010004"
	ErrCodeInvalidStatisticsType StatisticsErrorCode = "STA-010005"
	ErrCodeUnknownMetric         StatisticsErrorCode = "STA-010006"

	// Internal errors (99XXXX)
	ErrCodeStatisticsQueryFailed StatisticsErrorCode = "STA-990001"
)

// StatisticsError represents a statistics error with code and message.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
