// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is absent or not owned by the caller.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrContributionNotFound is returned when a contribution id is unknown on the goal.
	ErrContributionNotFound = errors.New("contribution not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidContributionAmount is returned when a contribution amount is negative.
	ErrInvalidContributionAmount = errors.New("contribution amount must not be negative")

	// ErrGoalTitleRequired is returned when the title is blank.
	ErrGoalTitleRequired = errors.New("goal title is required")

	// ErrGoalTitleTooLong is returned when the title exceeds the maximum length.
	ErrGoalTitleTooLong = errors.New("goal title too long")

	// ErrGoalDeadlineRequired is returned when no deadline is supplied.
	ErrGoalDeadlineRequired = errors.New("goal deadline is required")

	// ErrContributionNoteTooLong is returned when a note exceeds the maximum length.
	ErrContributionNoteTooLong = errors.New("contribution note too long")

	// ErrGoalAggregateMismatch is returned when a goal about to be persisted has a
	// current amount different from the sum of its contributions.
	ErrGoalAggregateMismatch = errors.New("goal current amount does not match contributions")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTargetAmount       GoalErrorCode = "GOL-010001"
	ErrCodeInvalidContributionAmount GoalErrorCode = "GOL-010002"
	ErrCodeGoalTitleRequired         GoalErrorCode = "GOL-010003"
	ErrCodeGoalTitleTooLong          GoalErrorCode = "GOL-010004"
	ErrCodeGoalDeadlineRequired      GoalErrorCode = "GOL-010005"
	ErrCodeContributionNoteTooLong   GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields         GoalErrorCode = "GOL-010007"

	// Lookup errors (02XXXX)
	ErrCodeGoalNotFound         GoalErrorCode = "GOL-020001"
	ErrCodeContributionNotFound GoalErrorCode = "GOL-020002"

	// Internal errors (99XXXX)
	ErrCodeGoalAggregateMismatch GoalErrorCode = "GOL-990001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
