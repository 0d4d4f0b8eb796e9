// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

const internalErrorMessage = "An internal error occurred"

// handleError renders a domain error with its code. Anything unrecognized is
// logged and answered with a generic 500.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr  *domainerror.AuthError
		userErr  *domainerror.UserError
		catErr   *domainerror.CategoryError
		txErr    *domainerror.TransactionError
		goalErr  *domainerror.GoalError
		statsErr *domainerror.StatisticsError
		revErr   *domainerror.ReviewError
	)

	status, message, code := http.StatusInternalServerError, internalErrorMessage, ""
	switch {
	case errors.As(err, &revErr):
		status, message, code = getStatusCodeForReviewError(revErr.Code), revErr.Message, string(revErr.Code)
	case errors.As(err, &authErr):
		status, message, code = getStatusCodeForAuthError(authErr.Code), authErr.Message, string(authErr.Code)
	case errors.As(err, &userErr):
		status, message, code = getStatusCodeForUserError(userErr.Code), userErr.Message, string(userErr.Code)
	case errors.As(err, &catErr):
		status, message, code = getStatusCodeForCategoryError(catErr.Code), catErr.Message, string(catErr.Code)
	case errors.As(err, &txErr):
		status, message, code = getStatusCodeForTransactionError(txErr.Code), txErr.Message, string(txErr.Code)
	case errors.As(err, &goalErr):
		status, message, code = getStatusCodeForGoalError(goalErr.Code), goalErr.Message, string(goalErr.Code)
	case errors.As(err, &statsErr):
		status, message, code = getStatusCodeForStatisticsError(statsErr.Code), statsErr.Message, string(statsErr.Code)
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"code", code,
			"error", err,
		)
	}
	if status == http.StatusInternalServerError {
		message = internalErrorMessage
	}
	ctx.JSON(status, dto.Fail(message, code))
}

// badRequest answers a malformed request.
func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.Fail(message, code))
}

func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidBirthDate,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidEmail:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidProfile:
		return http.StatusBadRequest
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryField:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeTransactionCategoryMissing,
		domainerror.ErrCodeTransactionCategoryInvalid,
		domainerror.ErrCodeInvalidAttachment,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeInvalidTransactionFilter,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound, domainerror.ErrCodeContributionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidContributionAmount,
		domainerror.ErrCodeGoalTitleRequired,
		domainerror.ErrCodeGoalTitleTooLong,
		domainerror.ErrCodeGoalDeadlineRequired,
		domainerror.ErrCodeContributionNoteTooLong,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForStatisticsError(code domainerror.StatisticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidStatisticsType,
		domainerror.ErrCodeUnknownMetric:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForReviewError(code domainerror.ReviewErrorCode) int {
	switch code {
	case domainerror.ErrCodeMonthlyReviewNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeGeneratorUnavailable, domainerror.ErrCodeGenerationRateLimit:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeGenerationFailed:
		return http.StatusBadGateway
	case domainerror.ErrCodeGenerationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
