package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/middleware"
)

// requireUser reads the authenticated user id or answers 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Fail("User not authenticated", string(domainerror.ErrCodeMissingToken)))
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a UUID path parameter or answers 400 with code.
func parseIDParam(ctx *gin.Context, name, label, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, "Invalid "+label+" ID format", code)
		return uuid.Nil, false
	}
	return id, true
}
