package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/review"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// MonthlyReviewController handles monthly review endpoints.
type MonthlyReviewController struct {
	getUseCase  *review.GetMonthlyReviewUseCase
	listUseCase *review.ListMonthlyReviewsUseCase
}

// NewMonthlyReviewController creates a new monthly review controller instance.
func NewMonthlyReviewController(getUseCase *review.GetMonthlyReviewUseCase, listUseCase *review.ListMonthlyReviewsUseCase) *MonthlyReviewController {
	return &MonthlyReviewController{
		getUseCase:  getUseCase,
		listUseCase: listUseCase,
	}
}

// Get handles GET /monthly-review requests for the current month.
func (c *MonthlyReviewController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), review.GetMonthlyReviewInput{
		UserID: userID,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToMonthlyReviewResponse(output)))
}

// List handles GET /monthly-review/all requests.
func (c *MonthlyReviewController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), review.ListMonthlyReviewsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToStoredReviewList(output.Reviews)))
}
