package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/goal"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// GoalUseCases groups the goal use cases served by GoalController.
type GoalUseCases struct {
	List               *goal.ListGoalsUseCase
	Create             *goal.CreateGoalUseCase
	Get                *goal.GetGoalUseCase
	Update             *goal.UpdateGoalUseCase
	Delete             *goal.DeleteGoalUseCase
	AddContribution    *goal.AddContributionUseCase
	UpdateContribution *goal.UpdateContributionUseCase
	DeleteContribution *goal.DeleteContributionUseCase
	Statistics         *goal.GetGoalStatisticsUseCase
}

// GoalController handles goal endpoints.
type GoalController struct {
	uc GoalUseCases
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(useCases GoalUseCases) *GoalController {
	return &GoalController{uc: useCases}
}

const missingGoalFieldsCode = string(domainerror.ErrCodeMissingGoalFields)

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.uc.List.Execute(ctx.Request.Context(), goal.ListGoalsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalListResponse(output.Goals, time.Now().UTC())))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), missingGoalFieldsCode)
		return
	}

	input := goal.CreateGoalInput{
		UserID:       userID,
		Title:        req.Title,
		TargetAmount: *req.TargetAmount,
	}
	if req.Deadline != "" {
		deadline, err := dto.ParseDateTime(req.Deadline)
		if err != nil {
			badRequest(ctx, err.Error(), missingGoalFieldsCode)
			return
		}
		input.Deadline = deadline
	}
	contributions, err := dto.ToContributionInputs(req.Contributions)
	if err != nil {
		badRequest(ctx, err.Error(), missingGoalFieldsCode)
		return
	}
	input.Contributions = contributions

	output, err := c.uc.Create.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK(dto.ToGoalResponse(output.Goal, time.Now().UTC())))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal", missingGoalFieldsCode)
	if !ok {
		return
	}

	output, err := c.uc.Get.Execute(ctx.Request.Context(), goal.GetGoalInput{GoalID: goalID, UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalResponse(output.Goal, time.Now().UTC())))
}

// Update handles PUT /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal", missingGoalFieldsCode)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), missingGoalFieldsCode)
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:       goalID,
		UserID:       userID,
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
	}
	deadline, err := dto.ParseOptionalDateTime(req.Deadline)
	if err != nil {
		badRequest(ctx, err.Error(), missingGoalFieldsCode)
		return
	}
	input.Deadline = deadline
	if req.Contributions != nil {
		contributions, err := dto.ToContributionInputs(*req.Contributions)
		if err != nil {
			badRequest(ctx, err.Error(), missingGoalFieldsCode)
			return
		}
		input.Contributions = &contributions
	}

	output, err := c.uc.Update.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalResponse(output.Goal, time.Now().UTC())))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal", missingGoalFieldsCode)
	if !ok {
		return
	}

	if err := c.uc.Delete.Execute(ctx.Request.Context(), goal.DeleteGoalInput{GoalID: goalID, UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.MessageResponse{Message: "Goal deleted successfully"}))
}

// AddContribution handles POST /goals/:id/contributions requests.
func (c *GoalController) AddContribution(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal", missingGoalFieldsCode)
	if !ok {
		return
	}

	var req dto.ContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), missingGoalFieldsCode)
		return
	}
	contributions, err := dto.ToContributionInputs([]dto.ContributionRequest{req})
	if err != nil {
		badRequest(ctx, err.Error(), missingGoalFieldsCode)
		return
	}

	output, err := c.uc.AddContribution.Execute(ctx.Request.Context(), goal.AddContributionInput{
		GoalID:       goalID,
		UserID:       userID,
		Contribution: contributions[0],
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK(dto.ToGoalResponse(output.Goal, time.Now().UTC())))
}

// UpdateContribution handles PUT /goals/:id/contributions/:contributionId requests.
func (c *GoalController) UpdateContribution(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal", missingGoalFieldsCode)
	if !ok {
		return
	}
	contributionID, ok := parseIDParam(ctx, "contributionId", "contribution", missingGoalFieldsCode)
	if !ok {
		return
	}

	var req dto.UpdateContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), missingGoalFieldsCode)
		return
	}
	date, err := dto.ParseOptionalDateTime(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), missingGoalFieldsCode)
		return
	}

	output, err := c.uc.UpdateContribution.Execute(ctx.Request.Context(), goal.UpdateContributionInput{
		GoalID:         goalID,
		UserID:         userID,
		ContributionID: contributionID,
		Amount:         req.Amount,
		Date:           date,
		Note:           req.Note,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalResponse(output.Goal, time.Now().UTC())))
}

// DeleteContribution handles DELETE /goals/:id/contributions/:contributionId requests.
func (c *GoalController) DeleteContribution(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "id", "goal", missingGoalFieldsCode)
	if !ok {
		return
	}
	contributionID, ok := parseIDParam(ctx, "contributionId", "contribution", missingGoalFieldsCode)
	if !ok {
		return
	}

	output, err := c.uc.DeleteContribution.Execute(ctx.Request.Context(), goal.DeleteContributionInput{
		GoalID:         goalID,
		UserID:         userID,
		ContributionID: contributionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalResponse(output.Goal, time.Now().UTC())))
}

// Statistics handles GET /goals/statistics requests.
func (c *GoalController) Statistics(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.uc.Statistics.Execute(ctx.Request.Context(), goal.GetGoalStatisticsInput{
		UserID: userID,
		Now:    time.Now().UTC(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToGoalStatisticsResponse(output)))
}
