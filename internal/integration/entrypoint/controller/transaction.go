package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/transaction"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

const invalidFilterCode = string(domainerror.ErrCodeInvalidTransactionFilter)

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters: "+err.Error(), invalidFilterCode)
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Sort:   adapter.TransactionSort(query.Sort),
		Page:   query.Page,
		Limit:  query.Limit,
	}
	if query.Type != "" {
		t := entity.TransactionType(query.Type)
		input.Type = &t
	}
	if query.AccountType != "" {
		a := entity.AccountType(query.AccountType)
		input.AccountType = &a
	}
	if query.CategoryID != "" {
		id, err := uuid.Parse(query.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category ID format", invalidFilterCode)
			return
		}
		input.CategoryID = &id
	}
	if query.StartDate != "" {
		start, err := dto.ParseDateTime(query.StartDate)
		if err != nil {
			badRequest(ctx, err.Error(), invalidFilterCode)
			return
		}
		input.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := dto.ParseDateTime(query.EndDate)
		if err != nil {
			badRequest(ctx, err.Error(), invalidFilterCode)
			return
		}
		if len(query.EndDate) == len(dto.DateLayout) {
			end = entity.DayPeriod(end, end).End
		}
		input.EndDate = &end
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToTransactionListResponse(output.Result)))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id", "transaction", string(domainerror.ErrCodeMissingTransactionFields))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToTransactionResponse(output.Transaction)))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionType(req.Type),
		Amount:      *req.Amount,
		AccountType: entity.AccountType(req.AccountType),
		Description: req.Description,
		Attachments: dto.ToAttachments(req.Attachments),
	}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category ID format", string(domainerror.ErrCodeTransactionCategoryInvalid))
			return
		}
		input.CategoryID = id
	}
	date, err := dto.ParseOptionalDateTime(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}
	input.Date = date

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK(dto.ToTransactionResponse(output.Transaction)))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id", "transaction", string(domainerror.ErrCodeMissingTransactionFields))
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if req.Type != nil {
		t := entity.TransactionType(*req.Type)
		input.Type = &t
	}
	if req.AccountType != nil {
		a := entity.AccountType(*req.AccountType)
		input.AccountType = &a
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category ID format", string(domainerror.ErrCodeTransactionCategoryInvalid))
			return
		}
		input.CategoryID = &id
	}
	if req.Attachments != nil {
		attachments := dto.ToAttachments(*req.Attachments)
		input.Attachments = &attachments
	}
	date, err := dto.ParseOptionalDateTime(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}
	input.Date = date

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToTransactionResponse(output.Transaction)))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id", "transaction", string(domainerror.ErrCodeMissingTransactionFields))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.MessageResponse{Message: "Transaction deleted successfully"}))
}
