package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// AttachmentDTO is the metadata of an uploaded file.
type AttachmentDTO struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type        string           `json:"type" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string           `json:"categoryId"`
	AccountType string           `json:"accountType"`
	Description string           `json:"description"`
	Date        *string          `json:"date"`
	Attachments []AttachmentDTO  `json:"attachments"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *string          `json:"categoryId"`
	AccountType *string          `json:"accountType"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
	Attachments *[]AttachmentDTO `json:"attachments"`
}

// ListTransactionsQuery holds the query parameters of GET /transactions.
type ListTransactionsQuery struct {
	Type        string `form:"type"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	CategoryID  string `form:"categoryId"`
	AccountType string `form:"accountType"`
	Sort        string `form:"sort"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// TransactionCategoryResponse is the category embedded in a transaction.
type TransactionCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	Type        string                       `json:"type"`
	Amount      decimal.Decimal              `json:"amount"`
	CategoryID  string                       `json:"categoryId"`
	Category    *TransactionCategoryResponse `json:"category"`
	AccountType string                       `json:"accountType"`
	Description string                       `json:"description"`
	Date        time.Time                    `json:"date"`
	Attachments []AttachmentDTO              `json:"attachments"`
	CreatedAt   time.Time                    `json:"createdAt"`
	UpdatedAt   time.Time                    `json:"updatedAt"`
}

// PaginationResponse describes the returned page.
type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// TransactionListResponse represents a page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ToAttachments converts request attachments to domain values.
func ToAttachments(in []AttachmentDTO) []entity.Attachment {
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Attachment{URL: a.URL, Type: a.Type})
	}
	return out
}

// ToTransactionResponse converts a transaction and its resolved category.
// A dangling category reference is reported as Other.
func ToTransactionResponse(item *entity.TransactionWithCategory) TransactionResponse {
	tx := item.Transaction
	resp := TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		CategoryID:  tx.CategoryID.String(),
		AccountType: string(tx.AccountType),
		Description: tx.Description,
		Date:        tx.Date,
		Attachments: make([]AttachmentDTO, 0, len(tx.Attachments)),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
	for _, a := range tx.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentDTO{URL: a.URL, Type: a.Type})
	}

	if item.Category != nil {
		resp.Category = &TransactionCategoryResponse{
			ID:   item.Category.ID.String(),
			Name: item.Category.Name,
			Type: string(item.Category.Type),
		}
	} else {
		resp.Category = &TransactionCategoryResponse{
			ID:   tx.CategoryID.String(),
			Name: entity.OtherCategoryName,
			Type: string(tx.Type),
		}
	}
	return resp
}

// ToTransactionListResponse converts a listing result.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		items = append(items, ToTransactionResponse(t))
	}
	return TransactionListResponse{
		Transactions: items,
		Pagination: PaginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
}
