// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// AccountType tags the account a transaction was paid from or into.
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCreditCard AccountType = "credit-card"
)

// IsValid reports whether the account type is one of the known values.
func (a AccountType) IsValid() bool {
	switch a {
	case AccountTypeCash, AccountTypeBank, AccountTypeCreditCard:
		return true
	}
	return false
}

// Supported attachment content types.
const (
	AttachmentTypeJPEG = "image/jpeg"
	AttachmentTypePNG  = "image/png"
	AttachmentTypeJPG  = "image/jpg"
)

// Attachment is metadata about a file attached to a transaction.
type Attachment struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// IsValidAttachmentType reports whether contentType is an accepted attachment type.
func IsValidAttachmentType(contentType string) bool {
	switch contentType {
	case AttachmentTypeJPEG, AttachmentTypePNG, AttachmentTypeJPG:
		return true
	}
	return false
}

// Transaction represents a financial transaction in the Finance Tracker system.
// Amount is always positive; Type carries the direction.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	AccountType AccountType
	Description string
	Date        time.Time
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID uuid.UUID,
	accountType AccountType,
	description string,
	date time.Time,
	attachments []Attachment,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		CategoryID:  categoryID,
		AccountType: accountType,
		Description: description,
		Date:        date,
		Attachments: attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory represents a transaction with its resolved category.
// Category is nil when the referenced category no longer exists.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
