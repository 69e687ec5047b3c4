package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type TransactionLinks struct {
	Recipient string `json:"recipient" example:"https://example.com/api/v1/recipients/3b1ea324-d438-4419-882a-2fc91d71772f"` // The recipient
}

type Transaction struct {
	models.DefaultModel
	RecipientID     uuid.UUID              `json:"recipientId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`    // The recipient
	CategoryType    models.CategoryType    `json:"categoryType" example:"give"`                                   // Category the transaction belongs to
	TransactionType models.TransactionType `json:"transactionType" example:"withdrawal"`                          // Kind of transaction
	Amount          decimal.Decimal        `json:"amount" example:"-15"`                                          // Signed amount, negative for withdrawals
	BalanceAfter    decimal.Decimal        `json:"balanceAfter" example:"25"`                                     // Balance of the category after the transaction
	Description     string                 `json:"description" example:"Donation to Animal Shelter"`              // Description
	TransactionDate time.Time              `json:"transactionDate" example:"2024-07-06T00:00:00Z"`                // Date of the transaction
	DistributionID  *uuid.UUID             `json:"distributionId" example:"0f9bb7c4-5c5e-4a3b-b7f9-5f6c1d0de5a2"` // The distribution that created the transaction, if any
	Links           TransactionLinks       `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	return Transaction{
		DefaultModel:    model.DefaultModel,
		RecipientID:     model.RecipientID,
		CategoryType:    model.CategoryType,
		TransactionType: model.TransactionType,
		Amount:          model.Amount,
		BalanceAfter:    model.BalanceAfter,
		Description:     model.Description,
		TransactionDate: model.TransactionDate,
		DistributionID:  model.DistributionID,
		Links: TransactionLinks{
			Recipient: link(c, "/recipients/%s", model.RecipientID),
		},
	}
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                       // List of resources
	Error *string       `json:"error" example:"\"fun\" is not a category"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	Category    string `form:"category"`                          // By category type
	Type        string `form:"type"`                              // By transaction type
	Description string `form:"description" filterField:"false"` // Glob pattern for the description, "*" matches anything
	Limit       int    `form:"limit" filterField:"false"`       // Maximum number of transactions to return. Defaults to 50, 0 returns all.
}

// filter returns the model filter for the query
func (f TransactionQueryFilter) filter(setFields []string) models.TransactionFilter {
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = f.Limit
	}

	return models.TransactionFilter{
		CategoryType:    models.CategoryType(f.Category),
		TransactionType: models.TransactionType(f.Type),
		Description:     f.Description,
		Limit:           limit,
	}
}
