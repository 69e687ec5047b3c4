package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/httputil"
	"github.com/grovesmith/backend/internal/models"
)

// GetTransactions returns the transaction history of a recipient
//
//	@Summary		Get transactions
//	@Description	Returns the transactions of a recipient, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	TransactionListResponse
//	@Failure		400			{object}	TransactionListResponse
//	@Failure		401			{object}	TransactionListResponse
//	@Failure		404			{object}	TransactionListResponse
//	@Failure		500			{object}	TransactionListResponse
//	@Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			category	query		string	false	"Filter by category type"
//	@Param			type		query		string	false	"Filter by transaction type"
//	@Param			description	query		string	false	"Filter by description, '*' matches any text"
//	@Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to 50, 0 returns all."
//	@Router			/v1/recipients/{id}/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, query)

	transactions, err := models.ListTransactions(db(c), managerID, recipient.ID, query.filter(setFields))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}
