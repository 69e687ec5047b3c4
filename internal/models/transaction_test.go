package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestListTransactionsFilter() {
	recipient := suite.giveRecipient(30)
	suite.distribute(recipient, models.Amounts{Spend: decimal.NewFromFloat(5), Save: decimal.NewFromFloat(5)})

	cause := suite.createTestCause(recipient, models.CauseCreate{Name: "Animal Shelter", GoalAmount: decimal.NewFromFloat(10)})
	suite.allocate(cause, 10)
	_, err := models.CompleteCause(models.DB, suite.managerID, cause.ID)
	suite.Require().Nil(err)

	tests := []struct {
		name   string
		filter models.TransactionFilter
		len    int
	}{
		{"All", models.TransactionFilter{}, 4},
		{"Give", models.TransactionFilter{CategoryType: models.Give}, 2},
		{"Withdrawals", models.TransactionFilter{TransactionType: models.TypeWithdrawal}, 1},
		{"Give distributions", models.TransactionFilter{CategoryType: models.Give, TransactionType: models.TypeDistribution}, 1},
		{"Description glob", models.TransactionFilter{Description: "donation to *"}, 1},
		{"Description glob no match", models.TransactionFilter{Description: "*zoo*"}, 0},
		{"Limit", models.TransactionFilter{Limit: 2}, 2},
		{"Limit with glob", models.TransactionFilter{Description: "*distribution*", Limit: 2}, 2},
		{"Dividends", models.TransactionFilter{TransactionType: models.TypeDividend}, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transactions, err := models.ListTransactions(models.DB, suite.managerID, recipient.ID, tt.filter)
			assert.Nil(t, err)
			assert.Len(t, transactions, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestListTransactionsInvalidFilter() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})

	tests := []struct {
		name   string
		filter models.TransactionFilter
	}{
		{"Category", models.TransactionFilter{CategoryType: "fun"}},
		{"Type", models.TransactionFilter{TransactionType: "refund"}},
		{"Limit", models.TransactionFilter{Limit: -1}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.ListTransactions(models.DB, suite.managerID, recipient.ID, tt.filter)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestListTransactionsNotFound() {
	_, err := models.ListTransactions(models.DB, suite.managerID, uuid.New(), models.TransactionFilter{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
