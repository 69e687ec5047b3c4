package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDistribute() {
	recipient := suite.createTestRecipient(models.RecipientCreate{AllowanceAmount: decimal.NewFromFloat(10)})

	distribution, err := models.Distribute(models.DB, suite.managerID, models.DistributionCreate{
		RecipientID: recipient.ID,
		Date:        time.Date(2024, 3, 9, 17, 45, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
		Amounts: models.Amounts{
			Give:   decimal.NewFromFloat(1),
			Spend:  decimal.NewFromFloat(5),
			Save:   decimal.NewFromFloat(4),
			Invest: decimal.Zero,
		},
		Notes: " birthday week ",
	})
	suite.Require().Nil(err)

	suite.Assert().True(decimal.NewFromFloat(10).Equal(distribution.TotalAmount), "Total is %s", distribution.TotalAmount)
	suite.Assert().Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), distribution.DistributionDate)
	suite.Assert().Equal("birthday week", distribution.Notes)

	balances := suite.balances(recipient)
	suite.Assert().True(decimal.NewFromFloat(1).Equal(balances.Give))
	suite.Assert().True(decimal.NewFromFloat(5).Equal(balances.Spend))
	suite.Assert().True(decimal.NewFromFloat(4).Equal(balances.Save))
	suite.Assert().True(balances.Invest.IsZero())

	transactions, err := models.ListTransactions(models.DB, suite.managerID, recipient.ID, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 3, "Zero amounts do not create transactions")

	for _, tr := range transactions {
		suite.Assert().Equal(models.TypeDistribution, tr.TransactionType)
		suite.Require().NotNil(tr.DistributionID)
		suite.Assert().Equal(distribution.ID, *tr.DistributionID)
		suite.Assert().True(tr.Amount.Equal(balances.Get(tr.CategoryType)), "Balance after the first distribution equals its amount")
		suite.Assert().True(tr.BalanceAfter.Equal(balances.Get(tr.CategoryType)))
	}
}

func (suite *TestSuiteStandard) TestDistributeBalanceAfter() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})
	suite.distribute(recipient, models.Amounts{Save: decimal.NewFromFloat(2.5)})
	suite.distribute(recipient, models.Amounts{Save: decimal.NewFromFloat(1.25)})

	transactions, err := models.ListTransactions(models.DB, suite.managerID, recipient.ID, models.TransactionFilter{CategoryType: models.Save})
	suite.Require().Nil(err)
	suite.Require().Len(transactions, 2)

	// Newest first
	suite.Assert().True(decimal.NewFromFloat(3.75).Equal(transactions[0].BalanceAfter), "Balance after is %s", transactions[0].BalanceAfter)
	suite.Assert().True(decimal.NewFromFloat(2.5).Equal(transactions[1].BalanceAfter), "Balance after is %s", transactions[1].BalanceAfter)
}

func (suite *TestSuiteStandard) TestDistributeValidation() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})

	tests := []struct {
		name    string
		amounts models.Amounts
	}{
		{"All zero", models.Amounts{}},
		{"Negative amount", models.Amounts{Give: decimal.NewFromFloat(-1), Save: decimal.NewFromFloat(5)}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.Distribute(models.DB, suite.managerID, models.DistributionCreate{RecipientID: recipient.ID, Amounts: tt.amounts})
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	balances := suite.balances(recipient)
	suite.Assert().True(balances.Total().IsZero(), "Rejected distributions must not change balances")

	distributions, err := models.ListDistributions(models.DB, suite.managerID, recipient.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(distributions, 0)
}

func (suite *TestSuiteStandard) TestDistributeMissingCategory() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})
	suite.Require().Nil(models.DB.Where("recipient_id = ? AND category_type = ?", recipient.ID, models.Invest).Delete(&models.AllowanceCategory{}).Error)

	_, err := models.Distribute(models.DB, suite.managerID, models.DistributionCreate{
		RecipientID: recipient.ID,
		Amounts:     models.EqualSplit(decimal.NewFromFloat(8)),
	})
	suite.Require().NotNil(err)

	distributions, err := models.ListDistributions(models.DB, suite.managerID, recipient.ID)
	suite.Require().Nil(err)
	suite.Assert().Len(distributions, 0, "The distribution must be rolled back")

	var give models.AllowanceCategory
	suite.Require().Nil(models.DB.Where(&models.AllowanceCategory{RecipientID: recipient.ID, CategoryType: models.Give}).First(&give).Error)
	suite.Assert().True(give.Balance.IsZero(), "Credits must be rolled back, balance is %s", give.Balance)
}

func (suite *TestSuiteStandard) TestDistributeDatabaseError() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})
	suite.CloseDB()

	_, err := models.Distribute(models.DB, suite.managerID, models.DistributionCreate{
		RecipientID: recipient.ID,
		Amounts:     models.EqualSplit(decimal.NewFromFloat(8)),
	})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestListDistributionsOrder() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})

	for _, d := range []time.Time{
		time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
	} {
		_, err := models.Distribute(models.DB, suite.managerID, models.DistributionCreate{
			RecipientID: recipient.ID,
			Date:        d,
			Amounts:     models.Amounts{Spend: decimal.NewFromFloat(1)},
		})
		suite.Require().Nil(err)
	}

	distributions, err := models.ListDistributions(models.DB, suite.managerID, recipient.ID)
	suite.Require().Nil(err)
	suite.Require().Len(distributions, 3)
	suite.Assert().Equal(21, distributions[0].DistributionDate.Day())
	suite.Assert().Equal(14, distributions[1].DistributionDate.Day())
	suite.Assert().Equal(7, distributions[2].DistributionDate.Day())
}

func (suite *TestSuiteStandard) TestUndistributed() {
	now := time.Date(2024, 5, 22, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		age           time.Duration
		allowance     float64
		distributed   []float64
		weeks         int64
		undistributed float64
		pending       int64
	}{
		{"Three weeks, partially distributed", 21 * 24 * time.Hour, 10, []float64{25}, 3, 5, 0},
		{"Six days is no full week", 6 * 24 * time.Hour, 10, nil, 0, 0, 0},
		{"Over-distribution is clamped", 7 * 24 * time.Hour, 10, []float64{30}, 1, 0, 0},
		{"Weeks pending", 30 * 24 * time.Hour, 5, []float64{4}, 4, 16, 3},
		{"No allowance", 70 * 24 * time.Hour, 0, nil, 10, 0, 0},
		{"Created in the future", -48 * time.Hour, 10, nil, 0, 0, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recipient := suite.createTestRecipient(models.RecipientCreate{AllowanceAmount: decimal.NewFromFloat(tt.allowance)})
			for _, d := range tt.distributed {
				suite.distribute(recipient, models.Amounts{Save: decimal.NewFromFloat(d)})
			}
			suite.backdate(recipient, now.Add(-tt.age))

			u, err := models.Undistributed(models.DB, suite.managerID, recipient.ID, now)
			assert.Nil(t, err)
			assert.Equal(t, tt.weeks, u.WeeksSinceCreated)
			assert.True(t, decimal.NewFromFloat(tt.undistributed).Equal(u.UndistributedAmount), "undistributed is %s", u.UndistributedAmount)
			assert.Equal(t, tt.pending, u.WeeksPending)
			assert.True(t, decimal.NewFromFloat(tt.allowance).Mul(decimal.NewFromInt(tt.weeks)).Equal(u.TotalAllowanceOwed))
		})
	}
}

func (suite *TestSuiteStandard) TestUndistributedNotFound() {
	_, err := models.Undistributed(models.DB, suite.managerID, uuid.New(), time.Now())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
