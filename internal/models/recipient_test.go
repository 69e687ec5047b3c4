package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecipientCreate() {
	recipient := suite.createTestRecipient(models.RecipientCreate{
		Name:            "  Sam  ",
		AllowanceAmount: decimal.NewFromFloat(10),
	})

	suite.Assert().Equal("Sam", recipient.Name)
	suite.Assert().True(recipient.Active)
	suite.Assert().False(recipient.Archived)

	var categories []models.AllowanceCategory
	err := models.DB.Where(&models.AllowanceCategory{RecipientID: recipient.ID}).Find(&categories).Error
	suite.Require().Nil(err)
	suite.Require().Len(categories, len(models.CategoryTypes))

	for _, c := range categories {
		suite.Assert().True(c.Balance.IsZero(), "Balance of %s is %s", c.CategoryType, c.Balance)
	}
}

func (suite *TestSuiteStandard) TestRecipientCreateValidation() {
	tests := []struct {
		name   string
		create models.RecipientCreate
	}{
		{"Empty name", models.RecipientCreate{Name: "   ", AllowanceAmount: decimal.NewFromFloat(5)}},
		{"Negative allowance", models.RecipientCreate{Name: "Sam", AllowanceAmount: decimal.NewFromFloat(-1)}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.CreateRecipient(models.DB, suite.managerID, tt.create)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Recipient{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestRecipientCreateUnknownManager() {
	_, err := models.CreateRecipient(models.DB, "not-a-manager", models.RecipientCreate{Name: "Sam"})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.AllowanceCategory{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "Categories must not be stored without their recipient")
}

func (suite *TestSuiteStandard) TestRecipientOwnership() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})
	other := suite.createTestManager("").ID

	_, err := models.GetRecipient(models.DB, other, recipient.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.ResetAccount(models.DB, other, recipient.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.Distribute(models.DB, other, models.DistributionCreate{
		RecipientID: recipient.ID,
		Amounts:     models.EqualSplit(decimal.NewFromFloat(4)),
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	list, err := models.ListRecipients(models.DB, other, true)
	suite.Require().Nil(err)
	suite.Assert().Len(list, 0)
}

func (suite *TestSuiteStandard) TestRecipientUpdateProfile() {
	recipient := suite.createTestRecipient(models.RecipientCreate{AvatarURL: "https://example.com/sam.png"})

	updated, err := models.UpdateRecipientProfile(models.DB, suite.managerID, recipient.ID, models.RecipientProfile{
		Name:            "Samantha",
		AllowanceAmount: decimal.NewFromFloat(7.5),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Samantha", updated.Name)
	suite.Assert().True(decimal.NewFromFloat(7.5).Equal(updated.AllowanceAmount), "Allowance is %s", updated.AllowanceAmount)
	suite.Assert().Equal("", updated.AvatarURL, "An empty avatar URL removes the avatar")
}

func (suite *TestSuiteStandard) TestRecipientUpdateProfileValidation() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})

	tests := []struct {
		name    string
		profile models.RecipientProfile
	}{
		{"Zero allowance", models.RecipientProfile{Name: "Sam", AllowanceAmount: decimal.Zero}},
		{"Negative allowance", models.RecipientProfile{Name: "Sam", AllowanceAmount: decimal.NewFromFloat(-3)}},
		{"Empty name", models.RecipientProfile{Name: "", AllowanceAmount: decimal.NewFromFloat(3)}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.UpdateRecipientProfile(models.DB, suite.managerID, recipient.ID, tt.profile)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestRecipientInactive() {
	recipient := suite.createTestRecipient(models.RecipientCreate{})
	suite.Require().Nil(models.DB.Model(&recipient).Update("active", false).Error)

	_, err := models.UpdateRecipientProfile(models.DB, suite.managerID, recipient.ID, models.RecipientProfile{Name: "Sam", AllowanceAmount: decimal.NewFromFloat(1)})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.Distribute(models.DB, suite.managerID, models.DistributionCreate{RecipientID: recipient.ID, Amounts: models.Amounts{Save: decimal.NewFromFloat(1)}})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	list, err := models.ListRecipients(models.DB, suite.managerID, true)
	suite.Require().Nil(err)
	suite.Assert().Len(list, 0)
}

func (suite *TestSuiteStandard) TestRecipientList() {
	zoe := suite.createTestRecipient(models.RecipientCreate{Name: "Zoe"})
	adam := suite.createTestRecipient(models.RecipientCreate{Name: "Adam"})
	mia := suite.createTestRecipient(models.RecipientCreate{Name: "Mia"})

	_, err := models.SetArchived(models.DB, suite.managerID, mia.ID, true)
	suite.Require().Nil(err)

	list, err := models.ListRecipients(models.DB, suite.managerID, false)
	suite.Require().Nil(err)
	suite.Require().Len(list, 2)
	suite.Assert().Equal(adam.ID, list[0].ID)
	suite.Assert().Equal(zoe.ID, list[1].ID)

	_, err = list[0].Balances()
	suite.Assert().Nil(err, "Categories must be preloaded")

	list, err = models.ListRecipients(models.DB, suite.managerID, true)
	suite.Require().Nil(err)
	suite.Assert().Len(list, 3)

	unarchived, err := models.SetArchived(models.DB, suite.managerID, mia.ID, false)
	suite.Require().Nil(err)
	suite.Assert().False(unarchived.Archived)
}

func (suite *TestSuiteStandard) TestResetAccount() {
	recipient := suite.createTestRecipient(models.RecipientCreate{Name: "Sam"})
	amounts := models.Amounts{
		Give:   decimal.NewFromFloat(20),
		Spend:  decimal.NewFromFloat(20),
		Save:   decimal.NewFromFloat(20),
		Invest: decimal.NewFromFloat(20),
	}
	suite.distribute(recipient, amounts)
	suite.distribute(recipient, amounts)

	active := suite.createTestCause(recipient, models.CauseCreate{GoalAmount: decimal.NewFromFloat(30)})
	_, err := models.AllocateToCause(models.DB, suite.managerID, active.ID, decimal.NewFromFloat(15))
	suite.Require().Nil(err)

	completed := suite.createTestCause(recipient, models.CauseCreate{GoalAmount: decimal.NewFromFloat(10)})
	_, err = models.AllocateToCause(models.DB, suite.managerID, completed.ID, decimal.NewFromFloat(10))
	suite.Require().Nil(err)
	_, err = models.CompleteCause(models.DB, suite.managerID, completed.ID)
	suite.Require().Nil(err)

	message, err := models.ResetAccount(models.DB, suite.managerID, recipient.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Sam's account has been reset", message)

	balances := suite.balances(recipient)
	for _, t := range models.CategoryTypes {
		suite.Assert().True(balances.Get(t).IsZero(), "%s balance is %s", t, balances.Get(t))
	}

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Where("recipient_id = ?", recipient.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "Transactions must be deleted")

	suite.Require().Nil(models.DB.Model(&models.Distribution{}).Where("recipient_id = ?", recipient.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "Distributions must be deleted")

	causes, err := models.ListCauses(models.DB, suite.managerID, recipient.ID)
	suite.Require().Nil(err)
	suite.Require().Len(causes, 2)
	for _, c := range causes {
		suite.Assert().True(c.CurrentAmount.IsZero())
		suite.Assert().False(c.IsCompleted)
		suite.Assert().Nil(c.CompletedAt)
	}
}

func (suite *TestSuiteStandard) TestResetAccountNotFound() {
	_, err := models.ResetAccount(models.DB, suite.managerID, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
