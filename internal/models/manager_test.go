package models_test

import (
	"github.com/grovesmith/backend/internal/models"
)

func (suite *TestSuiteStandard) TestEnsureManager() {
	first, err := models.EnsureManager(models.DB, models.ManagerProfile{ID: "user-1", Email: "first@example.com", FullName: "First Name"})
	suite.Require().Nil(err)
	suite.Assert().Equal("first@example.com", first.Email)

	again, err := models.EnsureManager(models.DB, models.ManagerProfile{ID: "user-1", Email: "second@example.com", FullName: "Second Name"})
	suite.Require().Nil(err)
	suite.Assert().Equal("first@example.com", again.Email, "Existing profiles are not overwritten")
	suite.Assert().Equal("First Name", again.FullName)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Manager{}).Where("id = ?", "user-1").Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestEnsureManagerEmptyID() {
	_, err := models.EnsureManager(models.DB, models.ManagerProfile{})
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestEnsureManagerDatabaseError() {
	suite.CloseDB()

	_, err := models.EnsureManager(models.DB, models.ManagerProfile{ID: "user-2"})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
