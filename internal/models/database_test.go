package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/walletwise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestNotFoundMessage() {
	var wallet models.Wallet
	err := models.DB.First(&wallet, "user_id = ?", "nobody").Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no wallet matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	var wallet models.Wallet
	err := models.DB.First(&wallet, "user_id = ?", "nobody").Error

	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestCapabilitiesResolved() {
	assert.True(suite.T(), models.Features.RecurringIncomes, "recurring incomes capability must be on for a migrated database")
	assert.True(suite.T(), models.Features.CategoryBudgets, "category budgets capability must be on for a migrated database")
}

func (suite *TestSuiteStandard) TestCapabilitiesMissingTable() {
	err := models.DB.Migrator().DropTable(&models.RecurringIncome{})
	if err != nil {
		suite.Assert().FailNow("table could not be dropped", err)
	}

	models.ResolveCapabilities()
	assert.False(suite.T(), models.Features.RecurringIncomes)
	assert.True(suite.T(), models.Features.CategoryBudgets)
}
