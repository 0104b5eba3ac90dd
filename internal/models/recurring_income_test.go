package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/walletwise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestRecurringIncomeStartDateRequired() {
	wallet := suite.createTestWallet("recurring")

	income := models.RecurringIncome{
		UserID:   "recurring",
		WalletID: wallet.ID,
		Amount:   decimal.NewFromFloat(2400),
	}

	err := models.DB.Create(&income).Error
	assert.ErrorIs(suite.T(), err, models.ErrStartDateNotSet)
}

func (suite *TestSuiteStandard) TestRecurringIncomeAmountMustBePositive() {
	wallet := suite.createTestWallet("recurring")

	income := models.RecurringIncome{
		UserID:    "recurring",
		WalletID:  wallet.ID,
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	err := models.DB.Create(&income).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestGoalProgress() {
	goal := models.Goal{
		TargetAmount: decimal.NewFromFloat(5000),
		CurrentSaved: decimal.NewNullDecimal(decimal.NewFromFloat(1250)),
	}

	assert.True(suite.T(), goal.Progress().Equal(decimal.NewFromInt(25)), "progress is %s", goal.Progress())

	unsaved := models.Goal{TargetAmount: decimal.NewFromFloat(5000)}
	assert.True(suite.T(), unsaved.Progress().IsZero())

	invalid := models.Goal{}
	assert.True(suite.T(), invalid.Progress().IsZero(), "progress without a target must be zero")
}
