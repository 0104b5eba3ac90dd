package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/internal/types"
)

func (suite *TestSuiteStandard) TestBudgetZeroPlannedAmountAllowed() {
	budget := models.Budget{
		UserID: "some-user",
		Month:  types.NewMonth(2024, time.March),
	}

	err := models.DB.Create(&budget).Error
	assert.Nil(suite.T(), err, "a budget of zero must be allowed")
}

func (suite *TestSuiteStandard) TestBudgetNegativePlannedAmount() {
	budget := models.Budget{
		UserID:        "some-user",
		Month:         types.NewMonth(2024, time.March),
		PlannedAmount: decimal.NewFromFloat(-100),
	}

	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}
