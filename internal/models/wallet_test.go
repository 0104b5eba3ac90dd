package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/walletwise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestWalletCurrentBalance() {
	wallet := models.Wallet{}
	assert.True(suite.T(), wallet.CurrentBalance().IsZero(), "unset balance must read as zero")

	wallet.Balance = decimal.NewNullDecimal(decimal.NewFromFloat(120.5))
	assert.True(suite.T(), wallet.CurrentBalance().Equal(decimal.NewFromFloat(120.5)))
}

func (suite *TestSuiteStandard) TestWalletAddToBalance() {
	wallet := models.Wallet{}

	wallet.AddToBalance(decimal.NewFromFloat(1000))
	assert.True(suite.T(), wallet.CurrentBalance().Equal(decimal.NewFromFloat(1000)))

	wallet.AddToBalance(decimal.NewFromFloat(-300))
	assert.True(suite.T(), wallet.CurrentBalance().Equal(decimal.NewFromFloat(700)))
}

func (suite *TestSuiteStandard) TestWalletUniquePerUser() {
	_ = suite.createTestWallet("highlander")

	second := models.Wallet{UserID: "highlander"}
	err := models.DB.Create(&second).Error
	assert.ErrorIs(suite.T(), err, models.ErrWalletExists)
}
