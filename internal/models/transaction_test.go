package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/walletwise/backend/internal/models"
)

func (suite *TestSuiteStandard) createTestWallet(userID string) models.Wallet {
	wallet := models.Wallet{UserID: userID}
	err := models.DB.Create(&wallet).Error
	if err != nil {
		suite.Assert().FailNow("wallet could not be created", err)
	}

	return wallet
}

func (suite *TestSuiteStandard) TestTransactionSigned() {
	amount := decimal.NewFromFloat(17.32)

	income := models.Transaction{Type: models.Income, Amount: amount}
	assert.True(suite.T(), income.Signed().Equal(amount))

	expense := models.Transaction{Type: models.Expense, Amount: amount}
	assert.True(suite.T(), expense.Signed().Equal(amount.Neg()))
}

func (suite *TestSuiteStandard) TestTransactionTrimsDescription() {
	wallet := suite.createTestWallet("trim")

	transaction := models.Transaction{
		WalletID:    wallet.ID,
		Description: "  Groceries\t",
		Amount:      decimal.NewFromFloat(10),
	}

	err := models.DB.Create(&transaction).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Groceries", transaction.Description)
}

func (suite *TestSuiteStandard) TestTransactionTypeDefaultsToExpense() {
	wallet := suite.createTestWallet("default-type")

	transaction := models.Transaction{
		WalletID: wallet.ID,
		Amount:   decimal.NewFromFloat(10),
	}

	err := models.DB.Create(&transaction).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.Expense, transaction.Type)
}

func (suite *TestSuiteStandard) TestTransactionInvalidType() {
	wallet := suite.createTestWallet("invalid-type")

	transaction := models.Transaction{
		WalletID: wallet.ID,
		Amount:   decimal.NewFromFloat(10),
		Type:     "TRANSFER",
	}

	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrInvalidTransactionType)
}

func (suite *TestSuiteStandard) TestTransactionAmountMustBePositive() {
	wallet := suite.createTestWallet("amounts")

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-7.5)} {
		transaction := models.Transaction{
			WalletID: wallet.ID,
			Amount:   amount,
			Type:     models.Expense,
		}

		err := models.DB.Create(&transaction).Error
		assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive, "amount %s was accepted", amount)
	}
}

func (suite *TestSuiteStandard) TestTransactionNilCategoryReference() {
	wallet := suite.createTestWallet("nil-category")

	nilID := uuid.Nil
	transaction := models.Transaction{
		WalletID:   wallet.ID,
		Amount:     decimal.NewFromFloat(10),
		CategoryID: &nilID,
	}

	err := models.DB.Create(&transaction).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), transaction.CategoryID, "a nil UUID reference must be stored as NULL")
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	wallet := suite.createTestWallet("dates")

	tz, _ := time.LoadLocation("Europe/Berlin")
	date := time.Date(2024, 3, 17, 12, 0, 0, 0, tz)

	transaction := models.Transaction{
		WalletID: wallet.ID,
		Amount:   decimal.NewFromFloat(10),
		Date:     &date,
	}

	err := models.DB.Create(&transaction).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())
}
