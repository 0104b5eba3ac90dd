package importer_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/walletwise/backend/internal/importer"
	"github.com/walletwise/backend/internal/ledger"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/test"
)

func (suite *TestSuiteStandard) TestRestoreSkipsExistingRecords() {
	wallet := suite.createTestWallet("some-user")

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transaction := models.Transaction{
		Date:        &date,
		Description: "Groceries",
		Amount:      decimal.NewFromFloat(20),
		Type:        models.Expense,
	}
	err := ledger.ApplyNew(models.DB, &wallet, &transaction)
	assert.Nil(suite.T(), err)

	data, err := importer.ExportJSON(models.DB, "some-user", "transaction")
	assert.Nil(suite.T(), err)

	// Importing the export into the same database must be a no-op
	result, err := importer.RestoreJSON(models.DB, "some-user", "transaction", data)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, result.Created)
	assert.Equal(suite.T(), 1, result.Skipped)

	var reloaded models.Wallet
	err = models.DB.First(&reloaded, "id = ?", wallet.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), reloaded.CurrentBalance().Equal(decimal.NewFromFloat(-20)), "a skipped restore must not change the balance")
}

func (suite *TestSuiteStandard) TestRestorePreservesIdentity() {
	wallet := suite.createTestWallet("some-user")

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transaction := models.Transaction{
		Date:        &date,
		Description: "Groceries",
		Amount:      decimal.NewFromFloat(20),
		Type:        models.Expense,
	}
	err := ledger.ApplyNew(models.DB, &wallet, &transaction)
	assert.Nil(suite.T(), err)

	data, err := importer.ExportJSON(models.DB, "some-user", "transaction")
	assert.Nil(suite.T(), err)

	// Restore into a fresh database
	sqlDB, _ := models.DB.DB()
	sqlDB.Close()
	err = models.Connect(test.TmpFile(suite.T()))
	assert.Nil(suite.T(), err)

	fresh := suite.createTestWallet("some-user")

	result, err := importer.RestoreJSON(models.DB, "some-user", "transaction", data)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)

	restored, err := ledger.TransactionForUser(models.DB, "some-user", transaction.ID)
	assert.Nil(suite.T(), err, "the restored transaction must keep its ID")
	assert.Equal(suite.T(), fresh.ID, restored.WalletID, "restored transactions are attached to the user's wallet")
	assert.Equal(suite.T(), "Groceries", restored.Description)
}

func (suite *TestSuiteStandard) TestRestoreForcesOwnership() {
	suite.createTestWallet("attacker")

	data := []byte(`[{"id": "65392deb-5e92-4268-b114-297faad6cdce", "userId": "victim", "name": "Sneaky"}]`)

	result, err := importer.RestoreJSON(models.DB, "attacker", "category", data)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)

	var category models.Category
	err = models.DB.First(&category, "name = ?", "Sneaky").Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "attacker", category.UserID, "ownership in import files must be ignored")
}

func (suite *TestSuiteStandard) TestRestoreUnknownEntity() {
	_, err := importer.RestoreJSON(models.DB, "some-user", "spaceship", []byte("[]"))
	assert.ErrorIs(suite.T(), err, importer.ErrUnknownEntity)
}

func (suite *TestSuiteStandard) TestExportUnknownEntity() {
	_, err := importer.ExportJSON(models.DB, "some-user", "spaceship")
	assert.ErrorIs(suite.T(), err, importer.ErrUnknownEntity)

	_, err = importer.ExportCSV(models.DB, "some-user", "spaceship")
	assert.ErrorIs(suite.T(), err, importer.ErrUnknownEntity)
}

func (suite *TestSuiteStandard) TestExportCSVTransactions() {
	wallet := suite.createTestWallet("some-user")

	category := models.Category{UserID: "some-user", Name: "Groceries"}
	err := models.DB.Create(&category).Error
	assert.Nil(suite.T(), err)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transaction := models.Transaction{
		Date:        &date,
		Description: "Supermarket",
		Amount:      decimal.NewFromFloat(20.5),
		Type:        models.Expense,
		CategoryID:  &category.ID,
	}
	err = ledger.ApplyNew(models.DB, &wallet, &transaction)
	assert.Nil(suite.T(), err)

	data, err := importer.ExportCSV(models.DB, "some-user", "transaction")
	assert.Nil(suite.T(), err)

	assert.Contains(suite.T(), string(data), "Date,Description,Amount,Type,Category")
	assert.Contains(suite.T(), string(data), "2024-03-01 00:00:00,Supermarket,20.5,EXPENSE,Groceries")
}
