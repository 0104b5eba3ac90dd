package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/walletwise/backend/internal/controllers/v1"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/test"
)

func (suite *TestSuiteStandard) createTestTransactionHTTP(user string, body any) v1.TransactionResponse {
	recorder := test.RequestAs(suite.T(), user, http.MethodPost, "/v1/transactions", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) walletBalance(user string) decimal.Decimal {
	var wallet models.Wallet
	err := models.DB.First(&wallet, "user_id = ?", user).Error
	if err != nil {
		suite.Assert().FailNow("wallet could not be reloaded", err)
	}

	return wallet.CurrentBalance()
}

func (suite *TestSuiteStandard) TestTransactionCreateWithoutWallet() {
	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/transactions", map[string]any{
		"description": "Groceries",
		"amount":      20,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionLifecycle() {
	suite.createTestWalletHTTP("some-user", 1000)

	created := suite.createTestTransactionHTTP("some-user", map[string]any{
		"description": "Groceries",
		"amount":      50,
		"type":        "EXPENSE",
	})
	assert.True(suite.T(), suite.walletBalance("some-user").Equal(decimal.NewFromFloat(950)))

	// Editing reverses the old effect and applies the new one
	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), map[string]any{
		"amount": 80,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	assert.True(suite.T(), suite.walletBalance("some-user").Equal(decimal.NewFromFloat(920)))

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), "Groceries", updated.Data.Description, "fields that are not patched keep their value")

	// Deleting reverses the transaction's effect
	recorder = test.RequestAs(suite.T(), "some-user", http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.True(suite.T(), suite.walletBalance("some-user").Equal(decimal.NewFromFloat(1000)))
}

func (suite *TestSuiteStandard) TestTransactionForeignUserNotFound() {
	suite.createTestWalletHTTP("owner", 0)
	suite.createTestWalletHTTP("someone-else", 0)

	created := suite.createTestTransactionHTTP("owner", map[string]any{
		"description": "Private",
		"amount":      10,
	})

	recorder := test.RequestAs(suite.T(), "someone-else", http.MethodGet, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.RequestAs(suite.T(), "someone-else", http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionInvalidUUID() {
	suite.createTestWalletHTTP("some-user", 0)

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/transactions/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionListFilters() {
	suite.createTestWalletHTTP("some-user", 0)

	suite.createTestTransactionHTTP("some-user", map[string]any{
		"description": "March groceries",
		"amount":      20,
		"date":        "2024-03-05T00:00:00Z",
	})
	suite.createTestTransactionHTTP("some-user", map[string]any{
		"description": "April groceries",
		"amount":      30,
		"date":        "2024-04-05T00:00:00Z",
	})
	suite.createTestTransactionHTTP("some-user", map[string]any{
		"description": "March paycheck",
		"amount":      1000,
		"type":        "INCOME",
		"date":        "2024-03-01T00:00:00Z",
	})

	var response v1.TransactionListResponse

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "April groceries", response.Data[0].Description, "transactions are sorted newest first")

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/transactions?month=2024-03", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/transactions?type=INCOME", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "March paycheck", response.Data[0].Description)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/transactions?type=TRANSFER", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionForeignCategoryRejected() {
	suite.createTestWalletHTTP("owner", 0)
	suite.createTestWalletHTTP("someone-else", 0)

	category := models.Category{UserID: "owner", Name: "Private"}
	err := models.DB.Create(&category).Error
	assert.Nil(suite.T(), err)

	recorder := test.RequestAs(suite.T(), "someone-else", http.MethodPost, "/v1/transactions", map[string]any{
		"description": "Sneaky",
		"amount":      10,
		"categoryId":  category.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
