package v1_test

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/walletwise/backend/internal/controllers/v1"
	"github.com/walletwise/backend/internal/models"
	"github.com/walletwise/backend/test"
)

func (suite *TestSuiteStandard) createTestWalletHTTP(user string, balance float64) v1.WalletResponse {
	recorder := test.RequestAs(suite.T(), user, http.MethodPost, "/v1/wallet", map[string]float64{"balance": balance})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) TestWalletRequiresUser() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/wallet", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestWalletCreateAndGet() {
	suite.createTestWalletHTTP("some-user", 500)

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/wallet", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Wallet.CurrentBalance().Equal(decimal.NewFromFloat(500)))
	assert.Equal(suite.T(), "good", response.Data.Summary.HealthStatus)
}

func (suite *TestSuiteStandard) TestWalletOnlyOnePerUser() {
	suite.createTestWalletHTTP("some-user", 0)

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/wallet", map[string]float64{"balance": 0})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestWalletNotFoundWithoutCreate() {
	recorder := test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/wallet", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodPatch, "/v1/wallet", map[string]float64{"balance": 10})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestWalletUpdateBalance() {
	suite.createTestWalletHTTP("some-user", 100)

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPatch, "/v1/wallet", map[string]float64{"balance": 250})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.WalletResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.CurrentBalance().Equal(decimal.NewFromFloat(250)))
}

func (suite *TestSuiteStandard) TestWalletDashboardPostsRecurringIncome() {
	response := suite.createTestWalletHTTP("some-user", 0)

	income := models.RecurringIncome{
		UserID:    "some-user",
		WalletID:  response.Data.ID,
		Amount:    decimal.NewFromFloat(200),
		StartDate: time.Now().UTC().AddDate(0, 0, -65),
	}
	err := models.DB.Create(&income).Error
	assert.Nil(suite.T(), err)

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/wallet", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &dashboard)
	assert.True(suite.T(), dashboard.Data.Wallet.CurrentBalance().Equal(decimal.NewFromFloat(400)), "balance is %s", dashboard.Data.Wallet.CurrentBalance())
}

func (suite *TestSuiteStandard) TestWalletOptions() {
	recorder := test.RequestAs(suite.T(), "some-user", http.MethodOptions, "/v1/wallet", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST, PATCH", recorder.Header().Get("allow"))
}
