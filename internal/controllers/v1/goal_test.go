package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/walletwise/backend/internal/controllers/v1"
	"github.com/walletwise/backend/test"
)

func (suite *TestSuiteStandard) TestGoalLifecycle() {
	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/goals", map[string]any{
		"title":        "Emergency fund",
		"targetAmount": 5000,
		"currentSaved": 1250,
		"deadline":     "2024-12-31T00:00:00Z",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.GoalResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	assert.True(suite.T(), created.Data.Progress.Equal(decimal.NewFromInt(25)), "progress is %s", created.Data.Progress)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodPatch, fmt.Sprintf("/v1/goals/%s", created.Data.ID), map[string]any{
		"currentSaved": 2500,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.GoalResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.True(suite.T(), updated.Data.Progress.Equal(decimal.NewFromInt(50)))
	assert.Equal(suite.T(), "Emergency fund", updated.Data.Title, "fields that are not patched keep their value")

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodDelete, fmt.Sprintf("/v1/goals/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGoalTargetMustBePositive() {
	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/goals", map[string]any{
		"title":    "No target",
		"deadline": "2024-12-31T00:00:00Z",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGoalListScopedToUser() {
	recorder := test.RequestAs(suite.T(), "owner", http.MethodPost, "/v1/goals", map[string]any{
		"title":        "Private",
		"targetAmount": 100,
		"deadline":     "2024-12-31T00:00:00Z",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.RequestAs(suite.T(), "someone-else", http.MethodGet, "/v1/goals", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.GoalListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}
