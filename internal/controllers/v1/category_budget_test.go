package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/walletwise/backend/internal/controllers/v1"
	"github.com/walletwise/backend/test"
)

func (suite *TestSuiteStandard) TestCategoryBudgetUpsert() {
	category := suite.createTestCategoryHTTP("some-user", "Groceries")

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/category-budgets", map[string]any{
		"categoryId": category.Data.ID,
		"month":      "2024-03",
		"maxAmount":  200,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.CategoryBudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/category-budgets", map[string]any{
		"categoryId": category.Data.ID,
		"month":      "2024-03",
		"maxAmount":  300,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.CategoryBudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), created.Data.ID, updated.Data.ID, "setting the same category and month again must update, not create")
	assert.True(suite.T(), updated.Data.MaxAmount.Equal(decimal.NewFromFloat(300)))
}

func (suite *TestSuiteStandard) TestCategoryBudgetForeignCategory() {
	category := suite.createTestCategoryHTTP("owner", "Private")

	recorder := test.RequestAs(suite.T(), "someone-else", http.MethodPost, "/v1/category-budgets", map[string]any{
		"categoryId": category.Data.ID,
		"month":      "2024-03",
		"maxAmount":  200,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryBudgetListAndDelete() {
	category := suite.createTestCategoryHTTP("some-user", "Groceries")

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPost, "/v1/category-budgets", map[string]any{
		"categoryId": category.Data.ID,
		"month":      "2024-03",
		"maxAmount":  200,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.CategoryBudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/category-budgets?month=2024-03", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.CategoryBudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 1)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/category-budgets?month=2024-04", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Empty(suite.T(), list.Data)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodDelete, fmt.Sprintf("/v1/category-budgets/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}
