package v1_test

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"

	v1 "github.com/walletwise/backend/internal/controllers/v1"
	"github.com/walletwise/backend/test"
)

func (suite *TestSuiteStandard) createTestCategoryHTTP(user, name string) v1.CategoryResponse {
	recorder := test.RequestAs(suite.T(), user, http.MethodPost, "/v1/categories", map[string]string{"name": name})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response
}

func (suite *TestSuiteStandard) TestCategoryLifecycle() {
	created := suite.createTestCategoryHTTP("some-user", "Groceries")
	assert.Equal(suite.T(), "Groceries", created.Data.Name)

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodPatch, fmt.Sprintf("/v1/categories/%s", created.Data.ID), map[string]string{"name": "Food"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	assert.Equal(suite.T(), "Food", updated.Data.Name)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodDelete, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.RequestAs(suite.T(), "some-user", http.MethodGet, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryListSorted() {
	suite.createTestCategoryHTTP("some-user", "Transport")
	suite.createTestCategoryHTTP("some-user", "Groceries")
	suite.createTestCategoryHTTP("someone-else", "Private")

	recorder := test.RequestAs(suite.T(), "some-user", http.MethodGet, "/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2, "only the user's own categories are listed")
	assert.Equal(suite.T(), "Groceries", response.Data[0].Name)
	assert.Equal(suite.T(), "Transport", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestCategoryForeignNotFound() {
	created := suite.createTestCategoryHTTP("owner", "Private")

	recorder := test.RequestAs(suite.T(), "someone-else", http.MethodGet, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.RequestAs(suite.T(), "someone-else", http.MethodDelete, fmt.Sprintf("/v1/categories/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
