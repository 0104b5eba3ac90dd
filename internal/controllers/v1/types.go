package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/walletwise/backend/internal/httputil"
	"github.com/walletwise/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrWalletExists) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// walletStatus is status for wallet reads, where a missing wallet is the
// resource itself not existing rather than a failed precondition.
func walletStatus(err error) int {
	if errors.Is(err, models.ErrNoWallet) {
		return http.StatusNotFound
	}

	return status(err)
}

// errString returns a pointer to the error message for use in
// response bodies.
func errString(err error) *string {
	s := err.Error()
	return &s
}

// parseID returns the resource ID from the request URI.
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return id, nil
}
