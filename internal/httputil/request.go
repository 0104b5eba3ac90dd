package httputil

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// userKey is the context key the identity middleware stores the user ID
// under.
const userKey = "walletwise:user"

// UserHeader carries the opaque user identifier. It is set by the identity
// layer in front of this backend; the backend itself never validates
// identity, it only scopes every query by this value.
const UserHeader = "X-User-ID"

// RequireUser extracts the user ID from the request headers and rejects
// requests without one.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader(UserHeader)
		if user == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, map[string]string{
				"error": ErrUserNotSet.Error(),
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// UserID returns the user ID extracted by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(userKey)
}

// RequestHost returns the scheme and host the client used, honoring the
// x-forwarded-proto, x-forwarded-host and x-forwarded-prefix headers a
// reverse proxy sets. Without a proxy the request host is used as is.
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	var forwardedPrefix string

	xForwardedHost := c.Request.Header.Get("x-forwarded-host")
	if xForwardedHost != "" {
		host = xForwardedHost

		forwardedPrefix = c.Request.Header.Get("x-forwarded-prefix")
	}

	return scheme + "://" + host + forwardedPrefix
}

// RequestPathV1 returns the URL with the prefix for API v1.
func RequestPathV1(c *gin.Context) string {
	return RequestHost(c) + "/v1"
}

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(&data)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}
