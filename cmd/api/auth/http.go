package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingHeader = errors.New("authorization header missing")
	ErrInvalidFormat = errors.New("authorization header malformed")
	ErrEmptyToken    = errors.New("bearer token empty")
)

// ExtractBearerToken pulls the token out of the Authorization header. The
// scheme comparison is case-insensitive per RFC 7235.
func ExtractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidFormat
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// AbortWithUnauthorized ends the request with a 401 and the error text.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}
