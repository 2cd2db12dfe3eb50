package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"
	ContextUserIDKey    = "userID"
)

var (
	errMissingAuthorization = errors.New("authorization header required")
	errMalformedBearer      = errors.New("invalid authorization header format")
)

// TokenValidator resolves a bearer token to the id of its user.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || scheme != bearerScheme || token == "" || strings.ContainsAny(token, " \t") {
		return "", errMalformedBearer
	}
	return token, nil
}

// AuthMiddleware stores the id of the token's user under ContextUserIDKey.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(authorizationHeader))
		if err != nil {
			AbortMessage(c, http.StatusUnauthorized, err.Error())
			return
		}

		userID, err := tokens.ValidateToken(token)
		if err != nil {
			_ = c.Error(err)
			AbortMessage(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
