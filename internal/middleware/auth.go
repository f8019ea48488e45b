package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todo-api/internal/models"
)

const callerKey = "caller"

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Auth rejects requests without a valid bearer token and stores the
// token's user id for Caller.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Authentication credentials were not provided."})
			return
		}

		id, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Invalid token."})
			return
		}

		c.Set(callerKey, id)
		c.Next()
	}
}

// Caller returns the authenticated user id, or uuid.Nil.
func Caller(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(callerKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
