package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskflowhq/taskflow-api/internal/constants"
	apierrors "github.com/taskflowhq/taskflow-api/internal/errors"
	"github.com/taskflowhq/taskflow-api/internal/utils"
)

// RequireAuth validates the bearer token and stores the principal's user ID
// in the request context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authorization header is missing")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			apierrors.Unauthorized(c, "Authorization header must use the Bearer scheme")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(tokenString, jwtSecret)
		if err != nil {
			apierrors.Unauthorized(c, "Token is expired or invalid")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
