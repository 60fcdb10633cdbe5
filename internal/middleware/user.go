package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"catalog-service/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	UserIDHeader = "X-User-ID"
	userIDKey    = "user_id"
)

// UserMiddleware requires an acting user for the route group. A user_id placed
// in the context by an earlier middleware wins over the X-User-ID header.
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(userIDKey)
		if userID == "" {
			userID = strings.TrimSpace(c.GetHeader(UserIDHeader))
		}

		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_REQUIRED",
					"message": "User ID is required. Include the X-User-ID header.",
				},
			})
			c.Abort()
			return
		}
		if len(userID) > models.MaxUserIDLength {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": fmt.Sprintf("User ID must be at most %d characters.", models.MaxUserIDLength),
					"field":   "userId",
				},
			})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the acting user from gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
