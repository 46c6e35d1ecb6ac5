package middleware

import (
	"net/http"
	"strings"

	"casino_wallet/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminJWT gates the admin-only workflow operations. It verifies the
// bearer token the admin application issued and stores the admin id on the
// context.
func AdminJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization required"})
			return
		}

		adminID, err := service.ParseAdminJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set("admin_id", adminID)
		c.Next()
	}
}
