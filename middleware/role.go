package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotbook/models"
	"slotbook/utils"
)

// RequireRole rejects sessions whose role is not in roles. It must run after SessionMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		for _, r := range roles {
			if session.Role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, string(models.ErrCodeForbidden), "Insufficient role for this endpoint")
	}
}
