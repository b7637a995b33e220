// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"slotbook/models"
	"slotbook/utils"
)

// SessionKey is the gin context key holding the requester's models.Session.
const SessionKey = "session"

// SessionMiddleware turns a bearer token into a models.Session. With optional
// set, requests without an Authorization header pass through anonymously; a
// header that is present but invalid is always rejected.
func SessionMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && optional {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		session, err := utils.SessionFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Invalid token")
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// GetSession returns the session stored by SessionMiddleware, or the zero Session.
func GetSession(c *gin.Context) models.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}
