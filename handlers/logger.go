package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotbook/middleware"
	"slotbook/utils"
)

// getLogger retrieves the request-scoped logger from the Gin context or falls back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
