package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key for the request-scoped logger.
const LoggerKey = "logger"

// RequestLogger stores a request-scoped logger in the context and logs one line per request.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := base.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", getClientIP(c)),
		)
		c.Set(LoggerKey, reqLogger)

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if s := GetSession(c); !s.IsZero() {
			fields = append(fields, zap.String("userId", s.UserID))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("Request failed", fields...)
		case status >= 400:
			reqLogger.Warn("Request rejected", fields...)
		default:
			reqLogger.Info("Request handled", fields...)
		}
	}
}
