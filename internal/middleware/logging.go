package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
)

const loggerKey = "logger"

// ContextLogger stores the application logger on every request so deeper
// layers can log without the logger being threaded through each handler.
func ContextLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(loggerKey, log)
		c.Next()
	}
}

// Log returns the request's logger, or a no-op logger when none was set.
func Log(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return logger.NewNop()
}
