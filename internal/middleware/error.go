package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
)

// Recovery catches any panic escaping a handler, logs it with full detail
// and answers with the generic error envelope. Internals never reach the
// caller.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", RequestID(c),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  "error",
					"message": "internal server error",
					"code":    http.StatusInternalServerError,
				})
			}
		}()
		c.Next()
	}
}
