package middleware

import (
	"time"

	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger to the request context and
// logs one line per request once the handler chain has finished. It expects
// RequestID to run first.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := contextutil.GetRequestID(c.Request.Context())

		reqLogger := logger.With(zap.String("request_id", rid))
		c.Request = c.Request.WithContext(contextutil.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("employee_id", c.GetString(ContextEmployeeID)),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
