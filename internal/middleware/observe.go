package middleware

import (
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Observe records per-route metrics and a debug line carrying the resolved
// user. Access logging of the raw request happens in the outer handler chain.
func Observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		route := c.FullPath()
		status := c.Writer.Status()
		m.ObserveHTTP(c.Request.Method, route, status, elapsed)

		ctx := c.Request.Context()
		userID, _ := utils.GetUserIDFromContext(ctx)
		log := logger.FromCtx(ctx)
		if len(c.Errors) > 0 {
			log = log.With(zap.String("errors", c.Errors.String()))
		}
		log.Debug("route handled",
			zap.String("route", route),
			zap.Int("status", status),
			zap.Uint("user_id", userID),
			zap.Duration("duration", elapsed),
		)
	}
}
