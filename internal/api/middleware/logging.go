package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karyalink/engagement-go/pkg/logger"
	"github.com/karyalink/engagement-go/pkg/metrics"
	"go.uber.org/zap"
)

// LoggingMiddleware emits one structured line per request and feeds the
// request-duration histogram.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(status), elapsed)
		logger.L().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
}
