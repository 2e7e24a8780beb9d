package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"weather-now/pkg/metrics"
)

// MetricsMiddleware records request count and duration per route.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		collector.RecordHTTPRequest(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
