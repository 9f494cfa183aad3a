package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency, count and body size per route template, so
// /api/clients/1 and /api/clients/2 share one series. Requests that matched
// no route are folded into "unmatched".
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}

		metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		if size := c.Writer.Size(); size > 0 {
			metrics.HTTPResponseSize.WithLabelValues(route).Observe(float64(size))
		}
	}
}
