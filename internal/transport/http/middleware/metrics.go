package middleware

import (
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit NoRoute, so arbitrary paths
// never become label values.
const unmatchedRoute = "unmatched"

// Metrics records latency and count per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
