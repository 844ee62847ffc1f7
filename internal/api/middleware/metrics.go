package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hirehub/pkg/metrics"
)

// Metrics records request count and latency labelled by the matched route
// template, so path ids do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RecordHttpRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(startTime),
		)
	}
}
