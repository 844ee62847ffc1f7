package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"hirehub/pkg/logger"
)

func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}

		reqLog := log.WithContext(c.Request.Context())
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			reqLog.Error("İstek hatayla sonuçlandı", fields)
			return
		}
		reqLog.Info("İstek işlendi", fields)
	}
}
