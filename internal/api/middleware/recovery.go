package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"hirehub/pkg/logger"
)

// Recovery turns a panic into the generic 500 response; the detail only
// reaches the server log.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "Panik yakalandı", map[string]interface{}{
			"path":  c.Request.URL.Path,
			"panic": fmt.Sprint(recovered),
			"stack": string(debug.Stack()),
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
	})
}
