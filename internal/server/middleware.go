package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per request.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// Recovery catches panics at the request boundary: full detail is logged
// server-side, the caller gets a generic failure message with no stack
// trace.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		log.Error("panic recovered",
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal processing error",
		})
	})
}
