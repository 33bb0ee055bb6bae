package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Server errors are logged at
// error level with the gin error chain attached.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}

		if p, ok := PrincipalFrom(c); ok {
			fields = append(fields, zap.String("user_id", p.ID.String()))
		}

		if status >= 500 {
			if errs := c.Errors.ByType(gin.ErrorTypeAny).String(); errs != "" {
				fields = append(fields, zap.String("errors", errs))
			}
			log.Error("http request", fields...)
			return
		}

		log.Info("http request", fields...)
	}
}
