// README: Request logging middleware; attaches a request-scoped zap logger.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// Logging logs each request and stores a logger carrying request_id in the
// request context for ctxzap.Extract.
func Logging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		r := c.Request

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		logger.Info("Start handle HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", c.ClientIP()),
			zap.String("request_id", requestID),
		)

		reqLogger := logger.With(zap.String("request_id", requestID))
		c.Request = r.WithContext(ctxzap.ToContext(r.Context(), reqLogger))

		c.Next()

		logger.Info("Finish handle HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", requestID),
		)
	}
}
