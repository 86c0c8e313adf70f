package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/velora-live/velora/internal/types"
	"go.uber.org/zap"
)

// RequestLogger tags each request with an id and writes one structured
// access-log line when it completes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := uuid.NewString()
		ctx.Set(types.ContextRequestIDKey, requestID)
		ctx.Writer.Header().Set("X-Request-ID", requestID)

		ctx.Next()

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
