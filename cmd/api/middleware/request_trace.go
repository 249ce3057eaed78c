package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"cruze/cmd/api/trace"
	"cruze/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace guarantees a Request ID and Span ID for every inbound HTTP
// request, stores them in the context/headers and includes them in the
// completion log.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		// inbound logs carry span_id=0; outbound calls increment from 1
		ctxWithTrace := trace.WithRequestAndSpan(req.Context(), requestID, 0)
		c.Request = req.WithContext(ctxWithTrace)
		req = c.Request

		currentSpan := trace.CurrentSpanID(ctxWithTrace)
		c.Request.Header.Set(headerRequestID, requestID)
		c.Request.Header.Set(headerSpanID, currentSpan)
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerSpanID, currentSpan)

		c.Next()

		status := c.Writer.Status()
		finalSpan := trace.CurrentSpanID(c.Request.Context())
		duration := time.Since(start)
		logger.InfoWithFields("completed request", logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     status,
			"duration":   duration.String(),
			"request_id": requestID,
			"span_id":    finalSpan,
		})
	}
}
