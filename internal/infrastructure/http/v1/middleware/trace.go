package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "textile/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace middleware adds request tracing context.
// Incoming IDs are kept, missing ones are generated.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTraceContext(c.GetHeader(HeaderTraceID), c.GetHeader(HeaderRequestID))

		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), trace))

		c.Set("trace_id", trace.TraceID)
		c.Set("request_id", trace.RequestID)

		c.Header(HeaderRequestID, trace.RequestID)
		c.Header(HeaderTraceID, trace.TraceID)

		c.Next()
	}
}
