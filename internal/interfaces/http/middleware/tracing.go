package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps the request ID copied into span attributes
const MaxRequestIDLength = 128

// Tracing wraps otelgin. Spans are named after the matched route, e.g.
// "GET /api/v1/reports/export". When disabled it is a pass-through.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName)
}

// SessionSpanAttributes copies the request and session identifiers onto the
// current span. It must run after the session middleware.
func SessionSpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := c.GetString("request_id"); id != "" {
				if len(id) > MaxRequestIDLength {
					id = id[:MaxRequestIDLength]
				}
				span.SetAttributes(attribute.String("request_id", id))
			}
			if s, ok := GetSession(c); ok {
				span.SetAttributes(
					attribute.String("office_id", s.OfficeID.String()),
					attribute.String("user_id", s.UserID.String()),
				)
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the span as failed for 5xx responses. Client errors
// are expected outcomes and keep an unset status.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
