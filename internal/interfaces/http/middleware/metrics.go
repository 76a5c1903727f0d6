package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver records finished requests
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// HTTPMetrics returns a middleware reporting every request to observer. The
// route label is gin's matched pattern (e.g. "/api/v1/finance/payables/:id")
// so ids never leak into label values.
func HTTPMetrics(observer HTTPObserver) gin.HandlerFunc {
	if observer == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observer.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
