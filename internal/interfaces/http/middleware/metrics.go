package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder is the request accounting of the Prometheus registry
type RequestRecorder interface {
	RequestStarted() func(method, route string, status int, elapsed time.Duration)
}

// HTTPMetrics records request count, duration and in-flight requests.
// Requests are labelled with the route pattern (e.g. "/api/v1/sessions/:id")
// so that session and sale ids do not explode the label cardinality.
// A nil recorder yields a no-op middleware.
func HTTPMetrics(recorder RequestRecorder) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		done := recorder.RequestStarted()

		c.Next()

		done(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
