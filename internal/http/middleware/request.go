package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	slogctx "github.com/veqryn/slog-context"
)

const RequestIDHeader = "X-Request-ID"

// RequestContext tags the request context with a request id and logs the
// request once it completes.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		ctx := slogctx.Append(c.Request.Context(), "request_id", id)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		slogctx.Debug(c.Request.Context(), "request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
