package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/calcgate/ctxutil"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/sirupsen/logrus"
)

// CORS allows every origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, "+ctxutil.TraceHeader)
		h.Set("Access-Control-Expose-Headers", "Content-Disposition, "+ctxutil.TraceHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Trace carries the request trace id, taken from the X-Trace-Id header or
// generated, in the request context and the response header.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		if id := ctxutil.SanitizeTraceID(c.GetHeader(ctxutil.TraceHeader)); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Header(ctxutil.TraceHeader, traceID)
		c.Next()
	}
}

// Logger logs one line per request.
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		l.WithContextFields(c.Request.Context(), logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}).Info("HTTP request")
	}
}
