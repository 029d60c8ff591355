// Package ctxutil carries the request trace id through context.Context and,
// when one is attached, the gin context of the request.
package ctxutil

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ginKey struct{}

type traceKey struct{}

const (
	// TraceIDKey is the log field and gin key carrying the trace id.
	TraceIDKey = "trace_id"
	// TraceHeader is the request/response header mirroring the trace id.
	TraceHeader = "X-Trace-Id"
)

// maxTraceIDLen bounds ids taken over from request headers.
const maxTraceIDLen = 128

// WithGinContext returns a context.Context that embeds the *gin.Context.
func WithGinContext(ctx context.Context, c *gin.Context) context.Context {
	return context.WithValue(ctx, ginKey{}, c)
}

// GinContext extracts the *gin.Context embedded by WithGinContext.
func GinContext(ctx context.Context) (*gin.Context, bool) {
	c, ok := ctx.Value(ginKey{}).(*gin.Context)
	return c, ok && c != nil
}

// GetTraceID returns the trace id of ctx, looking at the embedded gin
// context first.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if c, ok := GinContext(ctx); ok {
		if id := c.GetString(TraceIDKey); id != "" {
			return id
		}
	}
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

// SetTraceID stores id in ctx and in the embedded gin context.
func SetTraceID(ctx context.Context, id string) context.Context {
	if c, ok := GinContext(ctx); ok {
		c.Set(TraceIDKey, id)
	}
	return context.WithValue(ctx, traceKey{}, id)
}

// EnsureTraceID returns ctx unchanged when it carries a trace id and a copy
// with a new random id otherwise.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if id := GetTraceID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return SetTraceID(ctx, id), id
}

// SanitizeTraceID accepts a client supplied id when it is printable and not
// overly long; it returns "" otherwise.
func SanitizeTraceID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxTraceIDLen {
		return ""
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return id
}
