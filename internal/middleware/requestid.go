package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tasktrack-dev/tasktrack/internal/types"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a correlation id to every request, honoring one
// supplied by the caller and minting one otherwise. The id is echoed back in
// the response headers for tracing.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(types.ContextRequestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}
