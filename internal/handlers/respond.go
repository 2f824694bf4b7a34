package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack-dev/tasktrack/internal/apperr"
	"github.com/tasktrack-dev/tasktrack/internal/types"
)

// writeError translates a service error kind into the HTTP response. Unknown
// errors are logged and hidden behind a 500.
func writeError(ctx *gin.Context, err error) {
	var validation *apperr.ValidationError

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperr.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	case errors.Is(err, apperr.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, apperr.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	default:
		log.Printf("internal error on %s %s (request_id=%s): %v",
			ctx.Request.Method, ctx.Request.URL.Path, ctx.GetString(types.ContextRequestIDKey), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
