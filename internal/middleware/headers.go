package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders sets conservative browser-protection headers on every
// response.
func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("Referrer-Policy", "same-origin")
		ctx.Next()
	}
}
