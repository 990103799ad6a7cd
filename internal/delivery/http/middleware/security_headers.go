package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds baseline security headers to all responses. The API
// serves JSON plus uploaded CV files, so the policy disallows framing and
// MIME sniffing outright.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
		c.Header("Content-Security-Policy",
			"default-src 'self'; "+
				"frame-ancestors 'none'; "+
				"base-uri 'self'; "+
				"form-action 'self'")

		c.Next()
	}
}
