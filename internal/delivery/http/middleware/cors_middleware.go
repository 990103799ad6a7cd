package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for cross-origin requests from the
// submission form frontend. Only the configured frontend origin and local
// development origins are allowed; anything else gets no CORS headers and
// the browser blocks the request.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowedOrigins := map[string]bool{
			frontendURL:             true,
			"http://localhost:3000": true,
			"http://127.0.0.1:3000": true,
		}

		// Empty origin means a same-origin request.
		isAllowed := origin == "" || allowedOrigins[origin]

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}

		// Caches must differentiate by Origin.
		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
