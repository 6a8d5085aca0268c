package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://127.0.0.1:3000": true,
	"http://localhost:5173": true,
}

// CORSMiddleware adds CORS headers to the /v1 JSON API. Console pages are
// same-origin and never get them.
//
// Only origins listed in allowedOrigins are accepted; localhost is added
// outside production.
func CORSMiddleware(allowedOrigins []string, isProduction bool) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = true
	}

	return func(c *gin.Context) {
		if !IsAPIRequest(c) {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")
		isAllowed := origin == "" || allowed[origin] || (!isProduction && devOrigins[origin])

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}
