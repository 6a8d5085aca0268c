package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds the browser hardening headers to every
// response. HSTS is only sent when the console is served over TLS.
func SecurityHeadersMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secure {
			c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		// Pages load their own script and stylesheet only; inline handlers
		// are blocked, so confirm dialogs live in /static/console.js.
		c.Header("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self'; "+
				"style-src 'self'; "+
				"img-src 'self' data:; "+
				"font-src 'self'; "+
				"connect-src 'self'; "+
				"frame-ancestors 'none'; "+
				"base-uri 'self'; "+
				"form-action 'self'")

		// Signed-in pages show personal data and must not be cached.
		if _, err := c.Cookie(IdentityCookieName); err == nil {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		c.Next()
	}
}
