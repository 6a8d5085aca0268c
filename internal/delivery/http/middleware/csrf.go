package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must contain the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input every console form carries
	CSRFTokenFormField = "_csrf"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern.
//
// Every response carries a csrf_token cookie; pages embed the same value in
// their forms. POST, PUT, PATCH and DELETE must echo it in the X-CSRF-Token
// header or the _csrf form field.
func CSRFMiddleware(audit *security.AuditLogger, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || token == "" {
			token, err = generateCSRFToken()
			if err != nil {
				_ = c.Error(apperror.Internal(err))
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(CSRFTokenCookieName, token, int(CSRFTokenExpiry.Seconds()), "/", "", secure, true)
		}
		c.Set(string(domain.KeyCSRFToken), token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}
		if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			reason := "mismatch"
			if submitted == "" {
				reason = "missing"
			}
			audit.Log(c.Request.Context(), security.AuditEvent{
				Event:   security.EventCSRFViolation,
				Details: map[string]any{"path": c.Request.URL.Path, "reason": reason},
			})
			_ = c.Error(apperror.Forbidden("Invalid or missing CSRF token"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token for the current request, for embedding in forms.
func CSRFToken(c *gin.Context) string {
	return c.GetString(string(domain.KeyCSRFToken))
}
