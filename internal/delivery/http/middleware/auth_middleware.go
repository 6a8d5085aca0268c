package middleware

import (
	"net/http"
	"strings"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/resource"
	"recruitment-console/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// IdentityCookieName holds the signed identity claims.
	IdentityCookieName = "auth-storage"
	// LoginPath is where unauthenticated page requests are sent.
	LoginPath = "/login"
)

var publicPaths = map[string]bool{
	"/login":       true,
	"/login/start": true,
	"/postlogin":   true,
	"/v1/health":   true,
	"/favicon.ico": true,
}

var publicPrefixes = []string{"/static/", "/v1/swagger/"}

// IsPublicPath reports whether path is served without a session.
func IsPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsAPIRequest reports whether the request targets the JSON API.
func IsAPIRequest(c *gin.Context) bool {
	path := c.Request.URL.Path
	return path == "/v1" || strings.HasPrefix(path, "/v1/")
}

// AuthMiddleware guards every non-public route. Pages without a valid
// session redirect to the login page; API calls get 401.
func AuthMiddleware(authUC domain.AuthUsecase, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		cookie, _ := c.Cookie(IdentityCookieName)
		session, err := authUC.Authenticate(c.Request.Context(), cookie)
		if err != nil {
			if !apperror.IsUnauthorized(err) {
				_ = c.Error(err)
				c.Abort()
				return
			}
			if cookie != "" {
				ClearIdentityCookie(c, secureCookies)
			}
			if IsAPIRequest(c) {
				_ = c.Error(err)
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		// gin.Context.Value does not reach the request context for typed
		// keys, so handlers pass c.Request.Context() downstream.
		ctx := c.Request.Context()
		meta := security.RequestMetaFromContext(ctx)
		meta.Actor = session.Identity.Username
		ctx = security.WithRequestMeta(ctx, meta)
		ctx = resource.WithAccessToken(ctx, session.AccessToken)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(domain.KeySession), session)
		c.Set(string(domain.KeyIdentity), session.Identity)
		c.Next()
	}
}

// RequireAdmin restricts a route group to the admin role.
func RequireAdmin(audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || !identity.IsAdmin() {
			audit.Log(c.Request.Context(), security.AuditEvent{
				Event:   security.EventUnauthorizedAccess,
				Details: map[string]any{"path": c.Request.URL.Path, "role": identity.Role},
			})
			_ = c.Error(apperror.Forbidden("You do not have permission to access this page"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the signed-in user set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(string(domain.KeyIdentity))
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// CurrentSession returns the session set by AuthMiddleware, or nil.
func CurrentSession(c *gin.Context) *domain.Session {
	v, ok := c.Get(string(domain.KeySession))
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

// SetIdentityCookie stores the signed identity for maxAge seconds.
func SetIdentityCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(IdentityCookieName, value, maxAge, "/", "", secure, true)
}

func ClearIdentityCookie(c *gin.Context, secure bool) {
	SetIdentityCookie(c, "", -1, secure)
}
