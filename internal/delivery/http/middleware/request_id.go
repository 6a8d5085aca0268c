package middleware

import (
	"log/slog"
	"time"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is read from trusted proxies and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id and seeds the audit metadata
// carried on the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		ctx := security.WithRequestMeta(c.Request.Context(), security.RequestMeta{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: id,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(response.RequestIDKey),
		}
		if identity, ok := CurrentIdentity(c); ok {
			attrs = append(attrs, "user", identity.Username)
		}
		logger.Log.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
