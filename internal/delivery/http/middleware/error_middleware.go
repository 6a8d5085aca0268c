package middleware

import (
	"errors"
	"net/http"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GenericErrorMessage is shown for errors that carry no user-facing message.
const GenericErrorMessage = "An unexpected error occurred. Please try again later."

// SessionExpiredMessage is the toast shown after a 401 from a remote call.
const SessionExpiredMessage = "Your session has expired. Please sign in again."

// ErrorHandlerConfig tells ErrorHandler how to answer page requests.
type ErrorHandlerConfig struct {
	SecureCookies bool
	// RenderPage draws the error page. Nil falls back to plain text.
	RenderPage func(c *gin.Context, status int, message string)
	// OnUnauthorized runs before the identity cookie is cleared, typically
	// to drop the server-side session.
	OnUnauthorized func(c *gin.Context)
}

// ErrorHandler turns errors recorded with c.Error into a response. API
// requests get the JSON envelope; page requests get a redirect to the login
// page on 401 and an error page otherwise.
func ErrorHandler(config ErrorHandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := describe(err)

		attrs := []any{
			"status", status,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(response.RequestIDKey),
			"error", err.Error(),
		}
		if status >= http.StatusInternalServerError {
			logger.Log.Error("request failed", attrs...)
		} else {
			logger.Log.Warn("request rejected", attrs...)
		}

		if IsAPIRequest(c) {
			response.Error(c, status, message, nil)
			return
		}

		if status == http.StatusUnauthorized {
			if config.OnUnauthorized != nil {
				config.OnUnauthorized(c)
			}
			ClearIdentityCookie(c, config.SecureCookies)
			response.RedirectWithFlash(c, LoginPath, response.FlashError, SessionExpiredMessage)
			return
		}

		if config.RenderPage != nil {
			config.RenderPage(c, status, message)
			return
		}
		c.String(status, message)
	}
}

func describe(err error) (int, string) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, GenericErrorMessage
	}
	if appErr.Code == http.StatusInternalServerError || appErr.Message == "" {
		return appErr.Code, GenericErrorMessage
	}
	return appErr.Code, appErr.Message
}
